package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgallion1/docdeck/internal/api"
	"github.com/dgallion1/docdeck/internal/config"
	"github.com/spf13/cobra"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the docdeck HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if servePort != "" {
			cfg.Port = servePort
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
		return api.Serve(ctx, cfg, log)
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Listen port (default: $PORT or 8090)")
	rootCmd.AddCommand(serveCmd)
}
