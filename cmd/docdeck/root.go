package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dgallion1/docdeck/internal/api"
	"github.com/dgallion1/docdeck/internal/config"
	"github.com/dgallion1/docdeck/internal/pipeline"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "docdeck",
	Short: "docdeck turns documents into reveal.js slide decks",
	Long: `docdeck reads HTML, Markdown, DOCX, PDF, CSV and plain text documents,
groups their blocks into title, content and figure slides, and splits slides
that overflow the screen.`,
	SilenceUsage: true,
}

var verbose bool

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// buildFile reads path and runs it through the deck pipeline.
func buildFile(cmd *cobra.Command, cfg config.Config, path, title string) (*pipeline.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	po, oo := api.Options(cfg)
	return pipeline.NewBuilder(newLogger(), po, oo).Build(cmd.Context(), data, filepath.Base(path), title)
}
