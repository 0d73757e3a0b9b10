package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docdeck/internal/config"
	"github.com/dgallion1/docdeck/internal/page"
	"github.com/dgallion1/docdeck/internal/present"
	"github.com/spf13/cobra"
)

var buildFlags struct {
	output   string
	title    string
	fit      bool
	viewport float64
}

var buildCmd = &cobra.Command{
	Use:   "build FILE",
	Short: "Write a standalone reveal.js page for a document",
	Long: `Builds the slide deck for FILE and writes a self-contained HTML page.
With --fit, slides whose estimated height exceeds --viewport are split
before writing, since a static page has no server to answer overflow events.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(cmd, args[0])
	},
}

func init() {
	cfg := config.Load()
	buildCmd.Flags().StringVarP(&buildFlags.output, "output", "o", "", "Output path (default: FILE with .html extension, - for stdout)")
	buildCmd.Flags().StringVar(&buildFlags.title, "title", "", "Override the document title")
	buildCmd.Flags().BoolVar(&buildFlags.fit, "fit", false, "Pre-split slides that overflow the viewport")
	buildCmd.Flags().Float64Var(&buildFlags.viewport, "viewport", cfg.FitViewport, "Viewport height in pixels for --fit")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, path string) error {
	cfg := config.Load()
	res, err := buildFile(cmd, cfg, path, buildFlags.title)
	if err != nil {
		return err
	}

	state := present.New(res.Slides)
	if buildFlags.fit {
		n, err := state.Fit(present.DefaultLineMeasurer(), buildFlags.viewport, cfg.FitMaxSplits)
		if err != nil {
			return fmt.Errorf("fit: %w", err)
		}
		newLogger().Debug("fit complete", "splits", n, "slides", state.Deck.Len())
	}

	out := buildFlags.output
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + ".html"
	}
	opts := page.Options{Title: res.Title, RevealVersion: cfg.RevealVersion}

	if out == "-" {
		return page.Write(cmd.OutOrStdout(), state.Container, opts)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if err := page.Write(f, state.Container, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", out, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d slides)\n", out, state.Deck.Len())
	return nil
}
