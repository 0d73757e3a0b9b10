package main

import (
	"fmt"

	"github.com/dgallion1/docdeck/internal/config"
	"github.com/dgallion1/docdeck/internal/present"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type outlineDoc struct {
	Title  string              `yaml:"title"`
	Source string              `yaml:"source"`
	Slides []present.SlideInfo `yaml:"slides"`
}

var outlineTitle string

var outlineCmd = &cobra.Command{
	Use:   "outline FILE",
	Short: "Print the slide outline of a document as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := buildFile(cmd, config.Load(), args[0], outlineTitle)
		if err != nil {
			return err
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(outlineDoc{
			Title:  res.Title,
			Source: res.Filename,
			Slides: present.Describe(res.Slides),
		}); err != nil {
			return fmt.Errorf("encode outline: %w", err)
		}
		return enc.Close()
	},
}

func init() {
	outlineCmd.Flags().StringVar(&outlineTitle, "title", "", "Override the document title")
	rootCmd.AddCommand(outlineCmd)
}
