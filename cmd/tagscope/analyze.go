package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gtmops/tagscope/internal/ingestor"
)

var (
	analyzeOpts = &ingestor.Options{}
	source      string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [source]",
	Short: "Audit a GTM container export",
	Long: `Audit a Google Tag Manager container export from a local file or a
remote URL.

Examples:
  # Audit a local container export
  tagscope analyze container.json

  # Audit a remote export
  tagscope analyze https://example.com/exports/GTM-XXXXXX.json

  # Emit the report as JSON
  tagscope analyze container.json -o json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source = args[0]

		analyzeOpts.NamingWhitelist = append(analyzeOpts.NamingWhitelist, cfg.Naming.Whitelist...)

		ing := ingestor.New(analyzeOpts)
		result, err := ing.Ingest(cmd.Context(), source)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}

		if !result.Success {
			return fmt.Errorf("analysis failed: %v", result.Error)
		}

		fmt.Print(result.OutputFormatted)
		return nil
	},
}

func init() {
	// Add flags specific to analyze command
	flags := analyzeCmd.Flags()
	flags.StringVarP(&analyzeOpts.OutputFormat, "output", "o", "table", "output format (table, json, yaml)")
	flags.StringSliceVar(&analyzeOpts.NamingWhitelist, "naming-whitelist", nil,
		"tag names exempt from the naming convention assessment")
}
