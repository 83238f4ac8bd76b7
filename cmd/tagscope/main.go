package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gtmops/tagscope/internal/config"
	"github.com/gtmops/tagscope/internal/logger"
)

var (
	configPath string
	debug      bool
)

var cfg = &config.Config{}

var rootCmd = &cobra.Command{
	Use:   "tagscope",
	Short: "Tagscope - a Google Tag Manager container auditor",
	Long: `Tagscope audits Google Tag Manager container exports, surfacing
tracking-ID inconsistencies, duplicate or misconfigured tags, naming
convention violations and redundant legacy tags before configuration
changes go live.`,
	SilenceErrors: true, // We'll handle error printing ourselves
	SilenceUsage:  true, // We'll handle usage printing ourselves
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		// Load configuration from file or environment variable
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("error loading configuration: %w", err)
		}

		// flags override config due to highest precedence
		if debug {
			cfg.Debug = true
		}

		// Initialize logger
		logger.Init(cfg)

		// Print configuration source
		if configPath != "" || os.Getenv(config.TagscopeConfigPathEnvVar) != "" {
			logger.Debug().Msgf("Using config file: %s", configPath)
		} else {
			logger.Debug().Msg("Using default configuration")
		}

		return nil
	},
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: config.yml in current directory)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging and additional debug information")

	// Add commands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
