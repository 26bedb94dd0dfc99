// Package main provides the textsmith CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"textsmith/cmd/textsmith/config"
)

var (
	// Global flags
	verbose bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "textsmith",
	Short: "textsmith - summarize and paraphrase text with Gemini",
	Long: `textsmith is a terminal writing assistant.

It sends your text to the Gemini generative-language endpoint to produce a
summary or a paraphrase, with selectable length and tone.

Run without arguments to start the interactive interface. The API key is read
from the GEMINI_API_KEY environment variable or entered in the interface; it
is held in memory only and never written to disk or logs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip logger init for interactive mode (it has its own UI and
		// stderr output would corrupt the alt screen).
		if cmd.Use == "textsmith" && cmd.CalledAs() == "textsmith" {
			logger = zap.NewNop()
			return nil
		}

		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _ := config.Load()
		return runInteractive(cfg, logger)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
