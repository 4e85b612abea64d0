// =============================================================================
// XML Contract Corrector - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (xmlcorrect)
//   ├── processCmd (xmlcorrect process)
//   ├── checkCmd   (xmlcorrect check)
//   └── versionCmd (xmlcorrect version)
//
// The root command owns the global flags (--config, --verbose) and the
// construction of the shared zap logger.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/younessemlali/xml-contract-corrector/internal/config"
)

// =============================================================================
// GLOBAL FLAGS
// =============================================================================

// cfgFile holds the path to the configuration file.
// Overridden with the --config flag.
var cfgFile string

// verbose forces debug-level logging when set.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "xmlcorrect",
	Short: "XML Contract Corrector - Insert authoritative position data into contract documents",
	Long: `XML Contract Corrector ingests employment contract XML documents, locates
the embedded order number, looks the order up in the published reference
table, and upserts the position characteristic tags to match — without
disturbing the rest of the document.

Key Features:
  - Batch correction with per-document outcomes and aggregate totals
  - Reference table over HTTP (with TTL cache), local CSV or XLSX
  - Idempotent corrections: re-running a corrected file changes nothing
  - Corrected files individually plus a zip archive for the whole batch

Example Usage:
  xmlcorrect process                    # Correct every XML file in the input directory
  xmlcorrect process contrat1.xml       # Correct specific files
  xmlcorrect check                      # Validate the reference table without processing`,

	Run: func(cmd *cobra.Command, args []string) {
		// No subcommand: print the help message.
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once, by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the persistent flags shared by all subcommands.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// newLogger builds the zap logger used by every subcommand. --verbose wins
// over the configured level.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg != nil {
		if err := level.Set(cfg.LogLevel); err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
