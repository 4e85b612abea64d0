// =============================================================================
// XML Contract Corrector - Check Command
// =============================================================================
//
// This file defines the 'check' command, which validates the reference
// table without processing any documents: does the configured source load,
// which header was detected as the key column, are there duplicate keys or
// incomplete rows.
//
// COMMAND USAGE:
//   xmlcorrect check
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/younessemlali/xml-contract-corrector/internal/config"
)

// checkCmd represents the 'check' command.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the reference table without processing documents",
	Long: `The check command loads the reference table from the configured source and
reports its health: record count, the header detected as the key column,
duplicate order numbers (the first row wins at correction time) and rows
with missing fields (empty fields are skipped at correction time).`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd)
	},
}

// init registers the check command.
func init() {
	rootCmd.AddCommand(checkCmd)
}

// runCheck loads the reference table and prints its diagnostics.
func runCheck(cmd *cobra.Command) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	source := cfg.Source(logger)
	fmt.Printf("Reference source: %s\n", source.Name())

	table, err := source.Load(cmd.Context())
	if err != nil {
		color.Red("✗ reference table failed to load")
		return err
	}

	color.Green("✓ reference table loaded")
	fmt.Printf("Records:    %d\n", table.Len())
	if table.KeyColumn() != "" {
		fmt.Printf("Key column: %q\n", table.KeyColumn())
	}

	if dups := table.Duplicates(); len(dups) > 0 {
		color.Yellow("! %d duplicate key(s); the first row wins:", len(dups))
		for _, key := range dups {
			fmt.Printf("    %s\n", key)
		}
	}

	var incomplete int
	for _, rec := range table.Records() {
		if !rec.IsComplete() {
			incomplete++
			color.Yellow("! order %s has empty field(s); they will be skipped", rec.OrderID)
		}
	}

	if len(table.Duplicates()) == 0 && incomplete == 0 {
		fmt.Println("No issues found.")
	}

	return nil
}
