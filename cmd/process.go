// =============================================================================
// XML Contract Corrector - Process Command
// =============================================================================
//
// This file defines the 'process' command, which runs a batch correction.
//
// COMMAND USAGE:
//   xmlcorrect process [files...] [flags]
//
// FLAGS:
//   --dry-run     : Run the pipeline without writing any output files
//
// PROCESSING PIPELINE:
//   1. Load the configuration
//   2. Load the reference table from the configured source
//      (a load failure is fatal: nothing is processed without the table)
//   3. Collect the input documents (arguments, or *.xml in the input dir)
//   4. Run the batch orchestrator (bounded worker pool, input order kept)
//   5. Write corrected files, the batch archive, and the error log
//   6. Archive corrected input files and print the summary
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/younessemlali/xml-contract-corrector/internal/batch"
	"github.com/younessemlali/xml-contract-corrector/internal/config"
	"github.com/younessemlali/xml-contract-corrector/internal/export"
	"github.com/younessemlali/xml-contract-corrector/internal/extract"
	"github.com/younessemlali/xml-contract-corrector/pkg/utils"
)

// dryRun runs the pipeline without writing output files.
var dryRun bool

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process [files...]",
	Short: "Correct contract XML documents against the reference table",
	Long: `The process command corrects a batch of contract XML documents. Files can
be passed as arguments; without arguments every *.xml file in the configured
input directory is processed.

Each document is handled independently: a malformed document, a missing
order number or an unknown order degrades that document's outcome only and
never aborts the batch. A reference table that cannot be loaded aborts the
whole batch before any document is touched.

On success:
  - corrected_<name>.xml is written to the output directory per document
  - with more than one corrected document, a zip archive bundles them all
  - corrected input files are moved to the input archive

On per-document failure:
  - the document's outcome and message appear in the summary and error log
  - the input file stays in place so it can be fixed and resubmitted`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd.Context(), args)
	},
}

// init registers the process command and its flags.
func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Run the pipeline without writing output files",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess orchestrates one batch correction run.
func runProcess(ctx context.Context, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	fm := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir)
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	// =========================================================================
	// STEP 1: LOAD THE REFERENCE TABLE
	// =========================================================================
	// A table that cannot be loaded is fatal: no document can be resolved
	// without it, so the batch fails as a whole before any document is read.

	source := cfg.Source(logger)
	table, err := source.Load(ctx)
	if err != nil {
		color.Red("✗ reference table unavailable, batch aborted")
		return err
	}

	fmt.Printf("Reference table loaded: %d order(s) from %s\n", table.Len(), source.Name())

	// =========================================================================
	// STEP 2: COLLECT INPUT DOCUMENTS
	// =========================================================================

	files := args
	if len(files) == 0 {
		files, err = fm.DiscoverInputFiles()
		if err != nil {
			return err
		}
	}

	if len(files) == 0 {
		fmt.Println("No XML documents to process.")
		return nil
	}

	inputs := make([]batch.Input, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		inputs = append(inputs, batch.Input{Filename: filepath.Base(path), Data: data})
	}

	fmt.Printf("Processing %d document(s)...\n\n", len(inputs))

	// =========================================================================
	// STEP 3: RUN THE BATCH
	// =========================================================================

	extractor := extract.New()
	extractor.PadWidth = cfg.PadWidth

	orchestrator := &batch.Orchestrator{
		Extractor:      extractor,
		MaxConcurrency: cfg.MaxConcurrency,
		Logger:         logger,
	}

	report := orchestrator.Run(ctx, inputs, table)

	// =========================================================================
	// STEP 4: PER-DOCUMENT RESULTS
	// =========================================================================

	for _, oc := range report.Outcomes {
		switch oc.Status {
		case batch.StatusCorrected:
			color.Green("  ✓ %s -> %s (%d structural change(s))",
				oc.Filename, export.OutputName(oc.Filename), len(oc.StructuralChanges))
		case batch.StatusUnmatched, batch.StatusNotFound:
			color.Yellow("  ! %s: %s", oc.Filename, oc.Message)
		case batch.StatusParseError:
			color.Red("  ✗ %s: %s", oc.Filename, oc.Message)
		}
	}

	// =========================================================================
	// STEP 5: WRITE ARTIFACTS
	// =========================================================================

	if !dryRun {
		sink := export.NewSink(cfg.OutputDir, logger)

		if _, err := sink.WriteCorrected(report); err != nil {
			return err
		}

		archivePath, err := sink.WriteArchive(report)
		if err != nil {
			return err
		}
		if archivePath != "" {
			fmt.Printf("\nArchive: %s\n", archivePath)
		}

		var errorLines []string
		for _, oc := range report.Outcomes {
			if oc.Status != batch.StatusCorrected {
				errorLines = append(errorLines, fmt.Sprintf("%s: %s", oc.Filename, oc.Message))
			}
		}
		if logPath, err := fm.WriteErrorLog(errorLines); err != nil {
			return err
		} else if logPath != "" {
			fmt.Printf("Error log: %s\n", logPath)
		}

		if *cfg.ArchiveInputs {
			archiveInputs(fm, files, report)
		}
	}

	// =========================================================================
	// STEP 6: SUMMARY
	// =========================================================================

	fmt.Println("\n=== Batch Complete ===")
	fmt.Printf("Processed:            %d\n", report.Totals.Processed)
	fmt.Printf("Corrected:            %d\n", report.Totals.Corrected)
	fmt.Printf("Unmatched/not found:  %d\n", report.Totals.UnmatchedOrNotFound)
	fmt.Printf("Parse errors:         %d\n", report.Totals.Errors)
	fmt.Printf("Structural changes:   %d\n", report.Totals.TotalStructuralChanges)
	if dryRun {
		fmt.Println("(dry run: no files were written)")
	}

	return nil
}

// archiveInputs moves the input files of corrected documents into the input
// archive. Archival failures are reported but do not fail the run; the
// corrections themselves are already written.
func archiveInputs(fm *utils.FileManager, files []string, report *batch.Report) {
	corrected := make(map[string]bool)
	for _, oc := range report.CorrectedOutcomes() {
		corrected[oc.Filename] = true
	}

	for _, path := range files {
		if !corrected[filepath.Base(path)] {
			continue
		}
		if _, err := fm.ArchiveInputFile(path); err != nil {
			color.Yellow("  ! could not archive %s: %v", path, err)
		}
	}
}
