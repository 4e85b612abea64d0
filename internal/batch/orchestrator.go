// =============================================================================
// XML Contract Corrector - Batch Orchestrator
// =============================================================================
//
// Runs the correction pipeline over a batch of uploaded documents:
//
//   parse -> extract identifier -> resolve record -> upsert tags -> serialize
//
// Each document is processed independently; a failure in one degrades that
// document's outcome only. Documents are independent, so the batch is
// fanned out across a bounded worker pool. Workers write their outcome to
// the input's index slot, which restores input order in the report no
// matter how the pool interleaves.
//
// The reference table is loaded before Run is called; a table that cannot
// be loaded is a batch-level failure and the driver never invokes Run. The
// table is read-only here and safe for the concurrent workers.
//
// =============================================================================

package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/younessemlali/xml-contract-corrector/internal/correct"
	"github.com/younessemlali/xml-contract-corrector/internal/extract"
	"github.com/younessemlali/xml-contract-corrector/internal/refdata"
)

// DefaultMaxConcurrency bounds the worker pool when the configuration does
// not say otherwise.
const DefaultMaxConcurrency = 4

// Orchestrator coordinates batch correction runs.
type Orchestrator struct {
	// Extractor finds order identifiers. Nil means extract.New().
	Extractor *extract.Extractor

	// MaxConcurrency bounds the worker pool. Values below 1 mean
	// DefaultMaxConcurrency.
	MaxConcurrency int

	// Logger receives per-document debug events; nil is allowed.
	Logger *zap.Logger
}

// NewOrchestrator returns an orchestrator with default extraction settings.
func NewOrchestrator(logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		Extractor:      extract.New(),
		MaxConcurrency: DefaultMaxConcurrency,
		Logger:         logger,
	}
}

// Run corrects a batch of documents against the reference table.
//
// PARAMETERS:
//   - ctx: Carried for interface symmetry with the sources; a started batch
//     runs to completion, cancellation is coarse-grained at the driver.
//   - inputs: The uploaded documents, in upload order.
//   - table: The loaded reference table. Read-only.
//
// RETURNS:
//   - A report with exactly one outcome per input, in input order.
func (o *Orchestrator) Run(ctx context.Context, inputs []Input, table *refdata.Table) *Report {
	_ = ctx

	logger := o.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	report := &Report{
		RunID:    uuid.NewString(),
		Outcomes: make([]Outcome, len(inputs)),
	}

	workers := o.MaxConcurrency
	if workers < 1 {
		workers = DefaultMaxConcurrency
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				// Each worker owns a distinct index slot, so no
				// locking is needed around the outcome write.
				report.Outcomes[i] = o.correctOne(inputs[i], table, logger)
			}
		}()
	}

	for i := range inputs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	report.Totals = ComputeTotals(report.Outcomes)

	logger.Info("batch complete",
		zap.String("run_id", report.RunID),
		zap.Int("processed", report.Totals.Processed),
		zap.Int("corrected", report.Totals.Corrected),
		zap.Int("unmatched_or_not_found", report.Totals.UnmatchedOrNotFound),
		zap.Int("errors", report.Totals.Errors))

	return report
}

// correctOne runs the full pipeline for a single document. It owns the
// parsed tree exclusively for the duration of the call; the tree is
// serialized into the outcome and released.
func (o *Orchestrator) correctOne(in Input, table *refdata.Table, logger *zap.Logger) Outcome {
	outcome := Outcome{Filename: in.Filename}

	doc, err := correct.Parse(in.Data)
	if err != nil {
		outcome.Status = StatusParseError
		outcome.Message = fmt.Sprintf("document could not be parsed: %v", err)
		logger.Debug("parse failed", zap.String("file", in.Filename), zap.Error(err))
		return outcome
	}

	extractor := o.Extractor
	if extractor == nil {
		extractor = extract.New()
	}

	res, err := extractor.Extract(doc)
	if err != nil {
		if errors.Is(err, extract.ErrIdentifierNotFound) {
			outcome.Status = StatusNotFound
			outcome.Message = "no order identifier found in the document"
			return outcome
		}
		outcome.Status = StatusParseError
		outcome.Message = fmt.Sprintf("identifier extraction failed: %v", err)
		return outcome
	}
	outcome.OrderID = res.OrderID
	outcome.Source = res.Source

	rec, err := table.Resolve(res.OrderID)
	if err != nil {
		outcome.Status = StatusUnmatched
		outcome.Message = fmt.Sprintf("order %s (%s) is not in the reference table", res.OrderID, res.Source)
		return outcome
	}

	changes := correct.Apply(doc, rec)

	data, err := correct.Serialize(doc)
	if err != nil {
		// Serialization of a tree we just parsed should not fail; treat
		// it as a document-level error rather than aborting the batch.
		outcome.Status = StatusParseError
		outcome.Message = fmt.Sprintf("corrected document could not be serialized: %v", err)
		return outcome
	}

	outcome.Status = StatusCorrected
	outcome.StructuralChanges = changes
	outcome.CorrectedBytes = data
	outcome.Message = fmt.Sprintf("order %s corrected, %d structural change(s)", res.OrderID, len(changes))

	logger.Debug("document corrected",
		zap.String("file", in.Filename),
		zap.String("order_id", res.OrderID),
		zap.Int("structural_changes", len(changes)))

	return outcome
}
