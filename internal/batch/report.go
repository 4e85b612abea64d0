// =============================================================================
// XML Contract Corrector - Result Ledger
// =============================================================================
//
// The per-document and aggregate reporting model. Outcomes are produced
// once per input, in input order, and never mutated afterwards. Aggregate
// totals are always recomputed from the outcome slice; nothing patches them
// incrementally, so they cannot drift.
//
// =============================================================================

package batch

// Status classifies a single document's correction outcome.
type Status string

const (
	// StatusCorrected: the document was matched and corrected.
	StatusCorrected Status = "corrected"

	// StatusNotFound: no order identifier was found in the document.
	StatusNotFound Status = "identifier_not_found"

	// StatusUnmatched: an identifier was found but is absent from the
	// reference table.
	StatusUnmatched Status = "unmatched"

	// StatusParseError: the document is not well-formed XML.
	StatusParseError Status = "parse_error"
)

// Input is one uploaded document. The filename is an opaque label used only
// for reporting and output naming.
type Input struct {
	Filename string
	Data     []byte
}

// Outcome is the result of correcting one document.
type Outcome struct {
	// Filename is the input's label.
	Filename string

	// Status classifies the result.
	Status Status

	// OrderID is the normalized identifier, when one was extracted. Set
	// for Corrected and Unmatched outcomes.
	OrderID string

	// Source labels where the identifier was found, e.g.
	// "element OrderNumber".
	Source string

	// Message is a human-readable diagnostic sufficient to explain the
	// outcome without opening the document.
	Message string

	// StructuralChanges lists the elements created by the upsert, in
	// application order. Value overwrites are not changes.
	StructuralChanges []string

	// CorrectedBytes is the serialized corrected document. Non-nil if and
	// only if Status is StatusCorrected.
	CorrectedBytes []byte
}

// Totals are the aggregate counters of a batch run.
type Totals struct {
	// Processed is the number of outcomes, which always equals the number
	// of inputs.
	Processed int

	// Corrected counts StatusCorrected outcomes.
	Corrected int

	// UnmatchedOrNotFound counts StatusUnmatched and StatusNotFound
	// outcomes together.
	UnmatchedOrNotFound int

	// Errors counts StatusParseError outcomes.
	Errors int

	// TotalStructuralChanges sums the structural change counts of all
	// corrected documents.
	TotalStructuralChanges int
}

// Report is the full result of one batch run.
type Report struct {
	// RunID uniquely identifies the run, for archive naming and logs.
	RunID string

	// Outcomes holds one entry per input, in input order.
	Outcomes []Outcome

	// Totals are derived from Outcomes via ComputeTotals.
	Totals Totals
}

// CorrectedOutcomes returns the corrected outcomes in input order.
func (r *Report) CorrectedOutcomes() []Outcome {
	var out []Outcome
	for _, oc := range r.Outcomes {
		if oc.Status == StatusCorrected {
			out = append(out, oc)
		}
	}
	return out
}

// ComputeTotals derives aggregate counters from an outcome sequence. It is
// a pure function; callers recompute rather than patch.
func ComputeTotals(outcomes []Outcome) Totals {
	t := Totals{Processed: len(outcomes)}
	for _, oc := range outcomes {
		switch oc.Status {
		case StatusCorrected:
			t.Corrected++
			t.TotalStructuralChanges += len(oc.StructuralChanges)
		case StatusUnmatched, StatusNotFound:
			t.UnmatchedOrNotFound++
		case StatusParseError:
			t.Errors++
		}
	}
	return t
}
