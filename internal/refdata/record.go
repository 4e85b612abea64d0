// =============================================================================
// XML Contract Corrector - Reference Data Module
// =============================================================================
//
// This package owns the reference table that maps order identifiers to the
// authoritative position attributes inserted into corrected documents.
//
// A table is loaded wholesale once per batch run from one of the sources in
// source.go, normalized at load time, and never mutated afterwards. The
// resolver is an exact-match lookup: the table's keys and the identifiers
// extracted from documents go through the same zero-pad normalization, so
// resolution is plain string equality.
//
// DUPLICATE KEYS:
//   A table with two rows sharing a normalized key keeps the first row in
//   table order. The collision is logged at load time and surfaced through
//   Duplicates so the 'check' command can report it, but it is not an error.
//
// =============================================================================

package refdata

import (
	"errors"

	"go.uber.org/zap"

	"github.com/younessemlali/xml-contract-corrector/internal/extract"
)

// ErrRecordNotFound is returned by Resolve when the identifier is
// well-formed but absent from the table.
var ErrRecordNotFound = errors.New("order identifier not found in reference table")

// =============================================================================
// RECORD
// =============================================================================

// Record is one row of the reference table.
type Record struct {
	// OrderID is the natural key: a fixed-width zero-padded string.
	OrderID string

	// AgencyCode is the issuing agency code, e.g. "LV2-LV2".
	AgencyCode string

	// Status is the full position status text, e.g. "N2 - Niveau 2 (4B +)".
	// The first whitespace-delimited token is the status code.
	Status string

	// Classification is the position classification text.
	Classification string

	// HRBP is the responsible HR business partner name.
	HRBP string
}

// IsComplete reports whether every correction-relevant field is non-empty.
// An incomplete record is still usable; empty fields are skipped at upsert
// time.
func (r Record) IsComplete() bool {
	return r.OrderID != "" && r.AgencyCode != "" && r.Status != "" &&
		r.Classification != "" && r.HRBP != ""
}

// =============================================================================
// TABLE
// =============================================================================

// Table is an immutable, key-normalized reference table. Concurrent readers
// need no locking; nothing mutates a table after NewTable returns.
type Table struct {
	records   []Record
	index     map[string]int
	dups      []string
	keyColumn string
}

// NewTable builds a table from rows already mapped to records. Keys are
// normalized with the same padding rule applied to document identifiers.
// keyColumn is the detected header name of the key column, kept for
// diagnostics; it may be empty for programmatic tables.
func NewTable(records []Record, keyColumn string, logger *zap.Logger) *Table {
	if logger == nil {
		logger = zap.NewNop()
	}

	t := &Table{
		records:   make([]Record, 0, len(records)),
		index:     make(map[string]int, len(records)),
		keyColumn: keyColumn,
	}

	for _, rec := range records {
		rec.OrderID = extract.Normalize(rec.OrderID)
		t.records = append(t.records, rec)

		if _, exists := t.index[rec.OrderID]; exists {
			// First row wins; later rows with the same key are kept in
			// the record list but never resolved.
			t.dups = append(t.dups, rec.OrderID)
			logger.Warn("duplicate reference table key, first row wins",
				zap.String("order_id", rec.OrderID))
			continue
		}
		t.index[rec.OrderID] = len(t.records) - 1
	}

	return t
}

// Resolve returns the record for the given normalized identifier.
//
// RETURNS:
//   - The matching record.
//   - ErrRecordNotFound if no row carries the identifier.
func (t *Table) Resolve(orderID string) (Record, error) {
	i, ok := t.index[orderID]
	if !ok {
		return Record{}, ErrRecordNotFound
	}
	return t.records[i], nil
}

// Len returns the number of rows loaded, duplicates included.
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns a copy of the loaded rows in table order.
func (t *Table) Records() []Record {
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// Duplicates returns the normalized keys that appeared more than once, one
// entry per shadowed row.
func (t *Table) Duplicates() []string {
	out := make([]string, len(t.dups))
	copy(out, t.dups)
	return out
}

// KeyColumn returns the header name the key column was detected under, or
// "" for tables not loaded from tabular text.
func (t *Table) KeyColumn() string {
	return t.keyColumn
}
