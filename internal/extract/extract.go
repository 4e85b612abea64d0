// =============================================================================
// XML Contract Corrector - Identifier Extractor Module
// =============================================================================
//
// This module locates the order identifier embedded in an uploaded contract
// document and normalizes it into the fixed-width form used as the reference
// table key.
//
// EXTRACTION STRATEGY:
//   The extractor probes an explicit, ordered list of candidate names.
//   Precedence is a constant of this package, not implicit control flow:
//
//   1. Element candidates, checked as direct children of the document root:
//        OrderNumber, CommandNumber, NumeroCommande, ContractNumber, Reference
//   2. The same element candidates, searched across the whole tree in
//      document order (agency exports sometimes nest the order block).
//   3. Attribute candidates, checked on every element in document order:
//        orderNumber, commandNumber, numero, ref
//
//   The first candidate with a non-empty value wins. First match wins;
//   there is no scoring or best-match pass.
//
// NORMALIZATION:
//   Identifiers are trimmed and left-padded with '0' to a fixed width.
//   Padding is purely string-based: an alphanumeric reference such as
//   "A54" becomes "000A54". This tolerates agency reference codes and is
//   a documented rule, not a defect.
//
// =============================================================================

package extract

import (
	"errors"
	"strings"

	"github.com/beevik/etree"
)

// DefaultPadWidth is the fixed width identifiers are padded to. Reference
// table keys are padded to the same width at load time.
const DefaultPadWidth = 6

// ErrIdentifierNotFound is returned when no candidate element or attribute
// carries a non-empty value.
var ErrIdentifierNotFound = errors.New("no order identifier found in document")

// =============================================================================
// CANDIDATE TABLES
// =============================================================================

// Candidate pairs a diagnostic label with the predicate that decides whether
// an element tag or attribute key matches it. Candidates are evaluated in
// slice order and the first hit wins.
type Candidate struct {
	// Label identifies the candidate in outcome diagnostics,
	// e.g. "element OrderNumber".
	Label string

	// Match reports whether the given tag or attribute key belongs to
	// this candidate. Matching is plain name matching; namespaces are
	// out of scope.
	Match func(name string) bool
}

// nameEquals builds a case-insensitive exact-name predicate.
func nameEquals(name string) func(string) bool {
	return func(candidate string) bool {
		return strings.EqualFold(candidate, name)
	}
}

// ElementCandidates is the ordered element probe list. Order is the
// matching precedence.
var ElementCandidates = []Candidate{
	{Label: "element OrderNumber", Match: nameEquals("OrderNumber")},
	{Label: "element CommandNumber", Match: nameEquals("CommandNumber")},
	{Label: "element NumeroCommande", Match: nameEquals("NumeroCommande")},
	{Label: "element ContractNumber", Match: nameEquals("ContractNumber")},
	{Label: "element Reference", Match: nameEquals("Reference")},
}

// AttributeCandidates is the ordered attribute probe list, used only when
// no element candidate matched.
var AttributeCandidates = []Candidate{
	{Label: "attribute orderNumber", Match: nameEquals("orderNumber")},
	{Label: "attribute commandNumber", Match: nameEquals("commandNumber")},
	{Label: "attribute numero", Match: nameEquals("numero")},
	{Label: "attribute ref", Match: nameEquals("ref")},
}

// =============================================================================
// EXTRACTOR
// =============================================================================

// Extractor finds order identifiers using configurable candidate tables and
// padding width. The zero value is not usable; use New.
type Extractor struct {
	// Elements are the element candidates, in precedence order.
	Elements []Candidate

	// Attributes are the attribute candidates, in precedence order.
	Attributes []Candidate

	// PadWidth is the normalization width.
	PadWidth int
}

// Result is a successful extraction.
type Result struct {
	// OrderID is the normalized identifier.
	OrderID string

	// Source labels where the identifier was found, for diagnostics.
	// Example: "element OrderNumber".
	Source string
}

// New returns an Extractor with the default candidate tables and padding
// width.
func New() *Extractor {
	return &Extractor{
		Elements:   ElementCandidates,
		Attributes: AttributeCandidates,
		PadWidth:   DefaultPadWidth,
	}
}

// Extract probes the document for an order identifier.
//
// PARAMETERS:
//   - doc: The parsed document. Read-only; Extract never mutates it.
//
// RETURNS:
//   - The normalized identifier and its source label.
//   - ErrIdentifierNotFound if no candidate carries a non-empty value.
func (e *Extractor) Extract(doc *etree.Document) (Result, error) {
	root := doc.Root()
	if root == nil {
		return Result{}, ErrIdentifierNotFound
	}

	// Pass 1: direct children of the root, in candidate precedence order.
	for _, cand := range e.Elements {
		for _, child := range root.ChildElements() {
			if cand.Match(child.Tag) {
				if value := strings.TrimSpace(child.Text()); value != "" {
					return Result{OrderID: e.Normalize(value), Source: cand.Label}, nil
				}
			}
		}
	}

	// Pass 2: the whole tree in document order, same candidates.
	for _, cand := range e.Elements {
		if value := findElementText(root, cand.Match); value != "" {
			return Result{OrderID: e.Normalize(value), Source: cand.Label}, nil
		}
	}

	// Pass 3: attributes on every element in document order.
	for _, cand := range e.Attributes {
		if value := findAttributeValue(root, cand.Match); value != "" {
			return Result{OrderID: e.Normalize(value), Source: cand.Label}, nil
		}
	}

	return Result{}, ErrIdentifierNotFound
}

// Normalize trims the identifier and left-pads it with '0' to the
// extractor's width. Normalization is idempotent: applying it twice yields
// the same value.
func (e *Extractor) Normalize(id string) string {
	return pad(strings.TrimSpace(id), e.PadWidth)
}

// Normalize applies the default-width normalization. The reference table
// loader uses this so document identifiers and table keys normalize
// identically.
func Normalize(id string) string {
	return pad(strings.TrimSpace(id), DefaultPadWidth)
}

// pad left-pads s with '0' to the given width. Padding is string-based;
// non-numeric identifiers are padded like any other.
func pad(s string, width int) string {
	if width <= 0 {
		width = DefaultPadWidth
	}
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// =============================================================================
// TREE TRAVERSAL HELPERS
// =============================================================================

// findElementText walks the subtree rooted at el in document order and
// returns the first non-empty trimmed text of an element whose tag matches.
func findElementText(el *etree.Element, match func(string) bool) string {
	if match(el.Tag) {
		if value := strings.TrimSpace(el.Text()); value != "" {
			return value
		}
	}
	for _, child := range el.ChildElements() {
		if value := findElementText(child, match); value != "" {
			return value
		}
	}
	return ""
}

// findAttributeValue walks the subtree rooted at el in document order and
// returns the first non-empty trimmed attribute value whose key matches.
func findAttributeValue(el *etree.Element, match func(string) bool) string {
	for _, attr := range el.Attr {
		if match(attr.Key) {
			if value := strings.TrimSpace(attr.Value); value != "" {
				return value
			}
		}
	}
	for _, child := range el.ChildElements() {
		if value := findAttributeValue(child, match); value != "" {
			return value
		}
	}
	return ""
}
