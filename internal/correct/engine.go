// =============================================================================
// XML Contract Corrector - Tag Upsert Engine
// =============================================================================
//
// Applies the fixed field-to-tag mapping of a resolved reference record to a
// contract document, mutating the document tree in place.
//
// MAPPING (applied in this order):
//   1. PositionCharacteristics       — container, directly under the root
//   2. PositionStatus/Code           — first token of the status text
//      PositionStatus/Description    — full status text
//   3. PositionLevel                 — classification text
//   4. PositionCoefficient           — HRBP name
//
// UPSERT SEMANTICS:
//   Every target element is created if absent (appended as last child) and
//   its text is then set unconditionally. Re-running on an already corrected
//   document therefore creates nothing and re-asserts the same values: the
//   corrected document is a fixed point.
//
// CHANGE REPORTING:
//   Only element creations are reported. A value overwrite on a
//   pre-existing element is not a structural change. The Code and
//   Description children are part of the PositionStatus creation and are
//   not counted separately.
//
// FIELD SKIPPING:
//   A record field that is empty leaves the corresponding tags untouched,
//   existing values included. The engine itself never fails.
//
// =============================================================================

package correct

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/younessemlali/xml-contract-corrector/internal/refdata"
)

// Target element names of the fixed mapping.
const (
	ContainerTag   = "PositionCharacteristics"
	StatusTag      = "PositionStatus"
	StatusCodeTag  = "Code"
	StatusDescTag  = "Description"
	LevelTag       = "PositionLevel"
	CoefficientTag = "PositionCoefficient"
)

// Apply upserts the record's attributes into the document.
//
// PARAMETERS:
//   - doc: The parsed document. Mutated in place; the caller owns it.
//   - rec: The resolved reference record.
//
// RETURNS:
//   - The ordered list of structural creations, one human-readable label
//     per element that did not previously exist. Empty on a re-run.
func Apply(doc *etree.Document, rec refdata.Record) []string {
	root := doc.Root()
	if root == nil {
		return nil
	}

	var changes []string

	// Container first. If one already exists it is reused verbatim; with
	// more than one, the first in document order wins.
	container := root.SelectElement(ContainerTag)
	if container == nil {
		container = root.CreateElement(ContainerTag)
		changes = append(changes, fmt.Sprintf("added <%s> container", ContainerTag))
	}

	if rec.Status != "" {
		status := container.SelectElement(StatusTag)
		if status == nil {
			status = container.CreateElement(StatusTag)
			changes = append(changes, fmt.Sprintf("added <%s> with code and description", StatusTag))
		}
		ensureChild(status, StatusCodeTag).SetText(statusCode(rec.Status))
		ensureChild(status, StatusDescTag).SetText(rec.Status)
	}

	if rec.Classification != "" {
		_, created := upsertText(container, LevelTag, rec.Classification)
		if created {
			changes = append(changes, fmt.Sprintf("added <%s>", LevelTag))
		}
	}

	if rec.HRBP != "" {
		_, created := upsertText(container, CoefficientTag, rec.HRBP)
		if created {
			changes = append(changes, fmt.Sprintf("added <%s>", CoefficientTag))
		}
	}

	return changes
}

// statusCode derives the status code from the full status text: the first
// whitespace-delimited token. "N2 - Niveau 2 (4B +)" yields "N2".
func statusCode(status string) string {
	fields := strings.Fields(status)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// ensureChild returns the first child with the given tag, creating it as the
// last child when absent.
func ensureChild(parent *etree.Element, tag string) *etree.Element {
	if el := parent.SelectElement(tag); el != nil {
		return el
	}
	return parent.CreateElement(tag)
}

// upsertText ensures a child element with the given tag and sets its text
// unconditionally. It reports whether the element had to be created.
func upsertText(parent *etree.Element, tag, text string) (*etree.Element, bool) {
	el := parent.SelectElement(tag)
	created := el == nil
	if created {
		el = parent.CreateElement(tag)
	}
	el.SetText(text)
	return el, created
}
