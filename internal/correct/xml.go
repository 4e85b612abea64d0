// =============================================================================
// XML Contract Corrector - Document Parsing and Serialization
// =============================================================================
//
// Thin wrappers around the etree document model. Parsing and serialization
// are deliberately conservative: the corrector's contract is to touch only
// the tags it upserts, so Serialize writes the tree back exactly as parsed
// plus the mutations — no declaration injection, no re-indentation. A
// document serialized once reaches a fixed point: parse, apply, serialize
// again yields identical bytes.
//
// =============================================================================

package correct

import (
	"fmt"

	"github.com/beevik/etree"
)

// Parse reads a document from raw UTF-8 XML bytes.
//
// RETURNS:
//   - The parsed document.
//   - An error if the bytes are not well-formed XML or lack a root element.
func Parse(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("malformed XML: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("malformed XML: no root element")
	}
	return doc, nil
}

// Serialize writes the document back to bytes.
func Serialize(doc *etree.Document) ([]byte, error) {
	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	return data, nil
}
