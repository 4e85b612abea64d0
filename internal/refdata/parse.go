// =============================================================================
// XML Contract Corrector - Reference Table Parsing
// =============================================================================
//
// Shared row-to-table logic for the CSV and XLSX loaders. The upstream
// export is hand-maintained, so column matching is deliberately tolerant:
//
//   - The key column's exact name varies ("Numéro de commande",
//     "Num commande", ...). It is located heuristically: the first header
//     containing both "num" and "commande", case-insensitively.
//   - The remaining required columns are matched by case-insensitive name:
//     Statut, Classification, HRBP, Code agence.
//   - Column order is irrelevant; extra columns are ignored.
//
// =============================================================================

package refdata

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Fixed column names matched case-insensitively in the header row.
const (
	columnStatus         = "Statut"
	columnClassification = "Classification"
	columnHRBP           = "HRBP"
	columnAgency         = "Code agence"
)

// columnLayout holds the resolved header indexes of the required columns.
type columnLayout struct {
	key            int
	keyName        string
	status         int
	classification int
	hrbp           int
	agency         int
}

// isKeyColumn is the heuristic predicate for the order-number column.
func isKeyColumn(header string) bool {
	h := strings.ToLower(header)
	return strings.Contains(h, "num") && strings.Contains(h, "commande")
}

// detectColumns resolves the required columns from a header row.
//
// RETURNS:
//   - The resolved layout.
//   - An error naming the first missing required column.
func detectColumns(headers []string) (columnLayout, error) {
	layout := columnLayout{key: -1, status: -1, classification: -1, hrbp: -1, agency: -1}

	for i, raw := range headers {
		header := strings.TrimSpace(raw)
		switch {
		case layout.key < 0 && isKeyColumn(header):
			layout.key = i
			layout.keyName = header
		case layout.status < 0 && strings.EqualFold(header, columnStatus):
			layout.status = i
		case layout.classification < 0 && strings.EqualFold(header, columnClassification):
			layout.classification = i
		case layout.hrbp < 0 && strings.EqualFold(header, columnHRBP):
			layout.hrbp = i
		case layout.agency < 0 && strings.EqualFold(header, columnAgency):
			layout.agency = i
		}
	}

	switch {
	case layout.key < 0:
		return layout, fmt.Errorf("no order-number column found in header %v", headers)
	case layout.status < 0:
		return layout, fmt.Errorf("missing required column %q", columnStatus)
	case layout.classification < 0:
		return layout, fmt.Errorf("missing required column %q", columnClassification)
	case layout.hrbp < 0:
		return layout, fmt.Errorf("missing required column %q", columnHRBP)
	case layout.agency < 0:
		return layout, fmt.Errorf("missing required column %q", columnAgency)
	}

	return layout, nil
}

// tableFromRows builds a table from raw tabular rows. The first row is the
// header; empty rows and rows with an empty key cell are skipped.
func tableFromRows(rows [][]string, logger *zap.Logger) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("reference table is empty")
	}

	layout, err := detectColumns(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isRowEmpty(row) {
			continue
		}

		rec := Record{
			OrderID:        cell(row, layout.key),
			AgencyCode:     cell(row, layout.agency),
			Status:         cell(row, layout.status),
			Classification: cell(row, layout.classification),
			HRBP:           cell(row, layout.hrbp),
		}
		if rec.OrderID == "" {
			continue
		}
		records = append(records, rec)
	}

	return NewTable(records, layout.keyName, logger), nil
}

// cell returns the trimmed value at index i, or "" when the row is short.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// isRowEmpty reports whether every cell of the row is blank.
func isRowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
