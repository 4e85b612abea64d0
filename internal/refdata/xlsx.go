// =============================================================================
// XML Contract Corrector - Reference Table XLSX Loader
// =============================================================================
//
// Parses the reference table directly from an XLSX workbook, for teams that
// maintain it in a spreadsheet instead of exporting CSV. The first sheet is
// read; row 1 is the header and column matching is shared with the CSV
// loader.
//
// =============================================================================

package refdata

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ParseXLSX reads a reference table from an XLSX workbook on disk.
//
// PARAMETERS:
//   - path: The workbook path.
//   - logger: Receives duplicate-key warnings; nil is allowed.
//
// RETURNS:
//   - The loaded table.
//   - An error if the workbook cannot be opened or the first sheet lacks a
//     required column.
func ParseXLSX(path string, logger *zap.Logger) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	table, err := tableFromRows(rows, logger)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheets[0], err)
	}
	return table, nil
}
