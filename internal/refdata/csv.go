// =============================================================================
// XML Contract Corrector - Reference Table CSV Loader
// =============================================================================
//
// Parses the reference table from CSV text. The upstream file is exported
// from a French spreadsheet, so the reader is configured tolerantly:
//
//   - The delimiter is sniffed from the header line: ';' when the header
//     contains more semicolons than commas, ',' otherwise.
//   - Lazy quotes and variable field counts are accepted.
//   - Leading whitespace in fields is trimmed.
//
// =============================================================================

package refdata

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// ParseCSV reads a reference table from CSV text.
//
// PARAMETERS:
//   - r: The CSV content, UTF-8 encoded, header row first.
//   - logger: Receives duplicate-key warnings; nil is allowed.
//
// RETURNS:
//   - The loaded table.
//   - An error if the content is not parseable or a required column is
//     missing.
func ParseCSV(r io.Reader, logger *zap.Logger) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference CSV: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)

	// Tolerate hand-edited exports: uneven rows and loose quoting are
	// common in the upstream file.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse reference CSV: %w", err)
	}

	return tableFromRows(rows, logger)
}

// parseCSVFile loads a reference table from a CSV file on disk.
func parseCSVFile(path string, logger *zap.Logger) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return ParseCSV(f, logger)
}

// sniffDelimiter picks the field delimiter by inspecting the header line.
func sniffDelimiter(data []byte) rune {
	header := string(data)
	if i := strings.IndexByte(header, '\n'); i >= 0 {
		header = header[:i]
	}
	if strings.Count(header, ";") > strings.Count(header, ",") {
		return ';'
	}
	return ','
}
