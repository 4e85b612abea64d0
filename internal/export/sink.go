// =============================================================================
// XML Contract Corrector - Export Sink
// =============================================================================
//
// Turns a batch report into downloadable artifacts:
//
//   - One corrected_<original_name> file per corrected document.
//   - When more than one document was corrected, a zip archive bundling
//     them all under their output names, named after the run.
//
// Only Corrected outcomes produce artifacts; the sink never looks at a
// document's content, only at the serialized bytes the orchestrator
// recorded.
//
// =============================================================================

package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/younessemlali/xml-contract-corrector/internal/batch"
)

// OutputPrefix is prepended to the original filename to derive the output
// filename.
const OutputPrefix = "corrected_"

// OutputName derives the output filename for a corrected document. Any
// directory part of the original label is discarded.
func OutputName(filename string) string {
	return OutputPrefix + filepath.Base(filename)
}

// ArchiveName derives the zip archive filename for a run.
func ArchiveName(runID string) string {
	return fmt.Sprintf("%s%s.zip", OutputPrefix, runID)
}

// Sink writes correction artifacts to an output directory.
type Sink struct {
	// OutputDir receives the corrected files and the archive.
	OutputDir string

	// Logger records written artifacts; nil is allowed.
	Logger *zap.Logger
}

// NewSink returns a sink for the given directory.
func NewSink(outputDir string, logger *zap.Logger) *Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sink{OutputDir: outputDir, Logger: logger}
}

// WriteCorrected writes every corrected document to the output directory.
//
// RETURNS:
//   - The paths written, in outcome order.
//   - An error on the first write failure.
func (s *Sink) WriteCorrected(report *batch.Report) ([]string, error) {
	if err := os.MkdirAll(s.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var paths []string
	for _, oc := range report.CorrectedOutcomes() {
		path := filepath.Join(s.OutputDir, OutputName(oc.Filename))
		if err := os.WriteFile(path, oc.CorrectedBytes, 0644); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)

		s.Logger.Debug("corrected document written",
			zap.String("path", path),
			zap.Int("bytes", len(oc.CorrectedBytes)))
	}

	return paths, nil
}

// WriteArchive writes the zip archive for the run when the report contains
// more than one corrected document.
//
// RETURNS:
//   - The archive path, or "" when fewer than two documents were corrected.
//   - An error if the archive cannot be built or written.
func (s *Sink) WriteArchive(report *batch.Report) (string, error) {
	if len(report.CorrectedOutcomes()) < 2 {
		return "", nil
	}

	data, err := BuildArchive(report)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(s.OutputDir, ArchiveName(report.RunID))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write archive: %w", err)
	}

	s.Logger.Info("archive written",
		zap.String("path", path),
		zap.Int("documents", len(report.CorrectedOutcomes())))

	return path, nil
}

// BuildArchive assembles the in-memory zip of all corrected documents,
// stored under their output names.
func BuildArchive(report *batch.Report) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, oc := range report.CorrectedOutcomes() {
		w, err := zw.Create(OutputName(oc.Filename))
		if err != nil {
			return nil, fmt.Errorf("failed to add %s to archive: %w", oc.Filename, err)
		}
		if _, err := w.Write(oc.CorrectedBytes); err != nil {
			return nil, fmt.Errorf("failed to write %s into archive: %w", oc.Filename, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish archive: %w", err)
	}
	return buf.Bytes(), nil
}
