// =============================================================================
// XML Contract Corrector - File Manager Utility
// =============================================================================
//
// File management for the correction driver:
//   - Discovery of uploaded XML documents in the input directory
//   - Archival of successfully corrected input files
//   - Error log generation for failed documents
//   - Directory management
//
// ARCHIVAL STRATEGY:
//   - Input files are moved to the input archive after their document was
//     corrected and its output written.
//   - Files whose document failed (parse error, unmatched order) stay in
//     the input directory so they can be fixed and resubmitted.
//   - Name collisions in the archive are resolved with a random suffix
//     rather than overwriting.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileManager handles file operations for the corrector.
type FileManager struct {
	// InputDir is the directory where uploaded documents are placed.
	InputDir string

	// OutputDir is the directory where corrected documents are written.
	OutputDir string

	// InputArchiveDir is the directory for archived input files.
	InputArchiveDir string
}

// NewFileManager creates a FileManager over the configured directories.
func NewFileManager(inputDir, outputDir, inputArchiveDir string) *FileManager {
	return &FileManager{
		InputDir:        inputDir,
		OutputDir:       outputDir,
		InputArchiveDir: inputArchiveDir,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates all required directories if they don't exist.
func (fm *FileManager) EnsureDirectories() error {
	dirs := []string{
		fm.InputDir,
		fm.OutputDir,
		fm.InputArchiveDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles returns the XML documents waiting in the input
// directory, sorted by name so batch order is stable across runs.
func (fm *FileManager) DiscoverInputFiles() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(fm.InputDir, "*.xml"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

// =============================================================================
// ARCHIVAL
// =============================================================================

// ArchiveInputFile moves a processed input file into the input archive.
// A name collision in the archive gets a random suffix instead of
// overwriting the earlier file.
//
// RETURNS:
//   - The path the file was archived to.
//   - An error if the file cannot be moved.
func (fm *FileManager) ArchiveInputFile(path string) (string, error) {
	if err := os.MkdirAll(fm.InputArchiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	target := filepath.Join(fm.InputArchiveDir, filepath.Base(path))
	if _, err := os.Stat(target); err == nil {
		target = uniqueName(target)
	}

	if err := moveFile(path, target); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", path, err)
	}

	return target, nil
}

// uniqueName derives a collision-free variant of the target path by
// inserting a short random suffix before the extension.
func uniqueName(path string) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s_%s%s", base, suffix, ext)
}

// moveFile renames the file, falling back to copy-and-delete when source
// and target are on different filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Remove(src)
}

// =============================================================================
// ERROR LOG
// =============================================================================

// WriteErrorLog writes the failed-document messages of a run to a
// timestamped log file in the output directory.
//
// RETURNS:
//   - The log file path, or "" when there are no lines to write.
//   - An error if the log cannot be written.
func (fm *FileManager) WriteErrorLog(lines []string) (string, error) {
	if len(lines) == 0 {
		return "", nil
	}

	if err := os.MkdirAll(fm.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	name := fmt.Sprintf("errors_%s.log", time.Now().Format("20060102_150405"))
	path := filepath.Join(fm.OutputDir, name)

	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write error log: %w", err)
	}

	return path, nil
}
