package install

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/distantorigin/launchpad/internal/paths"
)

// ExtractionError reports a corrupt archive or a failed write during extraction.
// Entry is empty when the archive itself could not be opened.
type ExtractionError struct {
	Entry string
	Err   error
}

func (e *ExtractionError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("extraction failed: %v", e.Err)
	}
	return fmt.Sprintf("extraction failed at %s: %v", e.Entry, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ProgressFunc is called before each entry with its index, the entry count and its name.
type ProgressFunc func(current, total int, name string)

// Extractor unpacks zip archives over an install directory.
type Extractor struct {
	Progress ProgressFunc
}

// Extract writes every entry of archivePath under destDir, overwriting
// existing files. Entries already written stay on disk if a later one fails.
func (x *Extractor) Extract(archivePath, destDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return &ExtractionError{Err: fmt.Errorf("failed to open archive: %w", err)}
	}
	defer reader.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return &ExtractionError{Err: fmt.Errorf("failed to create %s: %w", destDir, err)}
	}

	total := len(reader.File)
	for i, f := range reader.File {
		if x.Progress != nil {
			x.Progress(i+1, total, f.Name)
		}

		if err := extractEntry(f, destDir); err != nil {
			return &ExtractionError{Entry: f.Name, Err: err}
		}
	}

	return nil
}

func extractEntry(f *zip.File, destDir string) error {
	// Some archivers write backslash separators
	name := strings.ReplaceAll(f.Name, `\`, "/")
	if name == "" || name == "/" {
		return nil
	}

	target, err := paths.Within(destDir, filepath.Join(destDir, paths.Denormalize(name)))
	if err != nil {
		return err
	}

	if f.FileInfo().IsDir() || strings.HasSuffix(name, "/") {
		if err := os.MkdirAll(target, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	return extractFile(f, target)
}

func extractFile(f *zip.File, targetPath string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0644
	}

	out, err := os.OpenFile(targetPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
