package testing

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// ZipEntry is one entry of a generated archive. A name ending in "/" is a directory marker.
type ZipEntry struct {
	Name    string
	Content string
}

// BuildZip returns a zip archive containing entries in order
func BuildZip(t *testing.T, entries []ZipEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, e := range entries {
		f, err := w.Create(e.Name)
		if err != nil {
			t.Fatalf("failed to add %s to archive: %v", e.Name, err)
		}
		if e.Content != "" {
			if _, err := f.Write([]byte(e.Content)); err != nil {
				t.Fatalf("failed to write %s: %v", e.Name, err)
			}
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to finish archive: %v", err)
	}
	return buf.Bytes()
}

// WriteZip writes a generated archive to path and returns the path
func WriteZip(t *testing.T, path string, entries []ZipEntry) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, BuildZip(t, entries), 0644); err != nil {
		t.Fatalf("failed to write archive: %v", err)
	}
	return path
}

// GameArchive is a small archive shaped like a game release
func GameArchive(t *testing.T, exeName string) []byte {
	t.Helper()
	return BuildZip(t, []ZipEntry{
		{Name: exeName, Content: "MZ game binary"},
		{Name: "players2/"},
		{Name: "players2/config.cfg", Content: "seta name player"},
		{Name: "zone/english/patch.ff", Content: "fastfile"},
	})
}
