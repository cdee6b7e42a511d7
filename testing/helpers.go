package testing

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile writes content to path, creating parent directories
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ReadFile returns the content of path or fails the test
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func stat(path string) (fs.FileInfo, bool) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false
	}
	return info, err == nil
}

// AssertFileExists fails when path is missing or a directory
func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	info, ok := stat(path)
	switch {
	case !ok:
		t.Errorf("expected file at %s", path)
	case info.IsDir():
		t.Errorf("%s is a directory, want a file", path)
	}
}

// AssertDirExists fails when path is missing or not a directory
func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, ok := stat(path)
	if !ok || !info.IsDir() {
		t.Errorf("expected directory at %s", path)
	}
}

// AssertFileNotExists fails when anything exists at path
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, ok := stat(path); ok {
		t.Errorf("%s should not exist", path)
	}
}

// AssertFileContent compares the whole file against want
func AssertFileContent(t *testing.T, path, want string) {
	t.Helper()
	if got := ReadFile(t, path); got != want {
		t.Errorf("%s content:\nwant: %q\ngot:  %q", filepath.Base(path), want, got)
	}
}

// AssertContains fails when s lacks substr
func AssertContains(t *testing.T, s, substr, msg string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Errorf("%s: %q does not contain %q", msg, s, substr)
	}
}
