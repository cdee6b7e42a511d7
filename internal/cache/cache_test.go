package cache

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// TestSaveAndLoadInstallPath tests saving and loading the install directory
func TestSaveAndLoadInstallPath(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), DefaultDir))

	tests := []string{
		"/games/h2m",
		filepath.Join("C:", "Games", "H2M Mod"),
		"relative/dir",
	}

	for _, dir := range tests {
		t.Run(dir, func(t *testing.T) {
			if err := store.SaveInstallPath(dir); err != nil {
				t.Fatalf("SaveInstallPath() error = %v", err)
			}

			loaded, err := store.LoadInstallPath()
			if err != nil {
				t.Fatalf("LoadInstallPath() error = %v", err)
			}

			if loaded != dir {
				t.Errorf("LoadInstallPath() = %q, want %q", loaded, dir)
			}
		})
	}
}

// TestLoadInstallPath_TrimsWhitespace tests that whitespace is trimmed from the stored path
func TestLoadInstallPath_TrimsWhitespace(t *testing.T) {
	store := New(t.TempDir())
	pathFile := filepath.Join(store.Dir, InstallPathFile)

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "trailing newline",
			content: "/games/h2m\n",
			want:    "/games/h2m",
		},
		{
			name:    "windows line ending",
			content: "D:\\Games\\H2M\r\n",
			want:    "D:\\Games\\H2M",
		},
		{
			name:    "tabs and spaces",
			content: "\t /games/h2m \t\n",
			want:    "/games/h2m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := os.WriteFile(pathFile, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test file: %v", err)
			}

			loaded, err := store.LoadInstallPath()
			if err != nil {
				t.Fatalf("LoadInstallPath() error = %v", err)
			}
			if loaded != tt.want {
				t.Errorf("LoadInstallPath() = %q, want %q", loaded, tt.want)
			}
		})
	}
}

// TestLoadInstallPath_Missing tests loading when nothing was saved
func TestLoadInstallPath_Missing(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "nothing-here"))

	_, err := store.LoadInstallPath()
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadInstallPath() error = %v, want fs.ErrNotExist", err)
	}
}

// TestEnsureInstallPath tests that the default is recorded only once
func TestEnsureInstallPath(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), DefaultDir))

	got, err := store.EnsureInstallPath("/first/default")
	if err != nil {
		t.Fatalf("EnsureInstallPath() error = %v", err)
	}
	if got != "/first/default" {
		t.Errorf("EnsureInstallPath() = %q, want /first/default", got)
	}

	got, err = store.EnsureInstallPath("/second/default")
	if err != nil {
		t.Fatalf("EnsureInstallPath() error = %v", err)
	}
	if got != "/first/default" {
		t.Errorf("EnsureInstallPath() = %q, want saved /first/default", got)
	}
}

func TestNew_DefaultsDir(t *testing.T) {
	if got := New("  ").Dir; got != DefaultDir {
		t.Errorf("New(blank).Dir = %q, want %q", got, DefaultDir)
	}
	store := New("cache")
	if got := store.VersionFile(); got != filepath.Join("cache", VersionFile) {
		t.Errorf("VersionFile() = %q", got)
	}
}
