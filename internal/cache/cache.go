package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultDir      = "LauncherCache"
	InstallPathFile = "GamePath.txt"
	VersionFile     = "Version.txt"
	LogFile         = "launcher.log"
)

// Store keeps the launcher's single-line state files in one directory
type Store struct {
	Dir string
}

// New returns a store rooted at dir, or DefaultDir when dir is empty
func New(dir string) *Store {
	if strings.TrimSpace(dir) == "" {
		dir = DefaultDir
	}
	return &Store{Dir: dir}
}

// VersionFile returns the path of the installed-version file
func (s *Store) VersionFile() string {
	return filepath.Join(s.Dir, VersionFile)
}

// LogFile returns the path of the launcher log
func (s *Store) LogFile() string {
	return filepath.Join(s.Dir, LogFile)
}

// SaveInstallPath records the install directory
func (s *Store) SaveInstallPath(dir string) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	path := filepath.Join(s.Dir, InstallPathFile)
	if err := os.WriteFile(path, []byte(dir), 0644); err != nil {
		return fmt.Errorf("failed to save install path: %w", err)
	}
	return nil
}

// LoadInstallPath reads the recorded install directory
func (s *Store) LoadInstallPath() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir, InstallPathFile))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// EnsureInstallPath returns the recorded install directory, recording
// defaultDir first when none has been saved yet.
func (s *Store) EnsureInstallPath(defaultDir string) (string, error) {
	dir, err := s.LoadInstallPath()
	if err == nil && dir != "" {
		return dir, nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to read install path: %w", err)
	}

	if err := s.SaveInstallPath(defaultDir); err != nil {
		return "", err
	}
	return defaultDir, nil
}
