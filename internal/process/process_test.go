package process

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestHelperProcess is not a real test. It is re-executed by TestStart as the
// launched game and records its working directory.
func TestHelperProcess(t *testing.T) {
	out := os.Getenv("LAUNCHPAD_HELPER_OUT")
	if out == "" {
		return
	}
	wd, _ := os.Getwd()
	os.WriteFile(out, []byte(wd), 0644)
	os.Exit(0)
}

func TestStart_UsesWorkingDirectory(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping process test in short mode")
	}

	exe, err := os.Executable()
	if err != nil {
		t.Skipf("cannot locate test binary: %v", err)
	}

	workDir := t.TempDir()
	out := filepath.Join(t.TempDir(), "wd.txt")

	s := &Starter{
		Args: []string{"-test.run=TestHelperProcess"},
		Env:  []string{"LAUNCHPAD_HELPER_OUT=" + out},
	}
	if err := s.Start(exe, workDir); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	deadline := time.Now().Add(10 * time.Second)
	for {
		data, err := os.ReadFile(out)
		if err == nil && len(data) > 0 {
			got, _ := filepath.EvalSymlinks(string(data))
			want, _ := filepath.EvalSymlinks(workDir)
			if got != want {
				t.Errorf("child working directory = %q, want %q", got, want)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("launched process never reported its working directory")
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestStart_MissingExecutable(t *testing.T) {
	dir := t.TempDir()
	err := (&Starter{}).Start(filepath.Join(dir, "h2m-mod.exe"), dir)
	if err == nil {
		t.Fatal("Start() expected error for missing executable")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("Start() error = %v, want not found", err)
	}
}
