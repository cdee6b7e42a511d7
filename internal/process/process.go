package process

import (
	"fmt"
	"os"
	"os/exec"
)

// Starter launches the installed executable detached from the launcher
type Starter struct {
	Args []string
	Env  []string
}

// Start runs exePath with workDir as its working directory and returns once
// the process has started. The child is not waited on.
func (s *Starter) Start(exePath, workDir string) error {
	if _, err := os.Stat(exePath); err != nil {
		return fmt.Errorf("%s not found: %w", exePath, err)
	}

	cmd := exec.Command(exePath, s.Args...)
	cmd.Dir = workDir
	if len(s.Env) > 0 {
		cmd.Env = append(os.Environ(), s.Env...)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch %s: %w", exePath, err)
	}

	// The child outlives the launcher
	return cmd.Process.Release()
}
