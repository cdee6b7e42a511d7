package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrCancelled is returned when the user dismisses a selection
var ErrCancelled = errors.New("folder selection cancelled")

// Config holds configuration for prompting
type Config struct {
	NonInteractive bool
	Title          string
	In             io.Reader
	Out            io.Writer
	// Owner returns the window that parents native dialogs
	Owner func() uintptr
}

func (cfg Config) in() io.Reader {
	if cfg.In != nil {
		return cfg.In
	}
	return os.Stdin
}

func (cfg Config) out() io.Writer {
	if cfg.Out != nil {
		return cfg.Out
	}
	return os.Stdout
}

func (cfg Config) title() string {
	if cfg.Title != "" {
		return cfg.Title
	}
	return "Select game directory"
}

// WaitForKey waits for user to press Enter
func WaitForKey(prompt string, cfg Config) {
	if cfg.NonInteractive {
		return
	}
	fmt.Fprint(cfg.out(), prompt)
	bufio.NewReader(cfg.in()).ReadBytes('\n')
}

// Confirm asks the user to confirm an action
func Confirm(prompt string, cfg Config) bool {
	if cfg.NonInteractive {
		return true
	}

	fmt.Fprintf(cfg.out(), "%s (y/n): ", prompt)
	response, err := bufio.NewReader(cfg.in()).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

// ReadFolder asks for a folder on the terminal. An empty answer keeps defaultPath.
func ReadFolder(defaultPath string, cfg Config) (string, error) {
	if cfg.NonInteractive {
		return defaultPath, nil
	}

	if defaultPath != "" {
		fmt.Fprintf(cfg.out(), "%s [%s]: ", cfg.title(), defaultPath)
	} else {
		fmt.Fprintf(cfg.out(), "%s: ", cfg.title())
	}

	line, err := bufio.NewReader(cfg.in()).ReadString('\n')
	if err != nil && line == "" {
		if errors.Is(err, io.EOF) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("failed to read folder: %w", err)
	}

	line = strings.Trim(strings.TrimSpace(line), `"`)
	if line == "" {
		if defaultPath == "" {
			return "", ErrCancelled
		}
		return defaultPath, nil
	}
	return line, nil
}
