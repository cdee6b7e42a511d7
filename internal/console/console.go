// Package console manages the terminal the launcher runs in.
package console

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

var (
	mu    sync.Mutex
	out   io.Writer = os.Stdout
	quiet bool
)

// Init configures the console package
func Init(quietMode bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = quietMode
}

// SetOutput redirects Log output
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// Log prints a message if not in quiet mode
func Log(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if !quiet {
		fmt.Fprintf(out, format+"\n", args...)
	}
}

// Interactive reports whether stdin is a terminal that can answer prompts
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
