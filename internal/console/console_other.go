//go:build !windows

package console

import "fmt"

// SetTitle sets the terminal title with an OSC escape sequence
func SetTitle(title string) error {
	mu.Lock()
	defer mu.Unlock()
	_, err := fmt.Fprintf(out, "\x1b]0;%s\x07", title)
	return err
}

// Window returns 0; only Windows consoles have a window handle
func Window() uintptr {
	return 0
}
