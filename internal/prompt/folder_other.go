//go:build !windows

package prompt

// HasFolderDialog reports whether SelectFolder shows a native dialog
const HasFolderDialog = false

// SelectFolder asks for the folder on the terminal
func SelectFolder(defaultPath string, cfg Config) (string, error) {
	return ReadFolder(defaultPath, cfg)
}
