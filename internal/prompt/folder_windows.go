//go:build windows

package prompt

import (
	"fmt"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// HasFolderDialog reports whether SelectFolder shows a native dialog
const HasFolderDialog = true

// BIF_NEWDIALOGSTYLE | BIF_EDITBOX
const browseFlags = 0x40 | 0x10

// SelectFolder opens the Shell folder browser
func SelectFolder(defaultPath string, cfg Config) (string, error) {
	if cfg.NonInteractive {
		return defaultPath, nil
	}

	owner := uintptr(0)
	if cfg.Owner != nil {
		owner = cfg.Owner()
	}

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		// S_FALSE: already initialised on this thread
		if oleErr, ok := err.(*ole.OleError); !ok || oleErr.Code() != 1 {
			return "", fmt.Errorf("failed to initialise COM: %w", err)
		}
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject("Shell.Application")
	if err != nil {
		return "", fmt.Errorf("failed to create Shell object: %w", err)
	}
	defer unknown.Release()

	shell, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return "", fmt.Errorf("failed to get IDispatch interface: %w", err)
	}
	defer shell.Release()

	folderObj, err := oleutil.CallMethod(shell, "BrowseForFolder", int(owner), cfg.title(), browseFlags)
	if err != nil {
		return "", fmt.Errorf("failed to show folder dialog: %w", err)
	}
	defer folderObj.Clear()

	if folderObj.Value() == nil {
		return "", ErrCancelled
	}

	folder := folderObj.ToIDispatch()
	if folder == nil {
		return "", ErrCancelled
	}

	selfProp, err := oleutil.GetProperty(folder, "Self")
	if err != nil {
		return "", fmt.Errorf("failed to get folder item: %w", err)
	}
	defer selfProp.Clear()

	pathProp, err := oleutil.GetProperty(selfProp.ToIDispatch(), "Path")
	if err != nil {
		return "", fmt.Errorf("failed to get folder path: %w", err)
	}
	defer pathProp.Clear()

	selected := pathProp.ToString()
	if selected == "" {
		return "", ErrCancelled
	}
	return selected, nil
}
