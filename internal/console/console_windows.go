//go:build windows

package console

import (
	"fmt"
	"syscall"
	"unsafe"
)

var (
	kernel32             = syscall.NewLazyDLL("kernel32.dll")
	setConsoleTitleProc  = kernel32.NewProc("SetConsoleTitleW")
	getConsoleWindowProc = kernel32.NewProc("GetConsoleWindow")
)

// SetTitle sets the console window title
func SetTitle(title string) error {
	titlePtr, err := syscall.UTF16PtrFromString(title)
	if err != nil {
		return err
	}

	r1, _, err := setConsoleTitleProc.Call(uintptr(unsafe.Pointer(titlePtr)))
	if r1 == 0 {
		return fmt.Errorf("SetConsoleTitle failed: %v", err)
	}
	return nil
}

// Window returns the console window handle (HWND), or 0 when there is none
func Window() uintptr {
	if err := getConsoleWindowProc.Find(); err != nil {
		return 0
	}
	hwnd, _, _ := getConsoleWindowProc.Call()
	return hwnd
}
