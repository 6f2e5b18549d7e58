//go:build windows

// Package win32 binds the pieces of the Windows API this module drives:
// popup menus, menu item bitmaps, the notify icon and the hidden message
// window behind it.
package win32

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/windows"
)

var (
	user32   = windows.NewLazySystemDLL("User32.dll")
	gdi32    = windows.NewLazySystemDLL("Gdi32.dll")
	shell32  = windows.NewLazySystemDLL("Shell32.dll")
	kernel32 = windows.NewLazySystemDLL("Kernel32.dll")

	pCreatePopupMenu     = user32.NewProc("CreatePopupMenu")
	pAppendMenu          = user32.NewProc("AppendMenuW")
	pSetMenuItemInfo     = user32.NewProc("SetMenuItemInfoW")
	pGetMenuItemCount    = user32.NewProc("GetMenuItemCount")
	pDestroyMenu         = user32.NewProc("DestroyMenu")
	pTrackPopupMenu      = user32.NewProc("TrackPopupMenu")
	pGetCursorPos        = user32.NewProc("GetCursorPos")
	pSetForegroundWindow = user32.NewProc("SetForegroundWindow")
	pGetSystemMetrics    = user32.NewProc("GetSystemMetrics")

	pCreateWindowEx   = user32.NewProc("CreateWindowExW")
	pDefWindowProc    = user32.NewProc("DefWindowProcW")
	pDestroyWindow    = user32.NewProc("DestroyWindow")
	pRegisterClass    = user32.NewProc("RegisterClassExW")
	pUnregisterClass  = user32.NewProc("UnregisterClassW")
	pGetMessage       = user32.NewProc("GetMessageW")
	pTranslateMessage = user32.NewProc("TranslateMessage")
	pDispatchMessage  = user32.NewProc("DispatchMessageW")
	pPostMessage      = user32.NewProc("PostMessageW")
	pPostQuitMessage  = user32.NewProc("PostQuitMessage")

	pLoadIcon        = user32.NewProc("LoadIconW")
	pLoadImage       = user32.NewProc("LoadImageW")
	pDestroyIcon     = user32.NewProc("DestroyIcon")
	pCreateIconIndir = user32.NewProc("CreateIconIndirect")

	pCreateDIBSection = gdi32.NewProc("CreateDIBSection")
	pCreateBitmap     = gdi32.NewProc("CreateBitmap")
	pDeleteObject     = gdi32.NewProc("DeleteObject")

	pShellNotifyIcon = shell32.NewProc("Shell_NotifyIconW")
)

// CallError is the single failure category of this package: a native call
// that reported failure, wrapping the OS status code.
type CallError struct {
	Op  string
	Err error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// errCheck maps the result of a BOOL-returning native call to an error.
// Every native call in this package funnels its result through here or
// through handleCheck.
func errCheck(op string, r uintptr, err error) error {
	if r == 0 {
		if err == nil || err == syscall.Errno(0) {
			err = syscall.EINVAL
		}
		return &CallError{Op: op, Err: err}
	}
	return nil
}

// handleCheck is errCheck for calls that return a handle instead of a BOOL.
func handleCheck(op string, r uintptr, err error) (uintptr, error) {
	if r == 0 {
		if err == nil || err == syscall.Errno(0) {
			err = syscall.EINVAL
		}
		return 0, &CallError{Op: op, Err: err}
	}
	return r, nil
}

type point struct {
	X, Y int32
}

// GetSystemMetrics constants used by this package.
const (
	smCxMenuCheck = 71
	smCxSmIcon    = 49
)

func systemMetric(index int) int {
	r, _, _ := pGetSystemMetrics.Call(uintptr(index))
	return int(r)
}

// MenuIconSize reports the side length the system uses for menu checkmark
// bitmaps, the natural size for menu item icons.
func MenuIconSize() int {
	if n := systemMetric(smCxMenuCheck); n > 0 {
		return n
	}
	return 16
}

// SmallIconSize reports the system small-icon side length used for notify
// icons.
func SmallIconSize() int {
	if n := systemMetric(smCxSmIcon); n > 0 {
		return n
	}
	return 16
}
