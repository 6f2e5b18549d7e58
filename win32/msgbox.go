//go:build windows

package win32

import (
	"syscall"
	"unsafe"
)

var procMessageBox = user32.NewProc("MessageBoxW")

const (
	MB_OK              = 0x00000000
	MB_OKCANCEL        = 0x00000001
	MB_YESNOCANCEL     = 0x00000003
	MB_YESNO           = 0x00000004
	MB_ICONHAND        = 0x00000010
	MB_ICONQUESTION    = 0x00000020
	MB_ICONEXCLAMATION = 0x00000030
	MB_ICONASTERISK    = 0x00000040
	MB_ICONWARNING     = MB_ICONEXCLAMATION
	MB_ICONERROR       = MB_ICONHAND
	MB_ICONINFORMATION = MB_ICONASTERISK

	IDOK     = 1
	IDCANCEL = 2
	IDYES    = 6
	IDNO     = 7
)

func MessageBox(title, text string, style uintptr) int {
	pText, err := syscall.UTF16PtrFromString(text)
	if err != nil {
		return -1
	}
	pTitle, err := syscall.UTF16PtrFromString(title)
	if err != nil {
		return -1
	}
	ret, _, _ := procMessageBox.Call(
		0,
		uintptr(unsafe.Pointer(pText)),
		uintptr(unsafe.Pointer(pTitle)),
		style,
	)
	return int(ret)
}
