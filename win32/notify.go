//go:build windows

package win32

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	nimAdd    = 0
	nimModify = 1
	nimDelete = 2

	nifMessage = 0x01
	nifIcon    = 0x02
	nifTip     = 0x04
)

// https://learn.microsoft.com/en-us/windows/win32/api/shellapi/ns-shellapi-notifyicondataw
type notifyIconData struct {
	Size            uint32
	Wnd             windows.Handle
	ID              uint32
	Flags           uint32
	CallbackMessage uint32
	Icon            windows.Handle
	Tip             [128]uint16
	State           uint32
	StateMask       uint32
	Info            [256]uint16
	Version         uint32
	InfoTitle       [64]uint16
	InfoFlags       uint32
	GUIDItem        windows.GUID
	BalloonIcon     windows.Handle
}

func notifyData(hwnd windows.Handle, id uint32) *notifyIconData {
	d := &notifyIconData{Wnd: hwnd, ID: id}
	d.Size = uint32(unsafe.Sizeof(*d))
	return d
}

func (d *notifyIconData) setTip(tip string) {
	wide, err := syscall.UTF16FromString(tip)
	if err != nil {
		return
	}
	if len(wide) > len(d.Tip) {
		wide = wide[:len(d.Tip)-1]
		wide = append(wide, 0)
	}
	copy(d.Tip[:], wide)
	d.Flags |= nifTip
}

func shellNotify(op uintptr, d *notifyIconData) error {
	r, _, err := pShellNotifyIcon.Call(op, uintptr(unsafe.Pointer(d)))
	return errCheck("Shell_NotifyIconW", r, err)
}

// NotifyIconAdd registers a taskbar notification icon whose mouse events
// arrive on hwnd as callbackMsg messages.
func NotifyIconAdd(hwnd windows.Handle, id uint32, callbackMsg uint32, hicon windows.Handle, tip string) error {
	d := notifyData(hwnd, id)
	d.Flags = nifMessage | nifIcon
	d.CallbackMessage = callbackMsg
	d.Icon = hicon
	d.setTip(tip)
	return shellNotify(nimAdd, d)
}

// NotifyIconSetTip replaces the icon's tooltip text.
func NotifyIconSetTip(hwnd windows.Handle, id uint32, tip string) error {
	d := notifyData(hwnd, id)
	d.setTip(tip)
	return shellNotify(nimModify, d)
}

// NotifyIconSetIcon replaces the taskbar icon image.
func NotifyIconSetIcon(hwnd windows.Handle, id uint32, hicon windows.Handle) error {
	d := notifyData(hwnd, id)
	d.Flags = nifIcon
	d.Icon = hicon
	return shellNotify(nimModify, d)
}

// NotifyIconDelete removes the taskbar icon.
func NotifyIconDelete(hwnd windows.Handle, id uint32) error {
	return shellNotify(nimDelete, notifyData(hwnd, id))
}
