//go:build windows

package win32

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Window messages used by the tray package.
const (
	WMDestroy     = 0x0002
	WMClose       = 0x0010
	WMCommand     = 0x0111
	WMLButtonUp   = 0x0202
	WMRButtonUp   = 0x0205
	WMContextMenu = 0x007B
	WMApp         = 0x8000
)

// Contains window class information.
// It is used with the RegisterClassEx and GetClassInfoEx functions.
// https://msdn.microsoft.com/en-us/library/ms633577.aspx
type WndClassEx struct {
	Size, Style                        uint32
	WndProc                            uintptr
	ClsExtra, WndExtra                 int32
	Instance, Icon, Cursor, Background windows.Handle
	MenuName, ClassName                *uint16
	IconSm                             windows.Handle
}

// Register registers the window class for subsequent CreateWindow calls.
// https://msdn.microsoft.com/en-us/library/ms633587.aspx
func (w *WndClassEx) Register() error {
	w.Size = uint32(unsafe.Sizeof(*w))
	r, _, err := pRegisterClass.Call(uintptr(unsafe.Pointer(w)))
	return errCheck("RegisterClassExW", r, err)
}

// Unregister frees the memory required for the class.
// https://msdn.microsoft.com/en-us/library/ms644899.aspx
func (w *WndClassEx) Unregister() error {
	r, _, err := pUnregisterClass.Call(
		uintptr(unsafe.Pointer(w.ClassName)),
		uintptr(w.Instance),
	)
	return errCheck("UnregisterClassW", r, err)
}

// CreateMessageWindow creates an invisible window of the named class, used
// only to receive notify icon callbacks and menu notifications.
func CreateMessageWindow(className string) (windows.Handle, error) {
	namePtr, err := syscall.UTF16PtrFromString(className)
	if err != nil {
		return 0, err
	}
	r, _, callErr := pCreateWindowEx.Call(
		0,
		uintptr(unsafe.Pointer(namePtr)),
		uintptr(unsafe.Pointer(namePtr)),
		0, 0, 0, 0, 0,
		0, 0, 0, 0,
	)
	h, err := handleCheck("CreateWindowExW", r, callErr)
	return windows.Handle(h), err
}

// DefWindowProc forwards an unhandled message to the default procedure.
func DefWindowProc(hwnd windows.Handle, msg uint32, wParam, lParam uintptr) uintptr {
	r, _, _ := pDefWindowProc.Call(uintptr(hwnd), uintptr(msg), wParam, lParam)
	return r
}

// DestroyWindow destroys the window. Must run on the thread that created it.
func DestroyWindow(hwnd windows.Handle) error {
	r, _, err := pDestroyWindow.Call(uintptr(hwnd))
	return errCheck("DestroyWindow", r, err)
}

// PostMessage posts a message to the window's thread queue. Safe to call
// from any goroutine.
func PostMessage(hwnd windows.Handle, msg uint32, wParam, lParam uintptr) error {
	r, _, err := pPostMessage.Call(uintptr(hwnd), uintptr(msg), wParam, lParam)
	return errCheck("PostMessageW", r, err)
}

// PostQuitMessage asks the current thread's message loop to exit.
func PostQuitMessage(code int32) {
	pPostQuitMessage.Call(uintptr(code))
}

type msg struct {
	WindowHandle windows.Handle
	Message      uint32
	WParam       uintptr
	LParam       uintptr
	Time         uint32
	Pt           point
}

// RunMessageLoop pumps messages for the calling thread until WM_QUIT or an
// error. The caller must have the creating thread locked.
func RunMessageLoop() {
	m := &msg{}
	for {
		ret, _, _ := pGetMessage.Call(uintptr(unsafe.Pointer(m)), 0, 0, 0)

		// Nonzero for ordinary messages, zero for WM_QUIT, -1 on error.
		// https://msdn.microsoft.com/en-us/library/windows/desktop/ms644936(v=vs.85).aspx
		switch int32(ret) {
		case -1:
			return
		case 0:
			return
		default:
			pTranslateMessage.Call(uintptr(unsafe.Pointer(m)))
			pDispatchMessage.Call(uintptr(unsafe.Pointer(m)))
		}
	}
}
