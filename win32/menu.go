//go:build windows

package win32

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"wintray/icon"
	"wintray/menu"
)

// Menu flag and message constants.
// https://learn.microsoft.com/en-us/windows/win32/api/winuser/nf-winuser-appendmenuw
const (
	mfString    = 0x0000
	mfGrayed    = 0x0001
	mfChecked   = 0x0008
	mfPopup     = 0x0010
	mfSeparator = 0x0800

	miimBitmap = 0x0080

	tpmLeftAlign   = 0x0000
	tpmBottomAlign = 0x0020
)

// Matches the Win32 MENUITEMINFOW layout exactly.
// https://learn.microsoft.com/en-us/windows/win32/api/winuser/ns-winuser-menuiteminfow
type menuItemInfo struct {
	Size         uint32
	Mask         uint32
	Type         uint32
	State        uint32
	ID           uint32
	SubMenu      windows.Handle
	BmpChecked   windows.Handle
	BmpUnchecked windows.Handle
	ItemData     uintptr
	TypeData     *uint16
	Cch          uint32
	BmpItem      windows.Handle
}

// MenuBackend implements menu.Backend over the Win32 popup menu API.
type MenuBackend struct {
	iconSize int
}

// NewMenuBackend returns a backend that renders menu item icons at the
// system checkmark size.
func NewMenuBackend() *MenuBackend {
	return &MenuBackend{iconSize: MenuIconSize()}
}

func (b *MenuBackend) CreateMenu() (menu.MenuHandle, error) {
	r, _, err := pCreatePopupMenu.Call()
	h, err := handleCheck("CreatePopupMenu", r, err)
	return menu.MenuHandle(h), err
}

func (b *MenuBackend) AppendSeparator(m menu.MenuHandle) error {
	r, _, err := pAppendMenu.Call(uintptr(m), mfSeparator, 0, 0)
	return errCheck("AppendMenuW", r, err)
}

func (b *MenuBackend) AppendButton(m menu.MenuHandle, id uint32, name string, disabled, checked bool) error {
	wide, err := syscall.UTF16PtrFromString(name)
	if err != nil {
		return err
	}
	flags := uintptr(mfString)
	if checked {
		flags |= mfChecked
	}
	if disabled {
		flags |= mfGrayed
	}
	r, _, callErr := pAppendMenu.Call(uintptr(m), flags, uintptr(id), uintptr(unsafe.Pointer(wide)))
	return errCheck("AppendMenuW", r, callErr)
}

func (b *MenuBackend) AppendSubmenu(m menu.MenuHandle, sub menu.MenuHandle, name string) error {
	wide, err := syscall.UTF16PtrFromString(name)
	if err != nil {
		return err
	}
	r, _, callErr := pAppendMenu.Call(uintptr(m), mfPopup, uintptr(sub), uintptr(unsafe.Pointer(wide)))
	return errCheck("AppendMenuW", r, callErr)
}

func (b *MenuBackend) ResolveIcon(ic *icon.Icon) (menu.BitmapHandle, error) {
	h, err := CreateARGBBitmap(ic.RGBA(b.iconSize))
	return menu.BitmapHandle(h), err
}

func (b *MenuBackend) SetItemBitmap(m menu.MenuHandle, item uint32, byPosition bool, bm menu.BitmapHandle) error {
	info := menuItemInfo{
		Mask:    miimBitmap,
		BmpItem: windows.Handle(bm),
	}
	info.Size = uint32(unsafe.Sizeof(info))
	byPos := uintptr(0)
	if byPosition {
		byPos = 1
	}
	r, _, err := pSetMenuItemInfo.Call(uintptr(m), uintptr(item), byPos, uintptr(unsafe.Pointer(&info)))
	return errCheck("SetMenuItemInfoW", r, err)
}

func (b *MenuBackend) ItemCount(m menu.MenuHandle) (int, error) {
	r, _, err := pGetMenuItemCount.Call(uintptr(m))
	n := int32(r)
	if n < 0 {
		return 0, &CallError{Op: "GetMenuItemCount", Err: err}
	}
	return int(n), nil
}

func (b *MenuBackend) ShowAtCursor(m menu.MenuHandle, wnd menu.WindowHandle) error {
	var cursor point
	r, _, err := pGetCursorPos.Call(uintptr(unsafe.Pointer(&cursor)))
	if err := errCheck("GetCursorPos", r, err); err != nil {
		return err
	}
	r, _, err = pSetForegroundWindow.Call(uintptr(wnd))
	if err := errCheck("SetForegroundWindow", r, err); err != nil {
		return err
	}
	r, _, err = pTrackPopupMenu.Call(
		uintptr(m),
		tpmBottomAlign|tpmLeftAlign,
		uintptr(cursor.X),
		uintptr(cursor.Y),
		0,
		uintptr(wnd),
		0,
	)
	return errCheck("TrackPopupMenu", r, err)
}

func (b *MenuBackend) DestroyMenu(m menu.MenuHandle) error {
	r, _, err := pDestroyMenu.Call(uintptr(m))
	return errCheck("DestroyMenu", r, err)
}

func (b *MenuBackend) DeleteBitmap(bm menu.BitmapHandle) error {
	r, _, err := pDeleteObject.Call(uintptr(bm))
	return errCheck("DeleteObject", r, err)
}
