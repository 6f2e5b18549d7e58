package menu

import "wintray/icon"

// MenuHandle is an opaque native popup-menu handle.
type MenuHandle uintptr

// BitmapHandle is an opaque native bitmap handle attached to a menu entry.
type BitmapHandle uintptr

// WindowHandle is an opaque native window handle used to anchor the popup.
type WindowHandle uintptr

// Backend is the native windowing surface the builder drives. The production
// implementation lives in the win32 package; tests substitute a fake.
//
// Item addressing follows the native contract: buttons are addressed by
// their caller-assigned numeric id, submenus only by position within the
// parent, so SetItemBitmap carries an explicit byPosition flag.
type Backend interface {
	// CreateMenu acquires one empty popup menu.
	CreateMenu() (MenuHandle, error)

	// AppendSeparator appends a divider entry to m.
	AppendSeparator(m MenuHandle) error

	// AppendButton appends a string entry tagged with id. The native entry
	// flags are derived from disabled (grey-out) and checked (checkmark).
	AppendButton(m MenuHandle, id uint32, name string, disabled, checked bool) error

	// AppendSubmenu appends sub to m as a popup entry. Ownership of sub
	// transfers to m on success.
	AppendSubmenu(m MenuHandle, sub MenuHandle, name string) error

	// ResolveIcon converts an icon description into a bitmap handle owned
	// by the caller.
	ResolveIcon(ic *icon.Icon) (BitmapHandle, error)

	// SetItemBitmap attaches bm to the entry of m addressed by item, which
	// is an id when byPosition is false and a positional index otherwise.
	SetItemBitmap(m MenuHandle, item uint32, byPosition bool, bm BitmapHandle) error

	// ItemCount reports the current number of entries in m.
	ItemCount(m MenuHandle) (int, error)

	// ShowAtCursor queries the pointer position, forces wnd to the
	// foreground and displays m anchored there. Returns once the popup
	// interaction completes or any of the underlying calls fails.
	ShowAtCursor(m MenuHandle, wnd WindowHandle) error

	// DestroyMenu releases m and, transitively, every submenu attached
	// to it.
	DestroyMenu(m MenuHandle) error

	// DeleteBitmap releases bm.
	DeleteBitmap(bm BitmapHandle) error
}
