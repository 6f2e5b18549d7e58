package menu

import "log/slog"

// NativeMenu is an assembled popup menu. It owns the root native menu
// handle, every bitmap attached during construction and the signal index
// that maps native item ids back to application values.
//
// NativeMenu is not safe for concurrent use; typical usage confines it to
// the thread running the window message loop.
type NativeMenu[T any] struct {
	backend   Backend
	hmenu     MenuHandle
	signals   []T
	bitmaps   []BitmapHandle
	destroyed bool
}

// ShowAtCursor displays the menu anchored at the current pointer position,
// bottom/left aligned, after forcing wnd to the foreground. Any native
// failure aborts the operation and is returned; the menu stays valid and a
// later attempt may succeed.
func (m *NativeMenu[T]) ShowAtCursor(wnd WindowHandle) error {
	return m.backend.ShowAtCursor(m.hmenu, wnd)
}

// Lookup returns the signal recorded for a native item id, as received
// from an activation notification. The second return is false when id was
// never assigned to a button.
func (m *NativeMenu[T]) Lookup(id uint32) (T, bool) {
	if int(id) >= len(m.signals) {
		var zero T
		return zero, false
	}
	return m.signals[int(id)], true
}

// Destroy releases every bitmap and the native menu. Submenus are released
// transitively by the OS when the root handle is destroyed. Destroy is
// idempotent and never fails outward; individual native failures are
// logged and skipped.
func (m *NativeMenu[T]) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	slog.Debug("destroying native menu", "buttons", len(m.signals))
	for _, bm := range m.bitmaps {
		if err := m.backend.DeleteBitmap(bm); err != nil {
			slog.Warn("failed to destroy menu bitmap", "error", err)
		}
	}
	if err := m.backend.DestroyMenu(m.hmenu); err != nil {
		slog.Warn("failed to destroy native menu", "error", err)
	}
}
