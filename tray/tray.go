//go:build windows

// Package tray ties a taskbar notification icon to a native popup menu and
// delivers activation signals on a channel. One hidden window per tray
// receives the icon callbacks and menu notifications; its message loop is
// confined to a locked OS thread.
package tray

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"syscall"

	"golang.org/x/sys/windows"

	"wintray/menu"
	"wintray/win32"
)

const (
	trayIconID = 1

	msgTrayCallback = win32.WMApp + 1
	msgShutdown     = win32.WMApp + 2
)

var classCounter uint32

// Options configures a new tray.
type Options[T any] struct {
	// Tooltip is shown when hovering the taskbar icon.
	Tooltip string

	// Icon is the taskbar icon handle. The stock application icon is used
	// when zero. The caller keeps ownership.
	Icon windows.Handle

	// Menu is the initial popup menu, shown on icon clicks.
	Menu menu.Menu[T]
}

// Tray is one taskbar notification icon with an attached popup menu.
type Tray[T any] struct {
	backend *win32.MenuBackend
	class   *win32.WndClassEx
	hwnd    windows.Handle
	signals chan T
	done    chan struct{}

	mu sync.Mutex
	nm *menu.NativeMenu[T]

	closeOnce sync.Once
}

type createWindow struct {
	handle windows.Handle
	err    error
}

// New builds the menu, creates the hidden message window and registers the
// notify icon. The returned tray delivers button activations on Signals
// until Close.
func New[T any](opts Options[T]) (*Tray[T], error) {
	backend := win32.NewMenuBackend()
	nm, err := menu.Build(backend, opts.Menu)
	if err != nil {
		return nil, err
	}

	t := &Tray[T]{
		backend: backend,
		nm:      nm,
		signals: make(chan T, 16),
		done:    make(chan struct{}),
	}

	hicon := opts.Icon
	if hicon == 0 {
		hicon, err = win32.LoadDefaultIcon()
		if err != nil {
			nm.Destroy()
			return nil, err
		}
	}

	className := fmt.Sprintf("wintray-%d-%d", os.Getpid(), atomic.AddUint32(&classCounter, 1))
	classNamePtr, err := syscall.UTF16PtrFromString(className)
	if err != nil {
		nm.Destroy()
		return nil, err
	}
	wcex := &win32.WndClassEx{
		WndProc:   windows.NewCallback(t.wndProc),
		ClassName: classNamePtr,
	}
	if err := wcex.Register(); err != nil {
		nm.Destroy()
		return nil, err
	}
	t.class = wcex

	ch := make(chan createWindow)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		hwnd, err := win32.CreateMessageWindow(className)
		ch <- createWindow{hwnd, err}
		if err != nil {
			return
		}
		win32.RunMessageLoop()
		close(t.done)
	}()
	result := <-ch
	if result.err != nil {
		wcex.Unregister()
		nm.Destroy()
		return nil, result.err
	}
	t.hwnd = result.handle

	if err := win32.NotifyIconAdd(t.hwnd, trayIconID, msgTrayCallback, hicon, opts.Tooltip); err != nil {
		win32.PostMessage(t.hwnd, msgShutdown, 0, 0)
		<-t.done
		wcex.Unregister()
		nm.Destroy()
		return nil, err
	}
	slog.Debug("tray icon registered", "class", className)
	return t, nil
}

// Signals delivers the signal value of each activated menu button. The
// channel is buffered; activations arriving while the buffer is full are
// dropped with a warning.
func (t *Tray[T]) Signals() <-chan T {
	return t.signals
}

// SetMenu replaces the popup menu. The replacement is built fully before
// the swap; on build failure the old menu stays in place.
func (t *Tray[T]) SetMenu(m menu.Menu[T]) error {
	nm, err := menu.Build(t.backend, m)
	if err != nil {
		return err
	}
	t.mu.Lock()
	old := t.nm
	t.nm = nm
	t.mu.Unlock()
	if old != nil {
		old.Destroy()
	}
	return nil
}

// SetTooltip replaces the taskbar icon tooltip.
func (t *Tray[T]) SetTooltip(tip string) error {
	return win32.NotifyIconSetTip(t.hwnd, trayIconID, tip)
}

// SetIcon replaces the taskbar icon image. The caller keeps ownership of
// the handle.
func (t *Tray[T]) SetIcon(hicon windows.Handle) error {
	return win32.NotifyIconSetIcon(t.hwnd, trayIconID, hicon)
}

// Close removes the notify icon, stops the message loop and destroys the
// menu. Safe to call more than once.
func (t *Tray[T]) Close() {
	t.closeOnce.Do(func() {
		if err := win32.PostMessage(t.hwnd, msgShutdown, 0, 0); err != nil {
			slog.Warn("failed to post tray shutdown", "error", err)
		} else {
			<-t.done
		}
		t.mu.Lock()
		nm := t.nm
		t.nm = nil
		t.mu.Unlock()
		if nm != nil {
			nm.Destroy()
		}
		if err := t.class.Unregister(); err != nil {
			slog.Warn("failed to unregister tray window class", "error", err)
		}
	})
}

// wndProc processes messages sent to the hidden window.
// https://msdn.microsoft.com/en-us/library/windows/desktop/ms633573(v=vs.85).aspx
func (t *Tray[T]) wndProc(hwnd windows.Handle, message uint32, wParam, lParam uintptr) uintptr {
	switch message {
	case msgTrayCallback:
		switch uint32(lParam) {
		case win32.WMRButtonUp, win32.WMLButtonUp, win32.WMContextMenu:
			t.showMenu(hwnd)
		}
	case win32.WMCommand:
		t.dispatch(uint32(wParam & 0xffff))
	case msgShutdown:
		if err := win32.NotifyIconDelete(hwnd, trayIconID); err != nil {
			slog.Warn("failed to remove notify icon", "error", err)
		}
		if err := win32.DestroyWindow(hwnd); err != nil {
			slog.Warn("failed to destroy tray window", "error", err)
		}
	case win32.WMDestroy:
		win32.PostQuitMessage(0)
	default:
		return win32.DefWindowProc(hwnd, message, wParam, lParam)
	}
	return 0
}

// showMenu runs the popup interaction. Blocks the message loop until the
// user dismisses the menu or picks an entry, which arrives as WM_COMMAND.
func (t *Tray[T]) showMenu(hwnd windows.Handle) {
	t.mu.Lock()
	nm := t.nm
	t.mu.Unlock()
	if nm == nil {
		return
	}
	if err := nm.ShowAtCursor(menu.WindowHandle(hwnd)); err != nil {
		slog.Warn("failed to show tray menu", "error", err)
	}
}

func (t *Tray[T]) dispatch(id uint32) {
	t.mu.Lock()
	nm := t.nm
	t.mu.Unlock()
	if nm == nil {
		return
	}
	sig, ok := nm.Lookup(id)
	if !ok {
		slog.Warn("menu notification with unknown item id", "id", id)
		return
	}
	select {
	case t.signals <- sig:
	default:
		slog.Warn("signal channel full, dropping menu activation", "id", id)
	}
}
