package menu

import (
	"fmt"
	"log/slog"

	"wintray/icon"
)

type builder[T any] struct {
	backend Backend
	signals []T
	bitmaps []BitmapHandle

	// pending holds menu handles acquired but not yet attached to a parent:
	// the root plus the chain of submenus currently under construction.
	// On a fatal error these are the handles nothing else owns yet.
	pending []MenuHandle
}

// Build walks the item tree depth-first and assembles one native menu.
// Button ids are assigned sequentially in traversal order across the whole
// tree; separators and submenus consume no id. Any fatal native failure
// aborts the build, releases everything acquired so far and returns the
// error. The one non-fatal case is a submenu icon that cannot be attached,
// which degrades to a menu without that icon.
func Build[T any](b Backend, m Menu[T]) (*NativeMenu[T], error) {
	slog.Debug("creating native menu")
	bd := &builder[T]{backend: b}
	root, err := bd.level(m.Items)
	if err != nil {
		bd.discard()
		return nil, err
	}
	return &NativeMenu[T]{
		backend: b,
		hmenu:   root,
		signals: bd.signals,
		bitmaps: bd.bitmaps,
	}, nil
}

// level builds one menu level. The returned handle is still recorded in
// bd.pending; the caller removes it once ownership transfers to a parent
// menu or to the assembled NativeMenu.
func (bd *builder[T]) level(items []Item[T]) (MenuHandle, error) {
	hmenu, err := bd.backend.CreateMenu()
	if err != nil {
		return 0, fmt.Errorf("create popup menu: %w", err)
	}
	bd.pending = append(bd.pending, hmenu)

	for _, it := range items {
		switch it := it.(type) {
		case Separator[T]:
			if err := bd.backend.AppendSeparator(hmenu); err != nil {
				return 0, fmt.Errorf("append separator: %w", err)
			}

		case Button[T]:
			// The id is the index the signal will occupy, fixed before the
			// append so the native entry and the signal collection agree.
			id := uint32(len(bd.signals))
			checked := it.Check == CheckOn
			if err := bd.backend.AppendButton(hmenu, id, it.Name, it.Disabled, checked); err != nil {
				return 0, fmt.Errorf("append button %q: %w", it.Name, err)
			}
			if it.Icon != nil {
				if err := bd.attachIcon(hmenu, id, false, it.Icon); err != nil {
					return 0, fmt.Errorf("button %q icon: %w", it.Name, err)
				}
			}
			bd.signals = append(bd.signals, it.Signal)

		case Submenu[T]:
			sub, err := bd.level(it.Items)
			if err != nil {
				return 0, err
			}
			if err := bd.backend.AppendSubmenu(hmenu, sub, it.Name); err != nil {
				return 0, fmt.Errorf("append submenu %q: %w", it.Name, err)
			}
			// sub is owned by hmenu now.
			bd.pending = bd.pending[:len(bd.pending)-1]
			if it.Icon != nil {
				// Submenus have no id, only a position; a failure here is
				// cosmetic and must not abort the build.
				if err := bd.submenuIcon(hmenu, it.Icon); err != nil {
					slog.Debug("failed to set submenu icon", "submenu", it.Name, "error", err)
				}
			}

		default:
			return 0, fmt.Errorf("unknown menu item type %T", it)
		}
	}
	return hmenu, nil
}

// submenuIcon attaches ic to the submenu entry appended to hmenu last,
// addressed by its position at the moment of attachment.
func (bd *builder[T]) submenuIcon(hmenu MenuHandle, ic *icon.Icon) error {
	n, err := bd.backend.ItemCount(hmenu)
	if err != nil {
		return fmt.Errorf("query item count: %w", err)
	}
	if n < 1 {
		return fmt.Errorf("menu reports %d items after append", n)
	}
	return bd.attachIcon(hmenu, uint32(n-1), true, ic)
}

// attachIcon resolves ic and attaches the bitmap to the entry of hmenu
// addressed by item. The bitmap is recorded for release at teardown only
// after a successful attach; on attach failure it is released immediately.
func (bd *builder[T]) attachIcon(hmenu MenuHandle, item uint32, byPosition bool, ic *icon.Icon) error {
	bm, err := bd.backend.ResolveIcon(ic)
	if err != nil {
		return fmt.Errorf("resolve icon: %w", err)
	}
	if err := bd.backend.SetItemBitmap(hmenu, item, byPosition, bm); err != nil {
		if derr := bd.backend.DeleteBitmap(bm); derr != nil {
			slog.Warn("failed to destroy unattached bitmap", "error", derr)
		}
		return fmt.Errorf("set item bitmap: %w", err)
	}
	bd.bitmaps = append(bd.bitmaps, bm)
	return nil
}

// discard releases everything acquired by a failed build: recorded bitmaps
// first, then every menu handle that never found an owner. Failures here
// are logged, not propagated; the build error is the one worth reporting.
func (bd *builder[T]) discard() {
	for _, bm := range bd.bitmaps {
		if err := bd.backend.DeleteBitmap(bm); err != nil {
			slog.Warn("failed to destroy menu bitmap", "error", err)
		}
	}
	for i := len(bd.pending) - 1; i >= 0; i-- {
		if err := bd.backend.DestroyMenu(bd.pending[i]); err != nil {
			slog.Warn("failed to destroy partial menu", "error", err)
		}
	}
}
