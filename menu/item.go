// Package menu builds native popup menus from an abstract item tree and
// maps native item identifiers back to application signal values.
package menu

import "wintray/icon"

// CheckState models the optional checkmark of a button. CheckNone and
// CheckOff both render without a mark; the distinction is kept so callers
// can express "not checkable" vs "checkable but off".
type CheckState int

const (
	CheckNone CheckState = iota
	CheckOff
	CheckOn
)

// Item is one entry of a menu tree. The three variants are Separator,
// Button and Submenu.
type Item[T any] interface {
	item()
}

// Separator is a horizontal divider. It consumes no item id.
type Separator[T any] struct{}

// Button is a leaf entry. Signal is an opaque application value returned
// verbatim when the button is activated.
type Button[T any] struct {
	Name     string
	Signal   T
	Disabled bool
	Check    CheckState
	Icon     *icon.Icon
}

// Submenu is a nested popup containing more items. It consumes no item id.
type Submenu[T any] struct {
	Name  string
	Items []Item[T]
	Icon  *icon.Icon
}

func (Separator[T]) item() {}
func (Button[T]) item()    {}
func (Submenu[T]) item()   {}

// Menu is the root of an item tree. It is consumed exactly once by Build.
type Menu[T any] struct {
	Items []Item[T]
}
