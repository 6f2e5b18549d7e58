package menu

import (
	"errors"
	"fmt"
	"image"
	"testing"

	"wintray/icon"
)

type fakeEntry struct {
	kind     string // "sep", "button", "submenu"
	id       uint32
	name     string
	disabled bool
	checked  bool
	bitmap   BitmapHandle
	sub      MenuHandle
}

type fakeMenu struct {
	entries  []fakeEntry
	attached bool
}

// fakeBackend records every native call so tests can assert on ordering,
// id assignment and resource accounting.
type fakeBackend struct {
	nextHandle uintptr

	menus          map[MenuHandle]*fakeMenu
	created        []MenuHandle
	destroyed      map[MenuHandle]int
	resolved       []BitmapHandle
	deleted        map[BitmapHandle]int
	shown          []WindowHandle

	failCreate      bool
	failButtonNamed string
	failResolve     bool
	failSetBitmap   bool
	failItemCount   bool
	failDestroy     bool
	failDelete      bool
	failShow        error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		nextHandle: 100,
		menus:      make(map[MenuHandle]*fakeMenu),
		destroyed:  make(map[MenuHandle]int),
		deleted:    make(map[BitmapHandle]int),
	}
}

func (f *fakeBackend) CreateMenu() (MenuHandle, error) {
	if f.failCreate {
		return 0, errors.New("CreatePopupMenu failed")
	}
	f.nextHandle++
	h := MenuHandle(f.nextHandle)
	f.menus[h] = &fakeMenu{}
	f.created = append(f.created, h)
	return h, nil
}

func (f *fakeBackend) AppendSeparator(m MenuHandle) error {
	f.menus[m].entries = append(f.menus[m].entries, fakeEntry{kind: "sep"})
	return nil
}

func (f *fakeBackend) AppendButton(m MenuHandle, id uint32, name string, disabled, checked bool) error {
	if name == f.failButtonNamed {
		return fmt.Errorf("AppendMenuW failed for %q", name)
	}
	f.menus[m].entries = append(f.menus[m].entries, fakeEntry{
		kind:     "button",
		id:       id,
		name:     name,
		disabled: disabled,
		checked:  checked,
	})
	return nil
}

func (f *fakeBackend) AppendSubmenu(m MenuHandle, sub MenuHandle, name string) error {
	f.menus[m].entries = append(f.menus[m].entries, fakeEntry{kind: "submenu", name: name, sub: sub})
	f.menus[sub].attached = true
	return nil
}

func (f *fakeBackend) ResolveIcon(ic *icon.Icon) (BitmapHandle, error) {
	if f.failResolve {
		return 0, errors.New("bitmap conversion failed")
	}
	f.nextHandle++
	bm := BitmapHandle(f.nextHandle)
	f.resolved = append(f.resolved, bm)
	return bm, nil
}

func (f *fakeBackend) SetItemBitmap(m MenuHandle, item uint32, byPosition bool, bm BitmapHandle) error {
	if f.failSetBitmap {
		return errors.New("SetMenuItemInfoW failed")
	}
	entries := f.menus[m].entries
	if byPosition {
		if int(item) >= len(entries) {
			return fmt.Errorf("position %d out of range", item)
		}
		entries[item].bitmap = bm
		return nil
	}
	for i := range entries {
		if entries[i].kind == "button" && entries[i].id == item {
			entries[i].bitmap = bm
			return nil
		}
	}
	return fmt.Errorf("no button with id %d", item)
}

func (f *fakeBackend) ItemCount(m MenuHandle) (int, error) {
	if f.failItemCount {
		return 0, errors.New("GetMenuItemCount failed")
	}
	return len(f.menus[m].entries), nil
}

func (f *fakeBackend) ShowAtCursor(m MenuHandle, wnd WindowHandle) error {
	if f.failShow != nil {
		return f.failShow
	}
	f.shown = append(f.shown, wnd)
	return nil
}

func (f *fakeBackend) DestroyMenu(m MenuHandle) error {
	f.destroyed[m]++
	if f.failDestroy {
		return errors.New("DestroyMenu failed")
	}
	return nil
}

func (f *fakeBackend) DeleteBitmap(bm BitmapHandle) error {
	f.deleted[bm]++
	if f.failDelete {
		return errors.New("DeleteObject failed")
	}
	return nil
}

func testIcon() *icon.Icon {
	return icon.FromImage(image.NewRGBA(image.Rect(0, 0, 2, 2)))
}

func TestBuildAssignsIDsInTraversalOrder(t *testing.T) {
	f := newFakeBackend()
	m := Menu[string]{Items: []Item[string]{
		Button[string]{Name: "A", Signal: "a", Disabled: true},
		Separator[string]{},
		Submenu[string]{Name: "Sub", Items: []Item[string]{
			Button[string]{Name: "B", Signal: "b", Check: CheckOn},
			Submenu[string]{Name: "Deep", Items: []Item[string]{
				Button[string]{Name: "C", Signal: "c", Check: CheckOff},
			}},
		}},
		Button[string]{Name: "D", Signal: "d"},
	}}

	nm, err := Build[string](f, m)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := []string{"a", "b", "c", "d"}
	for i, sig := range want {
		got, ok := nm.Lookup(uint32(i))
		if !ok || got != sig {
			t.Errorf("Lookup(%d) = %q, %v; want %q, true", i, got, ok, sig)
		}
	}
	if _, ok := nm.Lookup(uint32(len(want))); ok {
		t.Errorf("Lookup(%d) should be out of bounds", len(want))
	}

	root := f.menus[nm.hmenu]
	if len(root.entries) != 4 {
		t.Fatalf("root has %d entries, want 4", len(root.entries))
	}
	if e := root.entries[0]; e.kind != "button" || e.id != 0 || !e.disabled || e.checked {
		t.Errorf("entry 0 = %+v, want disabled button id 0", e)
	}
	if e := root.entries[1]; e.kind != "sep" {
		t.Errorf("entry 1 = %+v, want separator", e)
	}
	if e := root.entries[3]; e.kind != "button" || e.id != 3 {
		t.Errorf("entry 3 = %+v, want button id 3", e)
	}

	sub := f.menus[root.entries[2].sub]
	if e := sub.entries[0]; e.kind != "button" || e.id != 1 || !e.checked {
		t.Errorf("sub entry 0 = %+v, want checked button id 1", e)
	}
	deep := f.menus[sub.entries[1].sub]
	if e := deep.entries[0]; e.kind != "button" || e.id != 2 || e.checked {
		t.Errorf("deep entry 0 = %+v, want unchecked button id 2", e)
	}
}

func TestBuildScenario(t *testing.T) {
	// Tree [Button{"A",1}, Separator, Menu{"Sub",[Button{"B",2}]}]
	// must yield signals [1, 2].
	f := newFakeBackend()
	m := Menu[int]{Items: []Item[int]{
		Button[int]{Name: "A", Signal: 1},
		Separator[int]{},
		Submenu[int]{Name: "Sub", Items: []Item[int]{
			Button[int]{Name: "B", Signal: 2},
		}},
	}}

	nm, err := Build[int](f, m)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got, ok := nm.Lookup(0); !ok || got != 1 {
		t.Errorf("Lookup(0) = %d, %v; want 1, true", got, ok)
	}
	if got, ok := nm.Lookup(1); !ok || got != 2 {
		t.Errorf("Lookup(1) = %d, %v; want 2, true", got, ok)
	}
	if _, ok := nm.Lookup(2); ok {
		t.Error("Lookup(2) should report no signal")
	}
}

func TestBuildSeparatorOnlySubmenu(t *testing.T) {
	f := newFakeBackend()
	m := Menu[int]{Items: []Item[int]{
		Submenu[int]{Name: "Empty", Items: []Item[int]{Separator[int]{}}},
	}}

	nm, err := Build[int](f, m)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(nm.signals) != 0 {
		t.Errorf("got %d signals, want 0", len(nm.signals))
	}
}

func TestBuildButtonIconResolveFailureAborts(t *testing.T) {
	f := newFakeBackend()
	f.failResolve = true
	m := Menu[int]{Items: []Item[int]{
		Button[int]{Name: "A", Signal: 1},
		Button[int]{Name: "B", Signal: 2, Icon: testIcon()},
	}}

	nm, err := Build[int](f, m)
	if err == nil {
		t.Fatal("Build should fail when a button icon cannot be resolved")
	}
	if nm != nil {
		t.Fatal("no handle should be produced on failure")
	}
	for _, h := range f.created {
		if f.destroyed[h] != 1 {
			t.Errorf("menu %v destroyed %d times, want 1", h, f.destroyed[h])
		}
	}
}

func TestBuildButtonIconAttachFailureReleasesBitmap(t *testing.T) {
	f := newFakeBackend()
	f.failSetBitmap = true
	m := Menu[int]{Items: []Item[int]{
		Button[int]{Name: "A", Signal: 1, Icon: testIcon()},
	}}

	if _, err := Build[int](f, m); err == nil {
		t.Fatal("Build should fail when a button icon cannot be attached")
	}
	if len(f.resolved) != 1 {
		t.Fatalf("resolved %d bitmaps, want 1", len(f.resolved))
	}
	if f.deleted[f.resolved[0]] != 1 {
		t.Errorf("unattached bitmap deleted %d times, want 1", f.deleted[f.resolved[0]])
	}
}

func TestBuildSubmenuIconFailureIsCosmetic(t *testing.T) {
	for name, setup := range map[string]func(*fakeBackend){
		"resolve":   func(f *fakeBackend) { f.failResolve = true },
		"itemcount": func(f *fakeBackend) { f.failItemCount = true },
	} {
		t.Run(name, func(t *testing.T) {
			f := newFakeBackend()
			setup(f)
			m := Menu[int]{Items: []Item[int]{
				Submenu[int]{Name: "Sub", Icon: testIcon(), Items: []Item[int]{
					Button[int]{Name: "A", Signal: 7},
				}},
			}}

			nm, err := Build[int](f, m)
			if err != nil {
				t.Fatalf("submenu icon failure must not abort the build: %v", err)
			}
			if got, ok := nm.Lookup(0); !ok || got != 7 {
				t.Errorf("Lookup(0) = %d, %v; want 7, true", got, ok)
			}
			if len(nm.bitmaps) != 0 {
				t.Errorf("recorded %d bitmaps, want 0", len(nm.bitmaps))
			}
		})
	}
}

func TestBuildSubmenuIconAttachedByPosition(t *testing.T) {
	f := newFakeBackend()
	m := Menu[int]{Items: []Item[int]{
		Button[int]{Name: "A", Signal: 1},
		Submenu[int]{Name: "Sub", Icon: testIcon(), Items: []Item[int]{
			Button[int]{Name: "B", Signal: 2},
		}},
	}}

	nm, err := Build[int](f, m)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	root := f.menus[nm.hmenu]
	if root.entries[1].bitmap == 0 {
		t.Error("submenu entry should carry a bitmap")
	}
	if len(nm.bitmaps) != 1 {
		t.Errorf("recorded %d bitmaps, want 1", len(nm.bitmaps))
	}
}

func TestBuildFailureDestroysUnattachedChain(t *testing.T) {
	f := newFakeBackend()
	f.failButtonNamed = "boom"
	m := Menu[int]{Items: []Item[int]{
		Submenu[int]{Name: "X", Items: []Item[int]{
			Button[int]{Name: "ok", Signal: 1, Icon: testIcon()},
		}},
		Submenu[int]{Name: "Y", Items: []Item[int]{
			Submenu[int]{Name: "Z", Items: []Item[int]{
				Button[int]{Name: "boom", Signal: 2},
			}},
		}},
	}}

	if _, err := Build[int](f, m); err == nil {
		t.Fatal("Build should propagate the append failure")
	}

	// Creation order: root, X, Y, Z. X was attached to root before the
	// failure and is torn down with it by the OS; root, Y and Z had no
	// owner and must each be destroyed explicitly.
	root, x, y, z := f.created[0], f.created[1], f.created[2], f.created[3]
	for _, h := range []MenuHandle{root, y, z} {
		if f.destroyed[h] != 1 {
			t.Errorf("menu %v destroyed %d times, want 1", h, f.destroyed[h])
		}
	}
	if f.destroyed[x] != 0 {
		t.Errorf("attached submenu destroyed individually %d times, want 0", f.destroyed[x])
	}
	for _, bm := range f.resolved {
		if f.deleted[bm] != 1 {
			t.Errorf("bitmap %v deleted %d times, want 1", bm, f.deleted[bm])
		}
	}
}

func TestBuildCreateFailurePropagates(t *testing.T) {
	f := newFakeBackend()
	f.failCreate = true
	if _, err := Build[int](f, Menu[int]{}); err == nil {
		t.Fatal("Build should fail when no menu can be created")
	}
	if len(f.destroyed) != 0 {
		t.Error("nothing was acquired, nothing should be destroyed")
	}
}
