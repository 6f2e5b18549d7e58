package icon

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 50), G: uint8(y * 50), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestFromBytes(t *testing.T) {
	ic, err := FromBytes(pngBytes(t, 4, 4))
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if got := ic.Bounds(); got.Dx() != 4 || got.Dy() != 4 {
		t.Errorf("Bounds = %v, want 4x4", got)
	}
}

func TestFromBytesRejectsGarbage(t *testing.T) {
	if _, err := FromBytes([]byte("not an image")); err == nil {
		t.Error("FromBytes should fail for unknown data")
	}
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.png")
	if err := os.WriteFile(path, pngBytes(t, 4, 4), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := FromFile(path); err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if _, err := FromFile(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("FromFile should fail for a missing file")
	}
}

func TestRGBAScalesToRequestedSize(t *testing.T) {
	ic, err := FromBytes(pngBytes(t, 4, 4))
	if err != nil {
		t.Fatal(err)
	}
	for _, size := range []int{8, 16, 32} {
		out := ic.RGBA(size)
		if out.Rect.Dx() != size || out.Rect.Dy() != size {
			t.Errorf("RGBA(%d) = %v", size, out.Rect)
		}
	}
	// Opaque input stays opaque after scaling.
	out := ic.RGBA(8)
	if a := out.RGBAAt(4, 4).A; a != 255 {
		t.Errorf("alpha = %d, want 255", a)
	}
}
