// Package icon holds abstract icon descriptions for menu entries and tray
// icons. Decoding happens up front; conversion to a native bitmap is left
// to the platform backend, which asks for pixels at the size it needs.
package icon

import (
	"bytes"
	"fmt"
	"image"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"

	"golang.org/x/image/draw"
)

// Icon is a decoded icon image.
type Icon struct {
	img image.Image
}

// FromImage wraps an already decoded image.
func FromImage(img image.Image) *Icon {
	return &Icon{img: img}
}

// FromBytes decodes an icon from raw image data. PNG, JPEG, GIF and BMP
// are recognized.
func FromBytes(data []byte) (*Icon, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode icon: %w", err)
	}
	return &Icon{img: img}, nil
}

// FromFile reads and decodes an icon image file.
func FromFile(path string) (*Icon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ic, err := FromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ic, nil
}

// Bounds reports the dimensions of the decoded image.
func (ic *Icon) Bounds() image.Rectangle {
	return ic.img.Bounds()
}

// RGBA scales the icon to a size x size square in premultiplied RGBA form,
// ready for conversion to a native bitmap.
func (ic *Icon) RGBA(size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), ic.img, ic.img.Bounds(), draw.Src, nil)
	return dst
}
