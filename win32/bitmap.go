//go:build windows

package win32

import (
	"image"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// https://learn.microsoft.com/en-us/windows/win32/api/wingdi/ns-wingdi-bitmapinfoheader
type bitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

// https://learn.microsoft.com/en-us/windows/win32/api/winuser/ns-winuser-iconinfo
type iconInfo struct {
	IsIcon   int32
	XHotspot uint32
	YHotspot uint32
	Mask     windows.Handle
	Color    windows.Handle
}

const (
	biRGB          = 0
	dibRGBColors   = 0
	imageIcon      = 1
	lrLoadFromFile = 0x0010
	lrDefaultSize  = 0x0040

	idiApplication = 32512
)

// CreateARGBBitmap converts premultiplied RGBA pixels into a 32bpp
// top-down DIB section suitable for a menu item bitmap. The caller owns
// the returned handle and releases it with DeleteObject.
func CreateARGBBitmap(img *image.RGBA) (windows.Handle, error) {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	hdr := bitmapInfoHeader{
		Width:       int32(w),
		Height:      -int32(h), // negative for top-down rows
		Planes:      1,
		BitCount:    32,
		Compression: biRGB,
	}
	hdr.Size = uint32(unsafe.Sizeof(hdr))

	var bits unsafe.Pointer
	r, _, err := pCreateDIBSection.Call(
		0,
		uintptr(unsafe.Pointer(&hdr)),
		dibRGBColors,
		uintptr(unsafe.Pointer(&bits)),
		0,
		0,
	)
	hbm, err := handleCheck("CreateDIBSection", r, err)
	if err != nil {
		return 0, err
	}

	// The section wants BGRA; image.RGBA rows are RGBA.
	dst := unsafe.Slice((*byte)(bits), w*h*4)
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+w*4]
		row := dst[y*w*4 : (y+1)*w*4]
		for x := 0; x < w; x++ {
			row[x*4+0] = src[x*4+2]
			row[x*4+1] = src[x*4+1]
			row[x*4+2] = src[x*4+0]
			row[x*4+3] = src[x*4+3]
		}
	}
	return windows.Handle(hbm), nil
}

// IconFromImage builds an HICON from premultiplied RGBA pixels via
// CreateIconIndirect. The caller owns the handle and releases it with
// DestroyIcon.
func IconFromImage(img *image.RGBA) (windows.Handle, error) {
	color, err := CreateARGBBitmap(img)
	if err != nil {
		return 0, err
	}
	defer pDeleteObject.Call(uintptr(color))

	w := img.Rect.Dx()
	h := img.Rect.Dy()
	r, _, callErr := pCreateBitmap.Call(uintptr(w), uintptr(h), 1, 1, 0)
	mask, err := handleCheck("CreateBitmap", r, callErr)
	if err != nil {
		return 0, err
	}
	defer pDeleteObject.Call(mask)

	info := iconInfo{
		IsIcon: 1,
		Mask:   windows.Handle(mask),
		Color:  color,
	}
	r, _, callErr = pCreateIconIndir.Call(uintptr(unsafe.Pointer(&info)))
	hicon, err := handleCheck("CreateIconIndirect", r, callErr)
	return windows.Handle(hicon), err
}

// LoadIconFile loads an .ico file at the default icon size.
func LoadIconFile(path string) (windows.Handle, error) {
	wide, err := syscall.UTF16PtrFromString(path)
	if err != nil {
		return 0, err
	}
	r, _, callErr := pLoadImage.Call(
		0,
		uintptr(unsafe.Pointer(wide)),
		imageIcon,
		0,
		0,
		lrLoadFromFile|lrDefaultSize,
	)
	h, err := handleCheck("LoadImageW", r, callErr)
	return windows.Handle(h), err
}

// LoadDefaultIcon returns the stock application icon. The handle is shared
// and must not be destroyed.
func LoadDefaultIcon() (windows.Handle, error) {
	r, _, err := pLoadIcon.Call(0, idiApplication)
	h, err := handleCheck("LoadIconW", r, err)
	return windows.Handle(h), err
}

// DestroyIcon releases an icon obtained from IconFromImage or LoadIconFile.
func DestroyIcon(h windows.Handle) error {
	r, _, err := pDestroyIcon.Call(uintptr(h))
	return errCheck("DestroyIcon", r, err)
}
