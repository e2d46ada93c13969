package tcellsixel

import (
	"image"
	"io"

	"github.com/mattn/go-sixel"
)

// Encode writes img to w as a complete sixel DCS sequence, for re-emitting
// pool images to a sixel-capable host terminal.
func Encode(w io.Writer, img image.Image) error {
	return sixel.NewEncoder(w).Encode(img)
}

// ToImage wraps a pool image as an image.Image for encoding or export. The
// returned image shares pixel storage with img when it is already RGBA.
func ToImage(img *Image) *image.RGBA {
	return &image.RGBA{
		Pix:    img.rgba(),
		Stride: img.Width() * 4,
		Rect:   image.Rect(0, 0, img.Width(), img.Height()),
	}
}
