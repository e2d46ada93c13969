package tcellsixel

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// ImageAlignment names a position of an image inside its cell rectangle.
// A RasterizedImage stores it but does not apply it: fragments always
// anchor the image at the top-left cell.
type ImageAlignment int

const (
	AlignTopStart ImageAlignment = iota
	AlignTopCenter
	AlignTopEnd
	AlignMiddleStart
	AlignMiddleCenter
	AlignMiddleEnd
	AlignBottomStart
	AlignBottomCenter
	AlignBottomEnd
)

// ImageResize selects how an image is scaled to its cell rectangle.
type ImageResize int

const (
	// ResizeNone keeps the source pixels untouched.
	ResizeNone ImageResize = iota
	// ResizeFit scales preserving the aspect ratio so the image fits
	// inside the cell rectangle.
	ResizeFit
	// ResizeStretch scales to exactly the cell rectangle.
	ResizeStretch
)

// RasterizedImage is an Image fitted to a terminal cell grid. Resize
// policies operate on a private pixel copy; the underlying Image is never
// mutated.
type RasterizedImage struct {
	image        *Image
	alignment    ImageAlignment
	resize       ImageResize
	defaultColor RGBAColor
	cellSpan     Size
	cellSize     Size

	// pixels is the RGBA raster fragments are cut from, after the
	// resize policy has been applied.
	pixels    []byte
	pixelSize Size

	pool *ImagePool
}

func (r *RasterizedImage) Image() *Image {
	return r.image
}

func (r *RasterizedImage) Alignment() ImageAlignment {
	return r.alignment
}

func (r *RasterizedImage) ResizePolicy() ImageResize {
	return r.resize
}

func (r *RasterizedImage) DefaultColor() RGBAColor {
	return r.defaultColor
}

func (r *RasterizedImage) CellSpan() Size {
	return r.cellSpan
}

func (r *RasterizedImage) CellSize() Size {
	return r.cellSize
}

// Release removes the rasterization from its pool and drops its reference
// to the underlying image.
func (r *RasterizedImage) Release() {
	r.pool.removeRasterized(r)
}

// applyResize prepares the pixel raster according to the resize policy.
func (r *RasterizedImage) applyResize() {
	srcSize := r.image.Size()
	if r.resize == ResizeNone || srcSize.Width == 0 || srcSize.Height == 0 {
		r.pixels = r.image.rgba()
		r.pixelSize = srcSize
		return
	}

	target := Size{
		Width:  r.cellSpan.Width * r.cellSize.Width,
		Height: r.cellSpan.Height * r.cellSize.Height,
	}
	dstSize := target
	if r.resize == ResizeFit {
		dstSize = fitSize(srcSize, target)
	}
	if dstSize == srcSize {
		r.pixels = r.image.rgba()
		r.pixelSize = srcSize
		return
	}

	src := &image.RGBA{
		Pix:    r.image.rgba(),
		Stride: srcSize.Width * 4,
		Rect:   image.Rect(0, 0, srcSize.Width, srcSize.Height),
	}
	dst := image.NewRGBA(image.Rect(0, 0, dstSize.Width, dstSize.Height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	r.pixels = dst.Pix
	r.pixelSize = dstSize
}

// fitSize shrinks or grows src to the largest size that fits inside target
// while keeping the aspect ratio.
func fitSize(src, target Size) Size {
	if target.Width <= 0 || target.Height <= 0 {
		return src
	}
	h := src.Height * target.Width / src.Width
	if h <= target.Height {
		return Size{Width: target.Width, Height: h}
	}
	return Size{Width: src.Width * target.Height / src.Height, Height: target.Height}
}

// Fragment returns the cell-sized RGBA tile at the given cell coordinate.
// The tile is always cellSize.Width*cellSize.Height*4 bytes. The copied
// rows are vertically mirrored for bottom-up texture upload; pixels the
// image does not cover are filled with the default color. Requesting a
// cell whose pixel origin lies outside the image is a programming error
// and panics.
func (r *RasterizedImage) Fragment(pos Coord) []byte {
	xOffset := pos.Column * r.cellSize.Width
	yOffset := pos.Row * r.cellSize.Height

	if xOffset > r.pixelSize.Width || yOffset > r.pixelSize.Height {
		panic(fmt.Sprintf("tcellsixel: fragment (%d,%d) outside %dx%d image %d",
			pos.Row, pos.Column, r.pixelSize.Width, r.pixelSize.Height, r.image.id))
	}

	availableWidth := r.pixelSize.Width - xOffset
	if availableWidth > r.cellSize.Width {
		availableWidth = r.cellSize.Width
	}
	availableHeight := r.pixelSize.Height - yOffset
	if availableHeight > r.cellSize.Height {
		availableHeight = r.cellSize.Height
	}

	rowLen := r.cellSize.Width * 4
	frag := make([]byte, r.cellSize.Height*rowLen)

	for y := 0; y < availableHeight; y++ {
		srcRow := yOffset + availableHeight - 1 - y
		src := r.pixels[(srcRow*r.pixelSize.Width+xOffset)*4:]
		dst := frag[y*rowLen : (y+1)*rowLen]
		copy(dst, src[:availableWidth*4])
		fillRGBA(dst[availableWidth*4:], r.defaultColor)
	}
	fillRGBA(frag[availableHeight*rowLen:], r.defaultColor)

	return frag
}

// fillRGBA paints buf with a repeated 4-byte color pattern. len(buf) must
// be a multiple of 4.
func fillRGBA(buf []byte, c RGBAColor) {
	for i := 0; i < len(buf); i += 4 {
		buf[i] = c.R
		buf[i+1] = c.G
		buf[i+2] = c.B
		buf[i+3] = c.A
	}
}
