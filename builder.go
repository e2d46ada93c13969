package tcellsixel

// ImageBuilder interprets parser events into an RGBA pixel buffer. It is
// the canonical EventHandler implementation.
type ImageBuilder struct {
	maxSize      Size
	palette      *ColorPalette
	size         Size
	buf          []byte
	cursor       Coord
	currentColor int
	aspectNum    int
	aspectDen    int
}

// NewImageBuilder returns a builder whose raster starts at maxSize filled
// with the background color. A later SetRaster may shrink it.
func NewImageBuilder(maxSize Size, aspectNum, aspectDen int, background RGBAColor, palette *ColorPalette) *ImageBuilder {
	b := &ImageBuilder{
		maxSize:   maxSize,
		palette:   palette,
		size:      maxSize,
		buf:       make([]byte, maxSize.Width*maxSize.Height*4),
		aspectNum: aspectNum,
		aspectDen: aspectDen,
	}
	b.Clear(background)
	return b
}

func (b *ImageBuilder) Size() Size {
	return b.size
}

func (b *ImageBuilder) MaxSize() Size {
	return b.maxSize
}

func (b *ImageBuilder) AspectRatio() (num, den int) {
	return b.aspectNum, b.aspectDen
}

func (b *ImageBuilder) SixelCursor() Coord {
	return b.cursor
}

func (b *ImageBuilder) CurrentColor() RGBColor {
	return b.palette.At(b.currentColor)
}

// Data returns the RGBA pixel buffer.
func (b *ImageBuilder) Data() []byte {
	return b.buf
}

// Clear paints every pixel with the fill color and rewinds the sixel
// cursor to the origin.
func (b *ImageBuilder) Clear(fill RGBAColor) {
	b.cursor = Coord{}
	for i := 0; i < len(b.buf); i += 4 {
		b.buf[i] = fill.R
		b.buf[i+1] = fill.G
		b.buf[i+2] = fill.B
		b.buf[i+3] = fill.A
	}
}

// At reads the pixel at the given coordinate, wrapping on both axes.
func (b *ImageBuilder) At(pos Coord) RGBAColor {
	if b.size.Width == 0 || b.size.Height == 0 {
		return RGBAColor{}
	}
	row := pos.Row % b.size.Height
	col := pos.Column % b.size.Width
	base := (row*b.size.Width + col) * 4
	return RGBAColor{R: b.buf[base], G: b.buf[base+1], B: b.buf[base+2], A: b.buf[base+3]}
}

// write stores an opaque pixel. Coordinates outside the raster are
// silently dropped.
func (b *ImageBuilder) write(pos Coord, c RGBColor) {
	if pos.Row < 0 || pos.Row >= b.size.Height || pos.Column < 0 || pos.Column >= b.size.Width {
		return
	}
	base := (pos.Row*b.size.Width + pos.Column) * 4
	b.buf[base] = c.R
	b.buf[base+1] = c.G
	b.buf[base+2] = c.B
	b.buf[base+3] = 0xff
}

func (b *ImageBuilder) SetColor(index int, c RGBColor) {
	b.palette.SetColor(index, c)
}

func (b *ImageBuilder) UseColor(index int) {
	if n := b.palette.Size(); n > 0 {
		b.currentColor = index % n
	}
}

func (b *ImageBuilder) Rewind() {
	b.cursor.Column = 0
}

// Newline advances the cursor to the start of the next sixel band. Once
// the band origin reaches the bottom edge, further writes fall outside the
// raster and are dropped rather than overpainting the last band.
func (b *ImageBuilder) Newline() {
	b.cursor.Column = 0
	if b.cursor.Row+6 <= b.size.Height {
		b.cursor.Row += 6
	}
}

// SetRaster sets the aspect ratio and resizes the pixel buffer to the
// given size, clamped per axis to the builder's maximum.
func (b *ImageBuilder) SetRaster(pan, pad int, size Size) {
	b.aspectNum = pan
	b.aspectDen = pad
	b.size.Width = clamp(size.Width, 0, b.maxSize.Width)
	b.size.Height = clamp(size.Height, 0, b.maxSize.Height)

	n := b.size.Width * b.size.Height * 4
	if n <= len(b.buf) {
		b.buf = b.buf[:n]
		return
	}
	grown := make([]byte, n)
	copy(grown, b.buf)
	b.buf = grown
}

// Render draws the six vertical pixels encoded by a sixel at the current
// cursor column, then advances one column. Bit 0 is the topmost pixel.
// With the cursor at or beyond the right edge nothing is drawn and the
// cursor stays put.
func (b *ImageBuilder) Render(sixel int) {
	x := b.cursor.Column
	if x >= b.size.Width {
		return
	}
	c := b.CurrentColor()
	for i := 0; i < 6; i++ {
		if sixel&(1<<i) != 0 {
			b.write(Coord{Row: b.cursor.Row + i, Column: x}, c)
		}
	}
	b.cursor.Column++
}
