package tcellsixel

// ColorPalette is a resizable, bounded set of sixel color registers.
// Lookups wrap modulo the current size. A palette may be shared between
// decodes so color definitions survive across images.
type ColorPalette struct {
	palette []RGBColor
	maxSize int
}

func NewColorPalette(size, maxSize int) *ColorPalette {
	p := &ColorPalette{maxSize: maxSize}
	if size > 0 {
		p.palette = make([]RGBColor, size)
	}
	p.Reset()
	return p
}

// Reset loads the VT340 default colors into the first sixteen registers,
// or as many of them as fit.
func (p *ColorPalette) Reset() {
	copy(p.palette, defaultColors[:])
}

func (p *ColorPalette) Size() int {
	return len(p.palette)
}

func (p *ColorPalette) MaxSize() int {
	return p.maxSize
}

func (p *ColorPalette) SetMaxSize(n int) {
	p.maxSize = n
}

// SetSize resizes the palette to min(n, maxSize). New registers are black.
func (p *ColorPalette) SetSize(n int) {
	if n > p.maxSize {
		n = p.maxSize
	}
	if n < 0 {
		n = 0
	}
	if n <= len(p.palette) {
		p.palette = p.palette[:n]
		return
	}
	grown := make([]RGBColor, n)
	copy(grown, p.palette)
	p.palette = grown
}

// SetColor stores c at the given register, growing the palette if index is
// beyond its current size. Registers at or beyond maxSize are not
// assignable; such a call does nothing.
func (p *ColorPalette) SetColor(index int, c RGBColor) {
	if index < 0 || index >= p.maxSize {
		return
	}
	if index >= len(p.palette) {
		p.SetSize(index + 1)
	}
	p.palette[index] = c
}

// At returns the register at index, wrapping modulo the palette size.
func (p *ColorPalette) At(index int) RGBColor {
	if len(p.palette) == 0 {
		return RGBColor{}
	}
	return p.palette[index%len(p.palette)]
}
