package tcellsixel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaletteDefaults(t *testing.T) {
	p := NewColorPalette(16, 256)
	assert.Equal(t, 16, p.Size())
	assert.Equal(t, RGBColor{0, 0, 0}, p.At(0))
	assert.Equal(t, RGBColor{51, 51, 204}, p.At(1))
	assert.Equal(t, RGBColor{204, 33, 33}, p.At(2))
	assert.Equal(t, RGBColor{204, 204, 204}, p.At(15))
}

func TestPaletteResetPartial(t *testing.T) {
	// Fewer slots than the sixteen defaults: only the first ones load.
	p := NewColorPalette(4, 256)
	assert.Equal(t, 4, p.Size())
	assert.Equal(t, RGBColor{51, 204, 51}, p.At(3))
}

func TestPaletteWrap(t *testing.T) {
	p := NewColorPalette(8, 256)
	for i := 0; i < 32; i++ {
		assert.Equal(t, p.At(i%8), p.At(i), "index %d", i)
	}
}

func TestPaletteSetColorGrows(t *testing.T) {
	p := NewColorPalette(2, 256)
	red := RGBColor{R: 255}
	p.SetColor(5, red)
	require.Equal(t, 6, p.Size())
	assert.Equal(t, red, p.At(5))
	// grown slots default to black
	assert.Equal(t, RGBColor{}, p.At(3))
}

func TestPaletteSetColorBeyondMaxIsNoop(t *testing.T) {
	p := NewColorPalette(2, 4)
	p.SetColor(4, RGBColor{R: 1})
	assert.Equal(t, 2, p.Size())
	p.SetColor(3, RGBColor{G: 1})
	assert.Equal(t, 4, p.Size())
	assert.Equal(t, RGBColor{G: 1}, p.At(3))
	assert.LessOrEqual(t, p.Size(), p.MaxSize())
}

func TestPaletteSetSizeClampsToMax(t *testing.T) {
	p := NewColorPalette(2, 4)
	p.SetSize(100)
	assert.Equal(t, 4, p.Size())
	p.SetSize(1)
	assert.Equal(t, 1, p.Size())
	p.SetSize(-1)
	assert.Equal(t, 0, p.Size())
}

func TestPaletteAtEmpty(t *testing.T) {
	p := NewColorPalette(0, 4)
	assert.Equal(t, RGBColor{}, p.At(7))
}
