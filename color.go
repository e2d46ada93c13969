package tcellsixel

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// RGBColor is a single color register value with 8-bit channels.
type RGBColor struct {
	R, G, B uint8
}

// RGBAColor adds an alpha channel. RGBA pixel buffers in this package store
// bytes in R, G, B, A order; FormatRGB images store R, G, B.
type RGBAColor struct {
	R, G, B, A uint8
}

// Opaque returns the color with full alpha.
func (c RGBColor) Opaque() RGBAColor {
	return RGBAColor{R: c.R, G: c.G, B: c.B, A: 0xff}
}

func (c RGBColor) TCellColor() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (c RGBAColor) TCellColor() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// RGBA implements color.Color.
func (c RGBAColor) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// VT340 default color palette
// (https://www.vt100.net/docs/vt3xx-gp/chapter2.html#S2.4)
var defaultColors = [16]RGBColor{
	{0, 0, 0},       //  0: black
	{51, 51, 204},   //  1: blue
	{204, 33, 33},   //  2: red
	{51, 204, 51},   //  3: green
	{204, 51, 204},  //  4: magenta
	{51, 204, 204},  //  5: cyan
	{204, 204, 51},  //  6: yellow
	{135, 135, 135}, //  7: gray 50%
	{66, 66, 66},    //  8: gray 25%
	{84, 84, 153},   //  9: less saturated blue
	{153, 66, 66},   // 10: less saturated red
	{84, 153, 84},   // 11: less saturated green
	{153, 84, 153},  // 12: less saturated magenta
	{84, 153, 153},  // 13: less saturated cyan
	{153, 153, 84},  // 14: less saturated yellow
	{204, 204, 204}, // 15: gray 75%
}
