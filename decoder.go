package tcellsixel

import (
	"io"
	"log"

	"github.com/gdamore/tcell/v2"
)

const (
	defaultPaletteSize = 256
	maxPaletteSize     = 65535
)

// Decoder turns sixel DCS payloads into pool-owned images. The palette is
// shared across decodes so color registers defined by one image remain
// available to the next, the way a real terminal keeps them.
type Decoder struct {
	Logger *log.Logger

	maxSize    Size
	palette    *ColorPalette
	background RGBAColor
	pool       *ImagePool

	eventHandler func(tcell.Event)
}

// NewDecoder returns a decoder clamping images to maxSize pixels. The
// default background is opaque black.
func NewDecoder(pool *ImagePool, maxSize Size) *Decoder {
	return &Decoder{
		Logger:     log.New(io.Discard, "", log.Flags()),
		maxSize:    maxSize,
		palette:    NewColorPalette(defaultPaletteSize, maxPaletteSize),
		background: RGBAColor{A: 0xff},
		pool:       pool,
	}
}

// Attach registers fn to receive an EventImage for every completed decode.
func (d *Decoder) Attach(fn func(tcell.Event)) {
	d.eventHandler = fn
}

func (d *Decoder) SetBackground(c RGBAColor) {
	d.background = c
}

// SetPaletteSize resizes the shared color palette, dropping any registers
// beyond the new size.
func (d *Decoder) SetPaletteSize(n int) {
	d.palette.SetSize(n)
}

func (d *Decoder) Palette() *ColorPalette {
	return d.palette
}

// background select: P2 == 1 leaves unpainted pixels transparent instead
// of painting the device background.
func (d *Decoder) backgroundFor(params []int) RGBAColor {
	if len(params) >= 2 && params[1] == 1 {
		return RGBAColor{}
	}
	return d.background
}

// DecodeBytes decodes a complete sixel payload. params are the DCS
// parameters preceding the final 'q' (P1 aspect ratio, P2 background
// select, P3 grid size); both may be empty. Decoding never fails: a
// malformed payload yields a blank or partial image.
func (d *Decoder) DecodeBytes(params []int, data []byte) *Image {
	builder := NewImageBuilder(d.maxSize, 1, 1, d.backgroundFor(params), d.palette)
	parser := NewParser(builder, nil)
	parser.ParseBytes(data)
	parser.Finalize()
	return d.intern(builder)
}

// DecodeStream consumes a sixel stream from readChan until the string
// terminator (ESC \) or until the channel closes, then interns the decoded
// image. This is the path a terminal feeds after dispatching a sixel DCS
// introducer.
func (d *Decoder) DecodeStream(params []int, readChan <-chan rune) *Image {
	builder := NewImageBuilder(d.maxSize, 1, 1, d.backgroundFor(params), d.palette)
	parser := NewParser(builder, nil)

	var inEscape bool
	for r := range readChan {
		switch r {
		case 0x1b:
			inEscape = true
			continue
		case 0x5c:
			if inEscape {
				parser.Finalize()
				return d.intern(builder)
			}
		}
		inEscape = false
		parser.Parse(r)
	}

	parser.Finalize()
	return d.intern(builder)
}

// DecodeSequence decodes a full DCS sixel sequence, introducer and string
// terminator included. A raw payload without an introducer is accepted too.
func (d *Decoder) DecodeSequence(data []byte) *Image {
	params, payload := splitSequence(data)
	return d.DecodeBytes(params, payload)
}

func (d *Decoder) intern(b *ImageBuilder) *Image {
	img := d.pool.Create(FormatRGBA, b.Size(), b.Data())
	d.Logger.Printf("sixel: decoded image %d (%dx%d)\n", img.ID(), img.Width(), img.Height())
	if d.eventHandler != nil {
		d.eventHandler(newEventImage(img))
	}
	return img
}

// splitSequence strips the DCS introducer (ESC P params q) and the string
// terminator from data, returning the numeric parameters and the sixel
// payload.
func splitSequence(data []byte) ([]int, []byte) {
	if len(data) >= 2 && data[0] == 0x1b && data[1] == 'P' {
		rest := data[2:]
		for i, b := range rest {
			if b == 'q' {
				return parseParams(rest[:i]), trimST(rest[i+1:])
			}
			if !(b >= '0' && b <= '9') && b != ';' {
				break
			}
		}
		return nil, trimST(rest)
	}
	return nil, trimST(data)
}

func parseParams(raw []byte) []int {
	params := []int{0}
	for _, b := range raw {
		switch {
		case b >= '0' && b <= '9':
			params[len(params)-1] = params[len(params)-1]*10 + int(b-'0')
		case b == ';':
			params = append(params, 0)
		}
	}
	return params
}

func trimST(data []byte) []byte {
	if n := len(data); n >= 2 && data[n-2] == 0x1b && data[n-1] == 0x5c {
		return data[:n-2]
	}
	return data
}
