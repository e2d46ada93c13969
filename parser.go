package tcellsixel

type parserState int

const (
	stateGround parserState = iota
	stateRepeatIntroducer
	stateColorIntroducer
	stateColorParam
	stateRasterSettings
)

// EventHandler receives the semantic events decoded from a sixel stream.
// ImageBuilder is the canonical implementation.
type EventHandler interface {
	// SetColor defines a new color at the given register index.
	SetColor(index int, c RGBColor)
	// UseColor selects the color register used for subsequent renders.
	UseColor(index int)
	// Rewind moves the sixel cursor back to the left border.
	Rewind()
	// Newline moves the sixel cursor to the left border of the next band.
	Newline()
	// SetRaster defines the aspect ratio (pan/pad) and the image
	// dimensions in pixels for the upcoming pixel data.
	SetRaster(pan, pad int, size Size)
	// Render draws a sixel at the current cursor position.
	Render(sixel int)
}

// Parser is a streaming sixel parser. It consumes the payload of a sixel
// DCS sequence one rune at a time, without the introducer or the string
// terminator, and reports what it sees to an EventHandler. Unknown input
// is dropped; the parser never fails.
type Parser struct {
	state    parserState
	params   []int
	handler  EventHandler
	finalize func()
}

// NewParser returns a parser in the ground state. onFinalize may be nil;
// if set, it runs after Finalize has flushed the final state.
func NewParser(handler EventHandler, onFinalize func()) *Parser {
	return &Parser{handler: handler, finalize: onFinalize}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isSixel(r rune) bool {
	return r >= 63 && r <= 126
}

func toSixel(r rune) int {
	return int(r - 63)
}

func (p *Parser) Parse(r rune) {
	switch p.state {
	case stateGround:
		p.fallback(r)

	case stateRepeatIntroducer:
		// '!' NUMBER BYTE
		switch {
		case isDigit(r):
			p.shiftParam(int(r - '0'))
		case isSixel(r):
			sixel := toSixel(r)
			for i := 0; i < p.params[0]; i++ {
				p.handler.Render(sixel)
			}
			p.transitionTo(stateGround)
		default:
			p.fallback(r)
		}

	case stateColorIntroducer:
		if isDigit(r) {
			p.shiftParam(int(r - '0'))
			p.transitionTo(stateColorParam)
		} else {
			p.fallback(r)
		}

	case stateColorParam, stateRasterSettings:
		switch {
		case isDigit(r):
			p.shiftParam(int(r - '0'))
		case r == ';':
			p.params = append(p.params, 0)
		default:
			p.fallback(r)
		}
	}
}

// ParseString feeds every rune of s to the parser.
func (p *Parser) ParseString(s string) {
	for _, r := range s {
		p.Parse(r)
	}
}

// ParseBytes feeds every byte of data to the parser.
func (p *Parser) ParseBytes(data []byte) {
	for _, b := range data {
		p.Parse(rune(b))
	}
}

// Finalize flushes the pending leave action of the current state and then
// invokes the finalizer, if any.
func (p *Parser) Finalize() {
	p.transitionTo(stateGround)
	if p.finalize != nil {
		p.finalize()
	}
}

func (p *Parser) fallback(r rune) {
	switch r {
	case '#':
		p.transitionTo(stateColorIntroducer)
	case '!':
		p.transitionTo(stateRepeatIntroducer)
	case '"':
		p.transitionTo(stateRasterSettings)
	case '$':
		p.transitionTo(stateGround)
		p.handler.Rewind()
	case '-':
		p.transitionTo(stateGround)
		p.handler.Newline()
	default:
		if p.state != stateGround {
			p.transitionTo(stateGround)
		}
		if isSixel(r) {
			p.handler.Render(toSixel(r))
		}
		// anything else is ignored
	}
}

func (p *Parser) shiftParam(digit int) {
	p.params[len(p.params)-1] = p.params[len(p.params)-1]*10 + digit
}

func (p *Parser) transitionTo(next parserState) {
	p.leaveState()
	p.state = next
	p.enterState()
}

func (p *Parser) enterState() {
	switch p.state {
	case stateColorIntroducer, stateRepeatIntroducer, stateRasterSettings:
		p.params = append(p.params[:0], 0)
	}
}

func (p *Parser) leaveState() {
	switch p.state {
	case stateRasterSettings:
		if len(p.params) == 4 {
			size := Size{Width: p.params[2], Height: p.params[3]}
			p.handler.SetRaster(p.params[0], p.params[1], size)
			p.state = stateGround
		}

	case stateColorParam:
		switch len(p.params) {
		case 1:
			p.handler.UseColor(p.params[0])
		case 5:
			// #index;space;a;b;c -- space 2 selects RGB. Any other
			// space is HSL, which is not interpreted.
			if p.params[1] == 2 {
				p.handler.SetColor(p.params[0], RGBColor{
					R: scaleColor(p.params[2]),
					G: scaleColor(p.params[3]),
					B: scaleColor(p.params[4]),
				})
			}
		}
	}
}

// scaleColor converts a sixel color channel from 0..100 to 0..255.
func scaleColor(v int) uint8 {
	return uint8((v * 255 / 100) % 256)
}
