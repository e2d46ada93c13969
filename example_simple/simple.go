// Command simple renders a sixel file onto a tcell screen, one character
// cell per image fragment.
package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	tcellsixel "git.sr.ht/~ghost08/tcell-sixel"
)

// nominal pixel size of one character cell
var cellSize = tcellsixel.Size{Width: 10, Height: 20}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s file.six\n", os.Args[0])
		os.Exit(2)
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	s, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if err = s.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer s.Fini()
	s.Clear()

	pool := tcellsixel.NewImagePool()
	dec := tcellsixel.NewDecoder(pool, tcellsixel.Size{Width: 1000, Height: 1000})
	img := dec.DecodeSequence(data)
	defer img.Release()

	cols := (img.Width() + cellSize.Width - 1) / cellSize.Width
	rows := (img.Height() + cellSize.Height - 1) / cellSize.Height
	r := pool.Rasterize(img, tcellsixel.AlignTopStart, tcellsixel.ResizeNone,
		tcellsixel.RGBAColor{A: 0xff},
		tcellsixel.Size{Width: cols, Height: rows}, cellSize)
	defer r.Release()

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			frag := r.Fragment(tcellsixel.Coord{Row: row, Column: col})
			style := tcell.StyleDefault.Background(averageColor(frag).TCellColor())
			s.SetContent(col, row, ' ', nil, style)
		}
	}
	s.Show()

	for {
		switch ev := s.PollEvent().(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyEscape {
				return
			}
		case *tcell.EventResize:
			s.Sync()
		}
	}
}

// averageColor folds a fragment down to the mean of its pixels.
func averageColor(frag []byte) tcellsixel.RGBColor {
	var r, g, b, n int
	for i := 0; i < len(frag); i += 4 {
		r += int(frag[i])
		g += int(frag[i+1])
		b += int(frag[i+2])
		n++
	}
	if n == 0 {
		return tcellsixel.RGBColor{}
	}
	return tcellsixel.RGBColor{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n)}
}
