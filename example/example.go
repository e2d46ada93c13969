// Command example runs a child command under a pty, mirrors its output to
// the host terminal, and decodes every sixel image the child emits.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"

	"github.com/creack/pty"
	"golang.org/x/term"

	tcellsixel "git.sr.ht/~ghost08/tcell-sixel"
)

type scanState int

const (
	stateText scanState = iota
	stateEsc
	stateSixel
	stateSixelEsc
)

// sixelScanner watches a byte stream for DCS sixel sequences and hands
// each complete one to the decoder.
type sixelScanner struct {
	dec    *tcellsixel.Decoder
	state  scanState
	seq    []byte
	images []*tcellsixel.Image
}

func (s *sixelScanner) scan(data []byte) {
	for _, b := range data {
		switch s.state {
		case stateText:
			if b == 0x1b {
				s.state = stateEsc
			}
		case stateEsc:
			if b == 'P' {
				s.state = stateSixel
				s.seq = append(s.seq[:0], 0x1b, 'P')
			} else {
				s.state = stateText
			}
		case stateSixel:
			s.seq = append(s.seq, b)
			if b == 0x1b {
				s.state = stateSixelEsc
			}
		case stateSixelEsc:
			s.seq = append(s.seq, b)
			if b == 0x5c {
				s.images = append(s.images, s.dec.DecodeSequence(s.seq))
				s.state = stateText
			} else if b != 0x1b {
				s.state = stateSixel
			}
		}
	}
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		args = []string{os.Getenv("SHELL")}
	}

	c := exec.Command(args[0], args[1:]...)
	ptmx, err := pty.Start(c)
	if err != nil {
		log.Fatal(err)
	}
	defer ptmx.Close()

	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		oldState, err := term.MakeRaw(fd)
		if err == nil {
			defer term.Restore(fd, oldState)
		}
		go func() {
			_, _ = io.Copy(ptmx, os.Stdin)
		}()
	}

	pool := tcellsixel.NewImagePool()
	dec := tcellsixel.NewDecoder(pool, tcellsixel.Size{Width: 1000, Height: 1000})
	scanner := &sixelScanner{dec: dec}

	buf := make([]byte, 32*1024)
	for {
		n, err := ptmx.Read(buf)
		if n > 0 {
			_, _ = os.Stdout.Write(buf[:n])
			scanner.scan(buf[:n])
		}
		if err != nil {
			break
		}
	}

	fmt.Printf("\r\ndecoded %d sixel image(s)\r\n", len(scanner.images))
	for _, img := range scanner.images {
		fmt.Printf("  image %d: %dx%d\r\n", img.ID(), img.Width(), img.Height())
		img.Release()
	}
}
