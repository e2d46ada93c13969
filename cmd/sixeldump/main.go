// Command sixeldump decodes a sixel file to PNG.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"

	"github.com/BurntSushi/toml"

	tcellsixel "git.sr.ht/~ghost08/tcell-sixel"
)

type config struct {
	MaxWidth    int    `toml:"max_width"`
	MaxHeight   int    `toml:"max_height"`
	PaletteSize int    `toml:"palette_size"`
	Background  string `toml:"background"` // "#rrggbb"
}

func main() {
	var (
		confPath = flag.String("c", "", "path to TOML config file")
		outPath  = flag.String("o", "out.png", "output PNG path")
		verbose  = flag.Bool("v", false, "verbose mode")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-c config] [-o out.png] file.six\n", os.Args[0])
		os.Exit(2)
	}

	conf := config{MaxWidth: 800, MaxHeight: 600, PaletteSize: 256}
	if *confPath != "" {
		if _, err := toml.DecodeFile(*confPath, &conf); err != nil {
			log.Fatalf("config: %v", err)
		}
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	pool := tcellsixel.NewImagePool()
	dec := tcellsixel.NewDecoder(pool, tcellsixel.Size{Width: conf.MaxWidth, Height: conf.MaxHeight})
	dec.SetPaletteSize(conf.PaletteSize)
	if *verbose {
		dec.Logger = log.New(os.Stderr, "sixeldump ", log.LstdFlags)
	}
	if conf.Background != "" {
		bg, err := parseHexColor(conf.Background)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		dec.SetBackground(bg)
	}

	img := dec.DecodeSequence(data)
	defer img.Release()

	f, err := os.Create(*outPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := png.Encode(f, tcellsixel.ToImage(img)); err != nil {
		f.Close()
		log.Fatal(err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
}

func parseHexColor(s string) (tcellsixel.RGBAColor, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return tcellsixel.RGBAColor{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return tcellsixel.RGBAColor{R: r, G: g, B: b, A: 0xff}, nil
}
