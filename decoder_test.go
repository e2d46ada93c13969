package tcellsixel

import (
	"bytes"
	"image"
	"image/color"
	"log"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeDecoderForTesting(w, h int) (*Decoder, *ImagePool) {
	pool := NewImagePool()
	return NewDecoder(pool, Size{Width: w, Height: h}), pool
}

func TestDecodeBytesBlank(t *testing.T) {
	dec, pool := makeDecoderForTesting(10, 6)
	img := dec.DecodeBytes(nil, nil)
	defer img.Release()

	assert.Equal(t, Size{Width: 10, Height: 6}, img.Size())
	require.Len(t, img.Data(), 10*6*4)
	for i := 0; i < len(img.Data()); i += 4 {
		assert.Equal(t, []byte{0, 0, 0, 0xff}, img.Data()[i:i+4])
	}
	assert.Equal(t, 1, pool.ImageCount())
}

func TestDecodeBytesTransparentBackground(t *testing.T) {
	dec, _ := makeDecoderForTesting(2, 6)
	img := dec.DecodeBytes([]int{0, 1, 0}, []byte("#1~"))
	defer img.Release()

	// column 0 painted opaque, column 1 untouched and fully transparent
	data := img.Data()
	assert.Equal(t, []byte{51, 51, 204, 0xff}, data[:4])
	assert.Equal(t, []byte{0, 0, 0, 0}, data[4:8])
}

func TestDecodePaletteSharedAcrossImages(t *testing.T) {
	dec, _ := makeDecoderForTesting(1, 6)
	first := dec.DecodeBytes(nil, []byte("#9;2;0;0;100"))
	defer first.Release()
	second := dec.DecodeBytes(nil, []byte("#9~"))
	defer second.Release()

	assert.Equal(t, []byte{0, 0, 255, 0xff}, second.Data()[:4])
}

func TestDecodeSequenceStripsIntroducer(t *testing.T) {
	dec, _ := makeDecoderForTesting(2, 6)
	img := dec.DecodeSequence([]byte("\x1bP0;0;8q#1~\x1b\\"))
	defer img.Release()
	assert.Equal(t, []byte{51, 51, 204, 0xff}, img.Data()[:4])
}

func TestDecodeStreamStopsAtStringTerminator(t *testing.T) {
	dec, _ := makeDecoderForTesting(2, 6)
	ch := make(chan rune, 16)
	for _, r := range "#1~\x1b\\" {
		ch <- r
	}
	img := dec.DecodeStream(nil, ch)
	defer img.Release()
	assert.Equal(t, []byte{51, 51, 204, 0xff}, img.Data()[:4])
}

func TestDecodeStreamChannelClose(t *testing.T) {
	dec, _ := makeDecoderForTesting(2, 6)
	ch := make(chan rune, 16)
	for _, r := range "#1~" {
		ch <- r
	}
	close(ch)
	img := dec.DecodeStream(nil, ch)
	defer img.Release()
	assert.Equal(t, []byte{51, 51, 204, 0xff}, img.Data()[:4])
}

func TestDecodePostsEvent(t *testing.T) {
	dec, _ := makeDecoderForTesting(2, 6)
	var events []tcell.Event
	dec.Attach(func(ev tcell.Event) {
		events = append(events, ev)
	})
	img := dec.DecodeBytes(nil, []byte("~"))
	defer img.Release()

	require.Len(t, events, 1)
	ev, ok := events[0].(*EventImage)
	require.True(t, ok)
	assert.Same(t, img, ev.Image())
	assert.False(t, ev.When().IsZero())
}

func TestDecodeLogsCompletion(t *testing.T) {
	dec, _ := makeDecoderForTesting(2, 6)
	var buf bytes.Buffer
	dec.Logger = log.New(&buf, "", 0)
	img := dec.DecodeBytes(nil, []byte("~"))
	defer img.Release()
	assert.Contains(t, buf.String(), "decoded image")
}

func TestSplitSequence(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantParams []int
		wantData   string
	}{
		{
			name:       "full DCS sequence",
			input:      "\x1bP0;1;8q~\x1b\\",
			wantParams: []int{0, 1, 8},
			wantData:   "~",
		},
		{
			name:       "no parameters",
			input:      "\x1bPq~\x1b\\",
			wantParams: []int{0},
			wantData:   "~",
		},
		{
			name:       "raw payload",
			input:      "#1~~",
			wantParams: nil,
			wantData:   "#1~~",
		},
		{
			name:       "raw payload with terminator",
			input:      "#1~~\x1b\\",
			wantParams: nil,
			wantData:   "#1~~",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			params, data := splitSequence([]byte(test.input))
			if diff := cmp.Diff(test.wantParams, params); diff != "" {
				t.Errorf("params mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, test.wantData, string(data))
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 12, 12))
	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			src.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, src))

	dec, _ := makeDecoderForTesting(12, 12)
	img := dec.DecodeSequence(buf.Bytes())
	defer img.Release()

	require.Equal(t, Size{Width: 12, Height: 12}, img.Size())
	// quantization may nudge channel values slightly
	center := img.Data()[(6*12+6)*4:]
	assert.InDelta(t, 255, int(center[0]), 10)
	assert.InDelta(t, 0, int(center[1]), 10)
	assert.InDelta(t, 0, int(center[2]), 10)
	assert.Equal(t, byte(0xff), center[3])
}
