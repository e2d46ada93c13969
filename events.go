package tcellsixel

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// EventImage is posted when a sixel decode completes. The receiver owns no
// extra reference; call Retain to keep the image alive after the decode
// caller releases its reference.
type EventImage struct {
	when  time.Time
	image *Image
}

var _ tcell.Event = (*EventImage)(nil)

func (ev *EventImage) When() time.Time {
	return ev.when
}

func (ev *EventImage) Image() *Image {
	return ev.image
}

func newEventImage(img *Image) tcell.Event {
	return &EventImage{
		when:  time.Now(),
		image: img,
	}
}
