package tcellsixel

import (
	"fmt"
	"sync"
)

// ImageFormat describes the pixel encoding of an Image's buffer.
type ImageFormat int

const (
	FormatRGBA ImageFormat = iota
	FormatRGB
)

func (f ImageFormat) BytesPerPixel() int {
	if f == FormatRGB {
		return 3
	}
	return 4
}

// Image is a decoded picture owned by an ImagePool. An Image's address is
// stable from creation until the last reference is released.
type Image struct {
	id     int
	format ImageFormat
	size   Size
	data   []byte

	pool *ImagePool
	refs int
}

func (img *Image) ID() int {
	return img.id
}

func (img *Image) Format() ImageFormat {
	return img.format
}

func (img *Image) Size() Size {
	return img.size
}

func (img *Image) Width() int {
	return img.size.Width
}

func (img *Image) Height() int {
	return img.size.Height
}

func (img *Image) Data() []byte {
	return img.data
}

// Retain adds a reference and returns the image for chaining.
func (img *Image) Retain() *Image {
	img.pool.mu.Lock()
	img.refs++
	img.pool.mu.Unlock()
	return img
}

// Release drops a reference. Dropping the last one runs the pool's removal
// observer and erases the image from the pool. Safe to call from any
// goroutine. Releasing an image the pool no longer owns panics.
func (img *Image) Release() {
	img.pool.mu.Lock()
	defer img.pool.mu.Unlock()
	img.pool.releaseImageLocked(img)
}

// rgba returns the pixels as RGBA bytes, converting from RGB if needed.
func (img *Image) rgba() []byte {
	if img.format == FormatRGBA {
		return img.data
	}
	out := make([]byte, img.size.Width*img.size.Height*4)
	for i, o := 0, 0; i+2 < len(img.data); i, o = i+3, o+4 {
		out[o] = img.data[i]
		out[o+1] = img.data[i+1]
		out[o+2] = img.data[i+2]
		out[o+3] = 0xff
	}
	return out
}

// ImagePool owns decoded images and their rasterizations. Creation happens
// on the decoder goroutine; releases may come from any goroutine holding
// the last reference, so all list mutation is mutex-guarded.
type ImagePool struct {
	mu            sync.Mutex
	images        []*Image
	rasterized    []*RasterizedImage
	named         map[string]*Image
	nextImageID   int
	onImageRemove func(*Image)
}

func NewImagePool() *ImagePool {
	return &ImagePool{
		named:       make(map[string]*Image),
		nextImageID: 1,
	}
}

// OnImageRemove registers fn to run just before an image is erased from
// the pool. The renderer uses this to evict texture atlas slots. fn runs
// with the pool locked and may be invoked from whichever goroutine
// released the last reference; it must not call back into the pool.
// Defer GPU-side work through a DiscardQueue instead.
func (p *ImagePool) OnImageRemove(fn func(*Image)) {
	p.mu.Lock()
	p.onImageRemove = fn
	p.mu.Unlock()
}

// Create interns a new image under the next id and returns it with one
// reference held by the caller.
func (p *ImagePool) Create(format ImageFormat, size Size, data []byte) *Image {
	p.mu.Lock()
	defer p.mu.Unlock()
	img := &Image{
		id:     p.nextImageID,
		format: format,
		size:   size,
		data:   data,
		pool:   p,
		refs:   1,
	}
	p.nextImageID++
	p.images = append(p.images, img)
	return img
}

func (p *ImagePool) releaseImageLocked(img *Image) {
	img.refs--
	if img.refs > 0 {
		return
	}
	for i, owned := range p.images {
		if owned == img {
			if p.onImageRemove != nil {
				p.onImageRemove(img)
			}
			p.images = append(p.images[:i], p.images[i+1:]...)
			return
		}
	}
	panic(fmt.Sprintf("tcellsixel: release of image %d not owned by pool", img.id))
}

// Rasterize fits img to a cell grid and returns the rasterization, which
// holds a reference to img until it is released.
func (p *ImagePool) Rasterize(img *Image, alignment ImageAlignment, resize ImageResize, defaultColor RGBAColor, cellSpan, cellSize Size) *RasterizedImage {
	img.Retain()
	r := &RasterizedImage{
		image:        img,
		alignment:    alignment,
		resize:       resize,
		defaultColor: defaultColor,
		cellSpan:     cellSpan,
		cellSize:     cellSize,
		pool:         p,
	}
	r.applyResize()
	p.mu.Lock()
	p.rasterized = append(p.rasterized, r)
	p.mu.Unlock()
	return r
}

func (p *ImagePool) removeRasterized(r *RasterizedImage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, owned := range p.rasterized {
		if owned == r {
			p.rasterized = append(p.rasterized[:i], p.rasterized[i+1:]...)
			p.releaseImageLocked(r.image)
			return
		}
	}
}

// Link associates name with the image, keeping it alive until Unlink. An
// existing link under the same name is replaced.
func (p *ImagePool) Link(name string, img *Image) {
	p.mu.Lock()
	defer p.mu.Unlock()
	old := p.named[name]
	if old == img {
		return
	}
	img.refs++
	p.named[name] = img
	if old != nil {
		p.releaseImageLocked(old)
	}
}

// FindImageByName returns the image linked under name, or nil. No extra
// reference is handed to the caller.
func (p *ImagePool) FindImageByName(name string) *Image {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.named[name]
}

// Unlink removes the named reference, releasing the image it kept alive.
func (p *ImagePool) Unlink(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if img, ok := p.named[name]; ok {
		delete(p.named, name)
		p.releaseImageLocked(img)
	}
}

func (p *ImagePool) ImageCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.images)
}

func (p *ImagePool) RasterizedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.rasterized)
}
