// Package texture loads the room's image textures by zone key and describes
// the video and environment textures bound to screens and glass.
package texture

import (
	"image"
	"image/color"
	"sync"
)

// ZoneKey identifies a logical textured area of the room. A mesh belongs to
// a zone when its name contains the key.
type ZoneKey string

// Zone pairs a key with its texture path.
type Zone struct {
	Key  ZoneKey
	Path string
}

// ColorSpace of texel data.
type ColorSpace int

const (
	ColorSpaceLinear ColorSpace = iota
	ColorSpaceSRGB
)

// String returns a human-readable color space name.
func (c ColorSpace) String() string {
	if c == ColorSpaceSRGB {
		return "srgb"
	}
	return "linear"
}

// Filter is a texture sampling filter.
type Filter int

const (
	FilterMipmapLinear Filter = iota // Renderer default
	FilterLinear
	FilterNearest
)

// String returns a human-readable filter name.
func (f Filter) String() string {
	switch f {
	case FilterLinear:
		return "linear"
	case FilterNearest:
		return "nearest"
	default:
		return "mipmap-linear"
	}
}

// State is the decode progress of a handle.
type State int

const (
	StatePending State = iota
	StateReady
	StateFailed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "pending"
	}
}

// placeholder is shown while a texture decodes and after a decode fails.
var placeholder = func() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, G: 0, B: 255, A: 255})
	return img
}()

// Handle is a texture whose pixels arrive asynchronously. It is safe to
// read from the frame loop while the decode goroutine completes.
type Handle struct {
	Key        ZoneKey
	Path       string
	FlipY      bool
	ColorSpace ColorSpace

	mu    sync.RWMutex
	state State
	img   image.Image
	err   error
	done  chan struct{}
}

func newHandle(key ZoneKey, path string) *Handle {
	return &Handle{
		Key:        key,
		Path:       path,
		FlipY:      false,
		ColorSpace: ColorSpaceSRGB,
		done:       make(chan struct{}),
	}
}

// State returns the decode state.
func (h *Handle) State() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// Image returns the decoded image, or a 1x1 placeholder until it is ready.
func (h *Handle) Image() image.Image {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.img == nil {
		return placeholder
	}
	return h.img
}

// Err returns the decode error of a failed handle.
func (h *Handle) Err() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.err
}

// Done is closed once decoding finishes, successfully or not.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

func (h *Handle) finish(img image.Image, err error) {
	h.mu.Lock()
	if err != nil {
		h.state = StateFailed
		h.err = err
	} else {
		h.state = StateReady
		h.img = img
	}
	h.mu.Unlock()
	close(h.done)
}
