package renderer

import (
	"image"
	"image/color"

	"github.com/Faultbox/portfolio-room/internal/material"
	"github.com/Faultbox/portfolio-room/internal/texture"
)

// RGB is a linear color in [0, 1].
type RGB [3]float32

var (
	glassColor   = RGB{0.6, 0.85, 0.95}
	videoColor   = RGB{0.2, 0.8, 0.4}
	pendingColor = RGB{0.9, 0.6, 0.2}
)

// Palette picks a line color per binding. Zone meshes take the mean color
// of their texture once it has decoded.
type Palette struct {
	zones map[*texture.Handle]RGB
}

// NewPalette creates an empty palette.
func NewPalette() *Palette {
	return &Palette{zones: make(map[*texture.Handle]RGB)}
}

// Color returns the color for b.
func (p *Palette) Color(b material.Binding) RGB {
	switch b := b.(type) {
	case material.Glass:
		return glassColor
	case material.VideoScreen:
		return videoColor
	case material.BlankScreen:
		return fromRGBA(b.Color)
	case material.StaticZone:
		return p.zoneColor(b.Texture)
	case material.Fallback:
		return fromRGBA(b.Color)
	}
	return fromRGBA(color.RGBA{R: 255, G: 255, B: 255, A: 255})
}

func (p *Palette) zoneColor(h *texture.Handle) RGB {
	if h == nil || h.State() != texture.StateReady {
		return pendingColor
	}
	if c, ok := p.zones[h]; ok {
		return c
	}
	c := MeanColor(h.Image())
	p.zones[h] = c
	return c
}

// MeanColor averages up to 64x64 evenly spaced samples of img.
func MeanColor(img image.Image) RGB {
	b := img.Bounds()
	if b.Empty() {
		return RGB{}
	}
	stepX := max(1, b.Dx()/64)
	stepY := max(1, b.Dy()/64)

	var sum [3]uint64
	var n uint64
	for y := b.Min.Y; y < b.Max.Y; y += stepY {
		for x := b.Min.X; x < b.Max.X; x += stepX {
			r, g, bl, _ := img.At(x, y).RGBA()
			sum[0] += uint64(r)
			sum[1] += uint64(g)
			sum[2] += uint64(bl)
			n++
		}
	}
	return RGB{
		float32(sum[0]) / float32(n) / 0xffff,
		float32(sum[1]) / float32(n) / 0xffff,
		float32(sum[2]) / float32(n) / 0xffff,
	}
}

func fromRGBA(c color.RGBA) RGB {
	return RGB{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}
