// Package material decides how each room mesh is drawn. Mesh names follow
// an authoring convention (substring markers); the classifier turns a name
// and its geometry capabilities into exactly one Binding.
package material

import (
	"image/color"

	"github.com/Faultbox/portfolio-room/internal/texture"
)

// Kind identifies a Binding variant.
type Kind int

const (
	KindFallback Kind = iota
	KindGlass
	KindVideoScreen
	KindBlankScreen
	KindStaticZone
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindGlass:
		return "glass"
	case KindVideoScreen:
		return "video-screen"
	case KindBlankScreen:
		return "blank-screen"
	case KindStaticZone:
		return "static-zone"
	default:
		return "fallback"
	}
}

// Binding is the resolved rendering behavior of a mesh. The set of
// implementations is closed: Glass, VideoScreen, BlankScreen, StaticZone
// and Fallback.
type Binding interface {
	Kind() Kind
	binding()
}

// Glass binds the shared physically based glass material.
type Glass struct {
	Material *PhysicalMaterial
}

// VideoScreen binds the shared looping video.
type VideoScreen struct {
	Video *texture.Video
}

// BlankScreen is an opaque screen used when the mesh has no UVs.
type BlankScreen struct {
	Color color.RGBA
}

// StaticZone binds a zone's baked texture. MinFilter is forced to linear:
// the textures are authored at screen resolution and mipmapping blurs them.
type StaticZone struct {
	Zone      texture.ZoneKey
	Texture   *texture.Handle
	MinFilter texture.Filter
}

// Fallback is a flat neutral material for meshes no rule claims.
type Fallback struct {
	Color color.RGBA
}

func (Glass) Kind() Kind       { return KindGlass }
func (VideoScreen) Kind() Kind { return KindVideoScreen }
func (BlankScreen) Kind() Kind { return KindBlankScreen }
func (StaticZone) Kind() Kind  { return KindStaticZone }
func (Fallback) Kind() Kind    { return KindFallback }

func (Glass) binding()       {}
func (VideoScreen) binding() {}
func (BlankScreen) binding() {}
func (StaticZone) binding()  {}
func (Fallback) binding()    {}

var (
	black = color.RGBA{A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// PhysicalMaterial is a physically based transmissive material.
type PhysicalMaterial struct {
	Transmission      float32
	Opacity           float32
	Metalness         float32
	Roughness         float32
	IOR               float32
	Thickness         float32
	SpecularIntensity float32
	EnvMap            *texture.CubeMap
	EnvMapIntensity   float32
	DepthWrite        bool
}

// NewGlassMaterial returns the clear glass used for every glass mesh.
// Depth writes are off so glass never hides what is behind it.
func NewGlassMaterial(env *texture.CubeMap) *PhysicalMaterial {
	return &PhysicalMaterial{
		Transmission:      1,
		Opacity:           1,
		Metalness:         0,
		Roughness:         0,
		IOR:               1.5,
		Thickness:         0.01,
		SpecularIntensity: 1,
		EnvMap:            env,
		EnvMapIntensity:   1,
		DepthWrite:        false,
	}
}
