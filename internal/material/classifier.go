package material

import (
	"strings"

	"github.com/Faultbox/portfolio-room/internal/texture"
)

// DiagnosticKind names a non-fatal classification anomaly.
type DiagnosticKind int

const (
	DiagMissingUV DiagnosticKind = iota
	DiagUnclassified
	DiagTextureUnavailable
)

// String returns a human-readable diagnostic name.
func (d DiagnosticKind) String() string {
	switch d {
	case DiagMissingUV:
		return "missing-uv"
	case DiagUnclassified:
		return "unclassified"
	default:
		return "texture-unavailable"
	}
}

// Diagnostic is an anomaly found while classifying one mesh.
type Diagnostic struct {
	Kind DiagnosticKind
	Mesh string
	Zone texture.ZoneKey
}

// Markers are the mesh-name substrings the classifier looks for.
type Markers struct {
	Glass       string
	Screen      string
	Interactive string
	Fan         string
}

// TextureLookup resolves a zone key to a loaded texture without side effects.
type TextureLookup interface {
	Lookup(key texture.ZoneKey) (*texture.Handle, bool)
}

// Result is the outcome of classifying one mesh. Interactive and Animated
// are tags independent of the binding.
type Result struct {
	Binding     Binding
	Interactive bool
	Animated    bool
	Diagnostics []Diagnostic
}

// Classifier maps mesh names to bindings. It holds only immutable inputs,
// so Classify is deterministic for a given (name, hasUV).
type Classifier struct {
	markers  Markers
	zones    []texture.Zone
	textures TextureLookup
	glass    *PhysicalMaterial
	video    *texture.Video
}

// NewClassifier creates a classifier. zones is the match order.
func NewClassifier(markers Markers, zones []texture.Zone, textures TextureLookup, glass *PhysicalMaterial, video *texture.Video) *Classifier {
	return &Classifier{
		markers:  markers,
		zones:    zones,
		textures: textures,
		glass:    glass,
		video:    video,
	}
}

// Classify resolves the binding for one mesh. Rules are tried in order and
// the first match wins, because markers can overlap in a single name:
//
//  1. no UVs: record missing-uv and keep going with a neutral substitute
//  2. glass marker: shared glass (UVs not needed)
//  3. screen marker: video with UVs, otherwise a black screen
//  4. zone key: zone texture with UVs, otherwise fall through
//  5. anything else: white fallback, recorded as unclassified
func (c *Classifier) Classify(name string, hasUV bool) Result {
	var res Result
	if !hasUV {
		res.Diagnostics = append(res.Diagnostics, Diagnostic{Kind: DiagMissingUV, Mesh: name})
	}

	res.Binding = c.bind(name, hasUV, &res)
	res.Interactive = strings.Contains(name, c.markers.Interactive)
	res.Animated = res.Binding.Kind() == KindStaticZone && strings.Contains(name, c.markers.Fan)
	return res
}

func (c *Classifier) bind(name string, hasUV bool, res *Result) Binding {
	if strings.Contains(name, c.markers.Glass) {
		return Glass{Material: c.glass}
	}

	if strings.Contains(name, c.markers.Screen) {
		if hasUV {
			return VideoScreen{Video: c.video}
		}
		return BlankScreen{Color: black}
	}

	if key, ok := c.MatchZone(name); ok && hasUV {
		if tex, ok := c.textures.Lookup(key); ok {
			return StaticZone{Zone: key, Texture: tex, MinFilter: texture.FilterLinear}
		}
		res.Diagnostics = append(res.Diagnostics, Diagnostic{Kind: DiagTextureUnavailable, Mesh: name, Zone: key})
		return Fallback{Color: white}
	}

	res.Diagnostics = append(res.Diagnostics, Diagnostic{Kind: DiagUnclassified, Mesh: name})
	return Fallback{Color: white}
}

// MatchZone returns the first zone whose key the name contains.
func (c *Classifier) MatchZone(name string) (texture.ZoneKey, bool) {
	for _, z := range c.zones {
		if strings.Contains(name, string(z.Key)) {
			return z.Key, true
		}
	}
	return "", false
}
