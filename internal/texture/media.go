package texture

// Video is a looping, muted video texture shared by every screen mesh.
// Playback itself belongs to the host; the viewer only describes it.
type Video struct {
	Path        string
	Loop        bool
	Muted       bool
	Autoplay    bool
	PlaysInline bool
	FlipY       bool
	ColorSpace  ColorSpace
}

// NewVideo describes a screen video with the room's playback settings.
func NewVideo(path string) *Video {
	return &Video{
		Path:        path,
		Loop:        true,
		Muted:       true,
		Autoplay:    true,
		PlaysInline: true,
		FlipY:       true,
		ColorSpace:  ColorSpaceSRGB,
	}
}

// CubeMap is an environment map used for glass reflections.
type CubeMap struct {
	Dir   string
	Faces [6]*Handle // px, nx, py, ny, pz, nz
}

// Ready reports whether all six faces decoded successfully.
func (c *CubeMap) Ready() bool {
	for _, f := range c.Faces {
		if f == nil || f.State() != StateReady {
			return false
		}
	}
	return true
}
