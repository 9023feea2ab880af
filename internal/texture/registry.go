package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"path"
	"sync"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	"github.com/h2non/filetype/types"
	"go.uber.org/zap"
	"golang.org/x/image/webp"
)

// Registry errors.
var (
	ErrUnknownZone = errors.New("unknown zone key")
	ErrNotImage    = errors.New("file is not a supported image")
	ErrVideoFile   = errors.New("file is a video, not an image")
)

// decoders maps sniffed image types to their decoder.
var decoders = map[types.Type]func(io.Reader) (image.Image, error){
	matchers.TypePng:  png.Decode,
	matchers.TypeJpeg: jpeg.Decode,
	matchers.TypeWebp: webp.Decode,
}

// Registry resolves zone keys to texture handles. Each key is decoded at
// most once; later calls return the same handle.
type Registry struct {
	fsys  fs.FS
	zones []Zone
	log   *zap.Logger

	mu      sync.Mutex
	handles map[ZoneKey]*Handle
	wg      sync.WaitGroup
}

// NewRegistry creates a registry reading texture files from fsys.
// zones is kept in order; it is the match order for mesh names.
func NewRegistry(fsys fs.FS, zones []Zone, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		fsys:    fsys,
		zones:   append([]Zone(nil), zones...),
		log:     log,
		handles: make(map[ZoneKey]*Handle, len(zones)),
	}
}

// Zones returns the zone table in match order.
func (r *Registry) Zones() []Zone {
	return r.zones
}

// Load returns the handle for key, starting its decode on first use.
// Decode failures do not surface here: the handle is returned anyway and
// keeps showing the placeholder.
func (r *Registry) Load(key ZoneKey) (*Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.handles[key]; ok {
		return h, nil
	}

	for _, z := range r.zones {
		if z.Key == key {
			h := newHandle(key, z.Path)
			r.handles[key] = h
			r.decodeAsync(h)
			return h, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownZone, key)
}

// LoadAll starts loading every zone texture.
func (r *Registry) LoadAll() {
	for _, z := range r.zones {
		// Keys come from the table itself, so Load cannot fail here.
		_, _ = r.Load(z.Key)
	}
}

// Lookup returns an already loaded handle without side effects.
func (r *Registry) Lookup(key ZoneKey) (*Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.handles[key]
	return h, ok
}

// LoadCube starts loading an environment cube map from dir. faces must be
// ordered px, nx, py, ny, pz, nz.
func (r *Registry) LoadCube(dir string, faces []string) (*CubeMap, error) {
	if len(faces) != 6 {
		return nil, fmt.Errorf("cube map needs 6 faces, got %d", len(faces))
	}
	cube := &CubeMap{Dir: dir}
	for i, f := range faces {
		h := newHandle("", path.Join(dir, f))
		cube.Faces[i] = h
		r.decodeAsync(h)
	}
	return cube, nil
}

// Wait blocks until every started decode has finished.
func (r *Registry) Wait() {
	r.wg.Wait()
}

func (r *Registry) decodeAsync(h *Handle) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		img, err := r.decode(h.Path)
		if err != nil {
			r.log.Warn("texture load failed, keeping placeholder",
				zap.String("zone", string(h.Key)),
				zap.String("path", h.Path),
				zap.Error(err),
			)
		} else {
			r.log.Debug("texture loaded",
				zap.String("zone", string(h.Key)),
				zap.String("path", h.Path),
				zap.Int("width", img.Bounds().Dx()),
				zap.Int("height", img.Bounds().Dy()),
			)
		}
		h.finish(img, err)
	}()
}

func (r *Registry) decode(name string) (image.Image, error) {
	data, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	kind, _ := filetype.Match(data)
	if filetype.IsVideo(data) {
		return nil, fmt.Errorf("%s (%s): %w", name, kind.MIME.Value, ErrVideoFile)
	}
	decode, ok := decoders[kind]
	if !ok {
		return nil, fmt.Errorf("%s (%s): %w", name, kindName(kind), ErrNotImage)
	}

	img, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s as %s: %w", name, kind.Extension, err)
	}
	return img, nil
}

func kindName(kind types.Type) string {
	if kind == types.Unknown {
		return "unknown type"
	}
	return kind.MIME.Value
}
