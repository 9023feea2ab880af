// Package loader loads the room asset off the frame loop, binds a material
// to every mesh and produces the interactive and animated side lists.
package loader

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Faultbox/portfolio-room/internal/material"
	"github.com/Faultbox/portfolio-room/internal/scene"
	"github.com/Faultbox/portfolio-room/pkg/math"
)

// ErrAlreadyLoaded is returned when a loader is started a second time.
var ErrAlreadyLoaded = errors.New("room asset already loaded")

// AssetSource produces an unclassified scene graph from an asset path.
type AssetSource interface {
	LoadScene(ctx context.Context, path string) (*scene.Graph, error)
}

// Stats summarizes one classification pass.
type Stats struct {
	Nodes       int
	Meshes      int
	ByKind      map[material.Kind]int
	Diagnostics int
}

// Result is a fully classified graph ready to attach to a scene.Context.
type Result struct {
	Graph       *scene.Graph
	Interactive []*scene.Node
	Animated    []*scene.Node
	Stats       Stats
}

// Attach installs the result into ctx.
func (r *Result) Attach(ctx *scene.Context) error {
	return ctx.Attach(r.Graph, r.Interactive, r.Animated)
}

// Loader runs the asset load exactly once per instance.
type Loader struct {
	// FanAxis is the spin axis given to animated meshes. Zero keeps the
	// node default (+Y).
	FanAxis math.Vec3

	source     AssetSource
	classifier *material.Classifier
	log        *zap.Logger

	started atomic.Bool
}

// New creates a loader. A nil logger discards diagnostics.
func New(source AssetSource, classifier *material.Classifier, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{source: source, classifier: classifier, log: log}
}

// Load fetches and classifies the asset synchronously.
func (l *Loader) Load(ctx context.Context, path string) (*Result, error) {
	if !l.started.CompareAndSwap(false, true) {
		return nil, ErrAlreadyLoaded
	}

	g, err := l.source.LoadScene(ctx, path)
	if err != nil {
		l.log.Error("room asset failed to load", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("loading room: %w", err)
	}

	res := l.Classify(g)
	l.log.Info("room asset loaded",
		zap.String("path", path),
		zap.Int("nodes", res.Stats.Nodes),
		zap.Int("meshes", res.Stats.Meshes),
		zap.Int("interactive", len(res.Interactive)),
		zap.Int("animated", len(res.Animated)),
		zap.Int("diagnostics", res.Stats.Diagnostics))
	return res, nil
}

// Start runs Load in a goroutine. The returned Pending resolves exactly once.
func (l *Loader) Start(ctx context.Context, path string) *Pending {
	p := &Pending{done: make(chan struct{})}
	go func() {
		p.res, p.err = l.Load(ctx, path)
		close(p.done)
	}()
	return p
}

// Classify binds a material to every mesh of g, depth-first in native
// child order, and collects the side lists in that same order. Each
// diagnostic is logged once as a warning.
func (l *Loader) Classify(g *scene.Graph) *Result {
	res := &Result{
		Graph: g,
		Stats: Stats{ByKind: make(map[material.Kind]int)},
	}

	g.Traverse(func(n *scene.Node) {
		res.Stats.Nodes++
		if !n.IsMesh {
			return
		}
		res.Stats.Meshes++

		out := l.classifier.Classify(n.Name, n.HasUV)
		n.Binding = out.Binding
		res.Stats.ByKind[out.Binding.Kind()]++

		if out.Interactive {
			res.Interactive = append(res.Interactive, n)
		}
		if out.Animated {
			if l.FanAxis != (math.Vec3{}) {
				n.SpinAxis = l.FanAxis
			}
			res.Animated = append(res.Animated, n)
		}
		for _, d := range out.Diagnostics {
			res.Stats.Diagnostics++
			l.logDiagnostic(d)
		}
	})
	return res
}

func (l *Loader) logDiagnostic(d material.Diagnostic) {
	switch d.Kind {
	case material.DiagMissingUV:
		l.log.Warn("mesh is missing UVs", zap.String("mesh", d.Mesh))
	case material.DiagUnclassified:
		l.log.Warn("no classification found for mesh", zap.String("mesh", d.Mesh))
	case material.DiagTextureUnavailable:
		l.log.Warn("zone texture unavailable, using fallback",
			zap.String("mesh", d.Mesh), zap.String("zone", string(d.Zone)))
	}
}

// Pending is an in-flight load.
type Pending struct {
	done chan struct{}
	res  *Result
	err  error
}

// Done is closed once the load finishes.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Poll reports whether the load has finished without blocking.
func (p *Pending) Poll() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Result returns the outcome of a finished load. It must only be called
// after Poll reports true or Done is closed.
func (p *Pending) Result() (*Result, error) {
	return p.res, p.err
}

// Wait blocks until the load finishes or ctx is canceled.
func (p *Pending) Wait(ctx context.Context) (*Result, error) {
	select {
	case <-p.done:
		return p.res, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
