// Package room drives the per-frame loop of the portfolio room: camera
// controls, fan animation, pointer hit testing, cursor feedback, click
// dispatch and rendering.
package room

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Faultbox/portfolio-room/internal/engine/picking"
	"github.com/Faultbox/portfolio-room/internal/loader"
	"github.com/Faultbox/portfolio-room/internal/modal"
	"github.com/Faultbox/portfolio-room/internal/scene"
	"github.com/Faultbox/portfolio-room/pkg/math"
)

// ErrQuit is returned by a Scheduler when the host wants the loop to end.
var ErrQuit = errors.New("quit requested")

// Controls is the camera the scene is drawn and ray cast from, with a
// per-frame update step.
type Controls interface {
	Tick()
	ViewProjection() math.Mat4
}

// Renderer draws a graph with a view-projection matrix.
type Renderer interface {
	Render(g *scene.Graph, viewProj math.Mat4)
}

// Cursor is the pointer style shown over the viewport.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPointer
)

// String returns the cursor name.
func (c Cursor) String() string {
	if c == CursorPointer {
		return "pointer"
	}
	return "default"
}

// CursorSetter applies a cursor style.
type CursorSetter interface {
	SetCursor(c Cursor)
}

// Scheduler blocks until the next display refresh.
type Scheduler interface {
	WaitFrame(ctx context.Context) error
}

// Options configure a Coordinator.
type Options struct {
	Scene    *scene.Context
	Tracker  *picking.Tracker
	Controls Controls
	Renderer Renderer
	Cursor   CursorSetter
	Modals   modal.Controller
	Rules    modal.Table

	// Pending is attached to Scene on the first tick after it completes.
	// Nil when Scene is already populated.
	Pending *loader.Pending

	FanStep         float32 // Radians per tick
	ClickableMarker string

	Logger *zap.Logger
}

// Coordinator runs one frame at a time. Tick and Click must be called from
// the loop goroutine; Stop may be called from anywhere.
type Coordinator struct {
	opts  Options
	log   *zap.Logger
	empty *scene.Graph

	frames   atomic.Uint64
	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a coordinator.
func New(opts Options) *Coordinator {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Coordinator{
		opts:  opts,
		log:   log,
		empty: scene.NewGraph(),
		stop:  make(chan struct{}),
	}
}

// Tick advances one frame: attach a finished load, update controls,
// animate fans, evaluate hits, update the cursor, render.
func (c *Coordinator) Tick() {
	c.attachPending()

	c.opts.Controls.Tick()

	for _, n := range c.opts.Scene.Animated() {
		n.Rotate(c.opts.FanStep)
	}

	hits := c.opts.Tracker.Evaluate(c.opts.Controls)

	if c.opts.Cursor != nil {
		if hits.NearestContains(c.opts.ClickableMarker) {
			c.opts.Cursor.SetCursor(CursorPointer)
		} else {
			c.opts.Cursor.SetCursor(CursorDefault)
		}
	}

	g := c.opts.Scene.Graph()
	if g == nil {
		g = c.empty
	}
	c.opts.Renderer.Render(g, c.opts.Controls.ViewProjection())

	c.frames.Add(1)
}

func (c *Coordinator) attachPending() {
	p := c.opts.Pending
	if p == nil || !p.Poll() {
		return
	}
	c.opts.Pending = nil

	res, err := p.Result()
	if err != nil {
		// The loader already logged the cause; keep showing the empty room.
		return
	}
	if err := res.Attach(c.opts.Scene); err != nil {
		c.log.Error("failed to attach room scene", zap.Error(err))
		return
	}
	c.log.Info("room scene attached",
		zap.Uint64("frame", c.frames.Load()),
		zap.Int("interactive", len(res.Interactive)),
		zap.Int("animated", len(res.Animated)))
}

// Click dispatches a click using the hits of the last evaluated frame.
// The nearest hit is matched against the modal rules in order.
func (c *Coordinator) Click() {
	hit, ok := c.opts.Tracker.Last().Nearest()
	if !ok {
		return
	}
	id, ok := c.opts.Rules.Match(hit.Node.Name)
	if !ok {
		c.log.Debug("click without modal", zap.String("mesh", hit.Node.Name))
		return
	}
	c.opts.Modals.Show(id)
}

// Frames returns the number of completed ticks.
func (c *Coordinator) Frames() uint64 {
	return c.frames.Load()
}

// Stop ends Run after the current frame. It is safe to call more than once.
func (c *Coordinator) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// Run ticks once per scheduled frame until Stop is called, ctx is done or
// the scheduler reports ErrQuit. Other scheduler errors are returned.
func (c *Coordinator) Run(ctx context.Context, sched Scheduler) error {
	c.log.Info("frame loop started")
	defer func() {
		c.log.Info("frame loop stopped", zap.Uint64("frames", c.frames.Load()))
	}()

	for {
		if c.stopped(ctx) {
			return nil
		}
		if err := sched.WaitFrame(ctx); err != nil {
			if errors.Is(err, ErrQuit) || ctx.Err() != nil {
				return nil
			}
			return err
		}
		if c.stopped(ctx) {
			return nil
		}
		c.Tick()
	}
}

func (c *Coordinator) stopped(ctx context.Context) bool {
	select {
	case <-c.stop:
		return true
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
