// Package viewer hosts the portfolio room in an SDL2 window: it builds the
// texture registry, starts the asset load and drives the frame coordinator
// from the display refresh.
package viewer

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/portfolio-room/internal/assets"
	"github.com/Faultbox/portfolio-room/internal/config"
	"github.com/Faultbox/portfolio-room/internal/engine/camera"
	"github.com/Faultbox/portfolio-room/internal/engine/debug"
	"github.com/Faultbox/portfolio-room/internal/engine/input"
	"github.com/Faultbox/portfolio-room/internal/engine/picking"
	"github.com/Faultbox/portfolio-room/internal/engine/renderer"
	"github.com/Faultbox/portfolio-room/internal/engine/window"
	"github.com/Faultbox/portfolio-room/internal/loader"
	"github.com/Faultbox/portfolio-room/internal/logger"
	"github.com/Faultbox/portfolio-room/internal/material"
	"github.com/Faultbox/portfolio-room/internal/modal"
	"github.com/Faultbox/portfolio-room/internal/room"
	"github.com/Faultbox/portfolio-room/internal/scene"
	"github.com/Faultbox/portfolio-room/internal/texture"
	"github.com/Faultbox/portfolio-room/pkg/math"
)

// Viewer is the running room viewer.
type Viewer struct {
	cfg *config.Config
	log *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	shots    *debug.Screenshots

	assets   *assets.Store
	textures *texture.Registry
	scene    *scene.Context
	camera   *camera.OrbitCamera
	tracker  *picking.Tracker
	modals   *modal.Tracker
	coord    *room.Coordinator
	events   *dispatcher

	// FPS counter
	frameCount int
	fpsTimer   time.Time
}

// New creates the window and renderer and starts loading the room asset in
// the background. The load is bound to ctx.
func New(ctx context.Context, cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:      cfg,
		log:      logger.Named("viewer"),
		fpsTimer: time.Now(),
	}

	v.log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	// Create window (this also creates OpenGL context)
	var err error
	v.window, err = window.New(window.Config{
		Title:         cfg.Window.Title,
		Width:         cfg.Window.Width,
		Height:        cfg.Window.Height,
		Fullscreen:    cfg.Window.Fullscreen,
		VSync:         cfg.Window.VSync,
		MaxPixelRatio: cfg.Window.MaxPixelRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	dw, dh := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{Width: dw, Height: dh})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New()

	pending := v.startLoad(ctx)
	v.setupCamera()

	v.tracker = picking.NewTracker(v.scene)
	v.modals = modal.NewTracker(logger.Named("modal"))
	v.modals.OnChange = func(id modal.ID) {
		v.window.SetTitle(windowTitle(cfg.Window.Title, id))
	}

	v.coord = room.New(room.Options{
		Scene:           v.scene,
		Tracker:         v.tracker,
		Controls:        v.camera,
		Renderer:        v.renderer,
		Cursor:          cursorAdapter{v.window},
		Modals:          v.modals,
		Rules:           modalRules(cfg.Modals),
		Pending:         pending,
		FanStep:         cfg.Animation.FanStep,
		ClickableMarker: cfg.Markers.Clickable,
		Logger:          logger.Named("room"),
	})

	v.events = &dispatcher{
		pointer: v.tracker,
		orbit:   v.camera,
		click:   v.coord,
		modals:  v.modals,
		size:    v.window.GetSize,
		resize: func(int, int) {
			v.renderer.Resize(v.window.DrawableSize())
		},
	}
	if cfg.Debug.ScreenshotDir != "" {
		v.shots = debug.NewScreenshots(cfg.Debug.ScreenshotDir, "room")
		v.events.capture = v.screenshot
	}

	v.log.Info("viewer initialized successfully")
	return v, nil
}

// startLoad builds the texture registry and material classifier and kicks
// off the asset load.
func (v *Viewer) startLoad(ctx context.Context) *loader.Pending {
	cfg := v.cfg
	v.assets = assets.NewStore(os.DirFS(cfg.Scene.AssetRoot))
	if cfg.Scene.OverrideRoot != "" {
		v.assets.AddRoot(os.DirFS(cfg.Scene.OverrideRoot))
		v.log.Info("asset override enabled", zap.String("root", cfg.Scene.OverrideRoot))
	}

	zones := make([]texture.Zone, len(cfg.Scene.Zones))
	for i, z := range cfg.Scene.Zones {
		zones[i] = texture.Zone{Key: texture.ZoneKey(z.Key), Path: z.Path}
	}

	v.textures = texture.NewRegistry(v.assets, zones, logger.Named("texture"))
	v.textures.LoadAll()

	env, err := v.textures.LoadCube(cfg.Scene.SkyboxDir, cfg.Scene.SkyboxFaces)
	if err != nil {
		v.log.Warn("environment map unavailable, glass renders without reflections", zap.Error(err))
	}

	classifier := material.NewClassifier(
		material.Markers{
			Glass:       cfg.Markers.Glass,
			Screen:      cfg.Markers.Screen,
			Interactive: cfg.Markers.Interactive,
			Fan:         cfg.Markers.Fan,
		},
		zones,
		v.textures,
		material.NewGlassMaterial(env),
		texture.NewVideo(cfg.Scene.VideoPath),
	)

	v.scene = scene.NewContext()
	source := loader.GLTFSource{FS: v.assets, Log: logger.Named("gltf")}
	ld := loader.New(source, classifier, logger.Named("loader"))
	ld.FanAxis = vec3(cfg.Animation.FanAxis)
	return ld.Start(ctx, cfg.Scene.ModelPath)
}

func (v *Viewer) setupCamera() {
	c := v.cfg.Camera
	v.camera = camera.NewOrbitCamera()
	v.camera.SetFOVDegrees(c.FOV)
	v.camera.Near = c.Near
	v.camera.Far = c.Far
	v.camera.Damping = c.Damping
	v.camera.LookFrom(vec3(c.Position), vec3(c.Target))
	v.camera.Resize(v.window.GetSize())
}

// Run drives the frame loop until the window closes or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	return v.coord.Run(ctx, v)
}

// Stop ends the frame loop after the current frame.
func (v *Viewer) Stop() {
	v.coord.Stop()
}

// WaitFrame presents the previous frame, blocking until the display
// refresh when VSync is on, then processes pending input.
func (v *Viewer) WaitFrame(ctx context.Context) error {
	v.window.SwapBuffers()

	if err := ctx.Err(); err != nil {
		return err
	}

	quit := v.input.Update()
	for _, ev := range v.input.Events() {
		if v.events.handle(ev) {
			quit = true
		}
	}
	if quit {
		return room.ErrQuit
	}

	v.frameCount++
	if time.Since(v.fpsTimer) >= time.Second {
		v.log.Debug("fps", zap.Int("count", v.frameCount), zap.Bool("scene_ready", v.scene.Ready()))
		v.frameCount = 0
		v.fpsTimer = time.Now()
	}
	return nil
}

// screenshot saves the last rendered frame.
func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	if len(pixels) == 0 {
		return
	}
	path, err := v.shots.SavePixels(pixels, w, h)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	if v.assets != nil {
		hits, misses := v.assets.Stats()
		v.log.Info("closing viewer", zap.Int("asset_cache_hits", hits), zap.Int("asset_cache_misses", misses))
	}

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

// cursorAdapter maps coordinator cursor styles to system cursors.
type cursorAdapter struct {
	w *window.Window
}

func (a cursorAdapter) SetCursor(c room.Cursor) {
	if c == room.CursorPointer {
		a.w.SetCursor(window.CursorHand)
		return
	}
	a.w.SetCursor(window.CursorArrow)
}

func modalRules(rules []config.ModalRule) modal.Table {
	t := make(modal.Table, len(rules))
	for i, r := range rules {
		t[i] = modal.Rule{Marker: r.Marker, Modal: modal.ID(r.Modal)}
	}
	return t
}

func windowTitle(base string, visible modal.ID) string {
	if visible == "" {
		return base
	}
	return fmt.Sprintf("%s - %s", base, visible)
}

func vec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
