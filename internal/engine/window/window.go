// Package window handles SDL2 window and OpenGL context creation.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/portfolio-room/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title         string
	Width         int
	Height        int
	Fullscreen    bool
	VSync         bool
	MaxPixelRatio float32
}

// Cursor identifies a system cursor shape.
type Cursor int

const (
	CursorArrow Cursor = iota
	CursorHand
)

// Window wraps SDL2 window and OpenGL context.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext
	log       *zap.Logger

	cursors map[Cursor]*sdl.Cursor
	cursor  Cursor
}

// New creates a new window with OpenGL context.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config:  cfg,
		log:     logger.Named("window"),
		cursors: make(map[Cursor]*sdl.Cursor, 2),
	}

	// Initialize SDL2
	w.log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// We want OpenGL 4.1 Core Profile (max supported on macOS)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	// VSync paces the frame loop: SwapBuffers blocks until the next refresh.
	if cfg.VSync {
		if err := sdl.GLSetSwapInterval(1); err != nil {
			w.log.Warn("failed to enable VSync", zap.Error(err))
		}
	} else {
		sdl.GLSetSwapInterval(0)
	}

	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	w.log.Info("closing window")

	for _, c := range w.cursors {
		sdl.FreeCursor(c)
	}
	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// SwapBuffers swaps the OpenGL buffers.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// GetSize returns the current window size in screen coordinates.
func (w *Window) GetSize() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// DrawableSize returns the framebuffer size with the pixel ratio capped at
// MaxPixelRatio.
func (w *Window) DrawableSize() (int, int) {
	width, height := w.GetSize()
	dw, _ := w.sdlWindow.GLGetDrawableSize()
	return ScaledSize(width, height, int(dw), w.config.MaxPixelRatio)
}

// ScaledSize applies a pixel ratio derived from the drawable width, capped
// at maxRatio (no cap when maxRatio <= 0).
func ScaledSize(width, height, drawableWidth int, maxRatio float32) (int, int) {
	if width <= 0 {
		return width, height
	}
	ratio := float32(drawableWidth) / float32(width)
	if maxRatio > 0 && ratio > maxRatio {
		ratio = maxRatio
	}
	if ratio <= 0 {
		ratio = 1
	}
	return int(float32(width) * ratio), int(float32(height) * ratio)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}

// SetCursor switches to a system cursor. Unchanged shapes are skipped.
func (w *Window) SetCursor(c Cursor) {
	if c == w.cursor && w.cursors[c] != nil {
		return
	}
	cur, ok := w.cursors[c]
	if !ok {
		id := sdl.SystemCursor(sdl.SYSTEM_CURSOR_ARROW)
		if c == CursorHand {
			id = sdl.SystemCursor(sdl.SYSTEM_CURSOR_HAND)
		}
		cur = sdl.CreateSystemCursor(id)
		w.cursors[c] = cur
	}
	sdl.SetCursor(cur)
	w.cursor = c
}
