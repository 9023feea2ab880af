package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/portfolio-room/internal/config"
	"github.com/Faultbox/portfolio-room/internal/engine/input"
	"github.com/Faultbox/portfolio-room/internal/modal"
)

type recorder struct {
	moves   [][4]float32
	drags   [][2]float32
	zooms   []float32
	resizes [][2]int
	clicks  int
	visible modal.ID
	hides   int
}

func (r *recorder) Move(x, y, w, h float32)   { r.moves = append(r.moves, [4]float32{x, y, w, h}) }
func (r *recorder) HandleDrag(dx, dy float32) { r.drags = append(r.drags, [2]float32{dx, dy}) }
func (r *recorder) HandleZoom(d float32)      { r.zooms = append(r.zooms, d) }
func (r *recorder) Resize(w, h int)           { r.resizes = append(r.resizes, [2]int{w, h}) }
func (r *recorder) Click()                    { r.clicks++ }
func (r *recorder) Visible() modal.ID         { return r.visible }
func (r *recorder) HideVisible()              { r.hides++; r.visible = "" }

func newDispatcher(r *recorder) *dispatcher {
	return &dispatcher{
		pointer: r,
		orbit:   r,
		click:   r,
		modals:  r,
		size:    func() (int, int) { return 800, 600 },
	}
}

func TestDispatchPointerMove(t *testing.T) {
	r := &recorder{}
	d := newDispatcher(r)

	d.handle(input.Event{Type: input.EventMouseMove, MouseX: 10, MouseY: 20, RelX: 3, RelY: 4})
	assert.Equal(t, [][4]float32{{10, 20, 800, 600}}, r.moves)
	assert.Empty(t, r.drags, "hover does not orbit")

	d.handle(input.Event{Type: input.EventMouseMove, MouseX: 13, MouseY: 24, RelX: 3, RelY: 4, Held: true})
	assert.Equal(t, [][2]float32{{3, 4}}, r.drags)
}

func TestDispatchClickVersusDrag(t *testing.T) {
	r := &recorder{}
	d := newDispatcher(r)

	d.handle(input.Event{Type: input.EventMouseDown, Button: sdl.BUTTON_LEFT, MouseX: 100, MouseY: 100})
	d.handle(input.Event{Type: input.EventMouseUp, Button: sdl.BUTTON_LEFT, MouseX: 102, MouseY: 99})
	assert.Equal(t, 1, r.clicks)

	d.handle(input.Event{Type: input.EventMouseDown, Button: sdl.BUTTON_LEFT, MouseX: 100, MouseY: 100})
	d.handle(input.Event{Type: input.EventMouseUp, Button: sdl.BUTTON_LEFT, MouseX: 180, MouseY: 100})
	assert.Equal(t, 1, r.clicks, "a drag is not a click")

	d.handle(input.Event{Type: input.EventMouseUp, Button: sdl.BUTTON_LEFT, MouseX: 180, MouseY: 100})
	assert.Equal(t, 1, r.clicks, "release without press")

	d.handle(input.Event{Type: input.EventMouseDown, Button: sdl.BUTTON_RIGHT})
	d.handle(input.Event{Type: input.EventMouseUp, Button: sdl.BUTTON_RIGHT})
	assert.Equal(t, 1, r.clicks, "right button does not click")
}

func TestDispatchEscape(t *testing.T) {
	r := &recorder{visible: "projects"}
	d := newDispatcher(r)
	esc := input.Event{Type: input.EventKeyDown, Key: sdl.SCANCODE_ESCAPE}

	assert.False(t, d.handle(esc), "first escape closes the modal")
	assert.Equal(t, 1, r.hides)
	assert.True(t, d.handle(esc), "second escape quits")
}

func TestDispatchScreenshotKey(t *testing.T) {
	r := &recorder{}
	d := newDispatcher(r)
	f12 := input.Event{Type: input.EventKeyDown, Key: sdl.SCANCODE_F12}

	assert.False(t, d.handle(f12), "no capture hook is a no-op")

	captures := 0
	d.capture = func() { captures++ }
	assert.False(t, d.handle(f12))
	assert.Equal(t, 1, captures)
}

func TestDispatchResizeAndZoom(t *testing.T) {
	r := &recorder{}
	d := newDispatcher(r)
	var viewport [2]int
	d.resize = func(w, h int) { viewport = [2]int{w, h} }

	d.handle(input.Event{Type: input.EventWindowResize, Width: 1024, Height: 768})
	d.handle(input.Event{Type: input.EventMouseWheel, WheelY: 1})

	assert.Equal(t, [][2]int{{1024, 768}}, r.resizes)
	assert.Equal(t, [2]int{1024, 768}, viewport)
	assert.Equal(t, []float32{1}, r.zooms)
	assert.True(t, d.handle(input.Event{Type: input.EventQuit}))
}

func TestModalRules(t *testing.T) {
	rules := modalRules(config.Default().Modals)
	id, ok := rules.Match("Projects_Raycaster_Pointer")
	assert.True(t, ok)
	assert.Equal(t, modal.ID("projects"), id)
}

func TestWindowTitle(t *testing.T) {
	assert.Equal(t, "Portfolio Room", windowTitle("Portfolio Room", ""))
	assert.Equal(t, "Portfolio Room - about", windowTitle("Portfolio Room", "about"))
}
