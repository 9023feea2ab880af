package viewer

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/portfolio-room/internal/engine/input"
	"github.com/Faultbox/portfolio-room/internal/modal"
)

// clickSlop is how far the pointer may travel between press and release
// for the release to still count as a click rather than an orbit drag.
const clickSlop = 4

type pointerMover interface {
	Move(x, y, width, height float32)
}

type orbiter interface {
	HandleDrag(deltaX, deltaY float32)
	HandleZoom(delta float32)
	Resize(width, height int)
}

type clicker interface {
	Click()
}

type modalCloser interface {
	Visible() modal.ID
	HideVisible()
}

// dispatcher routes input events to the pointer tracker, camera, frame
// coordinator and modals.
type dispatcher struct {
	pointer pointerMover
	orbit   orbiter
	click   clicker
	modals  modalCloser

	// size returns the window size in the coordinates mouse events use.
	size func() (int, int)
	// resize is called with the new window size.
	resize func(width, height int)
	// capture saves a screenshot; nil disables F12.
	capture func()

	pressed        bool
	pressX, pressY int
}

// handle processes one event. It reports whether the viewer should quit.
func (d *dispatcher) handle(ev input.Event) bool {
	switch ev.Type {
	case input.EventQuit:
		return true

	case input.EventWindowResize:
		d.orbit.Resize(ev.Width, ev.Height)
		if d.resize != nil {
			d.resize(ev.Width, ev.Height)
		}

	case input.EventKeyDown:
		switch ev.Key {
		case sdl.SCANCODE_ESCAPE:
			// Escape closes the open modal first, then the viewer.
			if d.modals.Visible() == "" {
				return true
			}
			d.modals.HideVisible()
		case sdl.SCANCODE_F12:
			if d.capture != nil {
				d.capture()
			}
		}

	case input.EventMouseMove:
		w, h := d.size()
		d.pointer.Move(float32(ev.MouseX), float32(ev.MouseY), float32(w), float32(h))
		if ev.Held {
			d.orbit.HandleDrag(float32(ev.RelX), float32(ev.RelY))
		}

	case input.EventMouseDown:
		if ev.Button == sdl.BUTTON_LEFT {
			d.pressed = true
			d.pressX, d.pressY = ev.MouseX, ev.MouseY
		}

	case input.EventMouseUp:
		if ev.Button == sdl.BUTTON_LEFT && d.pressed {
			d.pressed = false
			if abs(ev.MouseX-d.pressX) <= clickSlop && abs(ev.MouseY-d.pressY) <= clickSlop {
				d.click.Click()
			}
		}

	case input.EventMouseWheel:
		d.orbit.HandleZoom(ev.WheelY)
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
