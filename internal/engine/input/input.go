// Package input turns SDL2 events into per-frame keyboard and mouse state.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/lowpoly/internal/engine/camera"
)

// Event types for game use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
}

// Input accumulates keyboard and mouse state across events. Held keys and
// buttons persist between frames; motion and wheel are per frame.
type Input struct {
	events []Event
	keys   map[sdl.Scancode]bool

	left, right   bool
	cursorX       float32
	cursorY       float32
	dx, dy, wheel float32
	quit          bool
	resized       bool
	width, height int
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
		keys:   make(map[sdl.Scancode]bool),
	}
}

// Update starts a new frame, drains the SDL event queue and reports
// whether the user asked to quit.
func (i *Input) Update() bool {
	i.BeginFrame()
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		i.Handle(event)
	}
	return i.quit
}

// BeginFrame clears the per-frame deltas and events.
func (i *Input) BeginFrame() {
	i.events = i.events[:0]
	i.dx, i.dy, i.wheel = 0, 0, 0
	i.resized = false
}

// Handle folds one SDL event into the current state.
func (i *Input) Handle(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.quit = true
		i.events = append(i.events, Event{Type: EventQuit})

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			i.resized = true
			i.width, i.height = int(e.Data1), int(e.Data2)
			i.events = append(i.events, Event{
				Type:   EventWindowResize,
				Width:  i.width,
				Height: i.height,
			})
		}

	case *sdl.KeyboardEvent:
		sc := e.Keysym.Scancode
		switch e.Type {
		case sdl.KEYDOWN:
			i.keys[sc] = true
			if e.Repeat == 0 {
				i.events = append(i.events, Event{Type: EventKeyDown, Key: sc})
			}
		case sdl.KEYUP:
			i.keys[sc] = false
			i.events = append(i.events, Event{Type: EventKeyUp, Key: sc})
		}

	case *sdl.MouseMotionEvent:
		i.cursorX, i.cursorY = float32(e.X), float32(e.Y)
		i.dx += float32(e.XRel)
		i.dy += float32(e.YRel)

	case *sdl.MouseButtonEvent:
		down := e.Type == sdl.MOUSEBUTTONDOWN
		switch e.Button {
		case sdl.BUTTON_LEFT:
			i.left = down
		case sdl.BUTTON_RIGHT:
			i.right = down
		}
		i.cursorX, i.cursorY = float32(e.X), float32(e.Y)

	case *sdl.MouseWheelEvent:
		y := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			y = -y
		}
		i.wheel += y
	}
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Quit reports whether a quit event has been seen.
func (i *Input) Quit() bool {
	return i.quit
}

// KeyDown reports whether a key is currently held.
func (i *Input) KeyDown(sc sdl.Scancode) bool {
	return i.keys[sc]
}

// IsKeyPressed checks if a specific key went down this frame.
func (i *Input) IsKeyPressed(sc sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == sc {
			return true
		}
	}
	return false
}

// Mouse returns this frame's mouse movement for the camera.
func (i *Input) Mouse() camera.MouseState {
	return camera.MouseState{
		DX:        i.dx,
		DY:        i.dy,
		Wheel:     i.wheel,
		OrbitHeld: i.left,
		PitchHeld: i.right,
	}
}

// Cursor returns the last known cursor position, origin top-left.
func (i *Input) Cursor() (x, y float32) {
	return i.cursorX, i.cursorY
}

// Resized returns the new window size if it changed this frame.
func (i *Input) Resized() (width, height int, ok bool) {
	return i.width, i.height, i.resized
}
