// Package frame carries the per-frame context the renderer, camera and
// picker need: the time step and the drawable surface.
package frame

import "time"

// Surface is anything with a drawable size in pixels.
type Surface interface {
	Size() (width, height int)
}

// Clock measures the wall-clock time between successive ticks.
type Clock struct {
	now  func() time.Time
	last time.Time
}

// NewClock returns a clock started at the current time.
func NewClock() *Clock {
	return NewClockWith(time.Now)
}

// NewClockWith returns a clock reading time from now.
func NewClockWith(now func() time.Time) *Clock {
	return &Clock{now: now, last: now()}
}

// Tick returns the seconds elapsed since the previous tick (or since the
// clock was created) and starts the next interval.
func (c *Clock) Tick() float32 {
	t := c.now()
	dt := t.Sub(c.last).Seconds()
	c.last = t
	return float32(dt)
}

// Aspect returns width/height of a surface, or 1 when it has no height.
func Aspect(s Surface) float32 {
	w, h := s.Size()
	if h == 0 {
		return 1
	}
	return float32(w) / float32(h)
}
