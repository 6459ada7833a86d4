package picking

import (
	"errors"
	"fmt"

	"github.com/Faultbox/lowpoly/internal/engine/frame"
	"github.com/Faultbox/lowpoly/pkg/math"
)

// ErrEmptySurface is returned when the surface has no drawable area.
var ErrEmptySurface = errors.New("surface has zero size")

// MousePicker unprojects the cursor into a world-space direction once per
// frame. Consumers poll CurrentRay.
type MousePicker struct {
	invProjection math.Mat4
	origin        math.Vec3
	ray           math.Vec3
}

// NewMousePicker inverts the projection up front.
func NewMousePicker(projection math.Mat4) (*MousePicker, error) {
	p := &MousePicker{}
	if err := p.SetProjection(projection); err != nil {
		return nil, err
	}
	return p, nil
}

// SetProjection replaces the projection, e.g. after a resize.
func (p *MousePicker) SetProjection(projection math.Mat4) error {
	inv, err := projection.Inverse()
	if err != nil {
		return fmt.Errorf("inverting projection: %w", err)
	}
	p.invProjection = inv
	return nil
}

// Update recomputes the ray for a cursor at pixel (cursorX, cursorY),
// measured from the top-left corner of surface.
func (p *MousePicker) Update(view math.Mat4, cursorX, cursorY float32, surface frame.Surface) error {
	w, h := surface.Size()
	if w <= 0 || h <= 0 {
		return ErrEmptySurface
	}

	invView, err := view.Inverse()
	if err != nil {
		return fmt.Errorf("inverting view: %w", err)
	}

	// Pixel to normalized device coordinates, Y up.
	ndcX := 2*cursorX/float32(w) - 1
	ndcY := 1 - 2*cursorY/float32(h)

	clip := math.Vec4{X: ndcX, Y: ndcY, Z: -1, W: 1}
	eye := p.invProjection.MulVec4(clip)
	eye = math.Vec4{X: eye.X, Y: eye.Y, Z: -1, W: 0}

	world, err := invView.MulVec4(eye).XYZ().Normalize()
	if err != nil {
		return fmt.Errorf("normalizing pick ray: %w", err)
	}

	p.ray = world
	p.origin = invView.Translation()
	return nil
}

// CurrentRay returns the unit world-space direction under the cursor.
func (p *MousePicker) CurrentRay() math.Vec3 {
	return p.ray
}

// PickRay returns the current ray starting at the camera.
func (p *MousePicker) PickRay() Ray {
	return Ray{Origin: p.origin, Direction: p.ray}
}
