// Package camera provides the orbit camera that follows the player.
package camera

import (
	gomath "math"

	"github.com/Faultbox/lowpoly/internal/config"
	"github.com/Faultbox/lowpoly/pkg/math"
)

// MouseState is the pointer input sampled once per frame.
type MouseState struct {
	DX, DY float32 // pixels moved since the previous frame
	Wheel  float32 // scroll notches since the previous frame, positive away from the user

	OrbitHeld bool // left button
	PitchHeld bool // right button
}

// Camera orbits a tracked target. Position and orientation are derived
// every frame from the target and the accumulated pitch, distance and angle.
type Camera struct {
	position         math.Vec3
	pitch, yaw, roll float32 // degrees

	distance float32
	angle    float32 // degrees around the target, added to its yaw

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	OrbitSensitivity float32 // degrees per pixel
	PitchSensitivity float32 // degrees per pixel
	ZoomSensitivity  float32 // units per wheel notch
}

// New creates a camera with the default framing: 10 units away, pitched
// 10 degrees down, directly behind the target.
func New() *Camera {
	return &Camera{
		pitch:            10,
		distance:         10,
		MinDistance:      10,
		MaxDistance:      50,
		MinPitch:         10,
		MaxPitch:         80,
		OrbitSensitivity: 0.1,
		PitchSensitivity: 0.1,
		ZoomSensitivity:  1.1,
	}
}

// NewFromConfig creates a camera with sensitivities taken from cfg.
func NewFromConfig(cfg config.CameraConfig) *Camera {
	c := New()
	if cfg.OrbitSensitivity > 0 {
		c.OrbitSensitivity = cfg.OrbitSensitivity
	}
	if cfg.PitchSensitivity > 0 {
		c.PitchSensitivity = cfg.PitchSensitivity
	}
	if cfg.ZoomSensitivity > 0 {
		c.ZoomSensitivity = cfg.ZoomSensitivity
	}
	return c
}

// Update applies this frame's mouse input and repositions the camera
// behind target, which faces targetYaw degrees.
func (c *Camera) Update(target math.Vec3, targetYaw float32, mouse MouseState) {
	if mouse.OrbitHeld {
		c.orbit(mouse.DX)
	}
	if mouse.PitchHeld {
		c.tilt(mouse.DY)
	}
	c.zoom(mouse.Wheel)

	pitch := float64(math.Radians(c.pitch))
	horizontal := c.distance * float32(gomath.Cos(pitch))
	vertical := c.distance * float32(gomath.Sin(pitch))

	theta := targetYaw + c.angle
	rad := float64(math.Radians(theta))
	offsetX := horizontal * float32(gomath.Sin(rad))
	offsetZ := horizontal * float32(gomath.Cos(rad))

	c.position = math.Vec3{
		X: target.X - offsetX,
		Y: target.Y + vertical,
		Z: target.Z - offsetZ,
	}
	c.yaw = 180 - theta
}

func (c *Camera) zoom(wheel float32) {
	c.distance = math.Clamp(c.distance-wheel*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

func (c *Camera) tilt(dy float32) {
	c.pitch = math.Clamp(c.pitch-dy*c.PitchSensitivity, c.MinPitch, c.MaxPitch)
}

func (c *Camera) orbit(dx float32) {
	c.angle = float32(gomath.Mod(float64(c.angle-dx*c.OrbitSensitivity), 360))
}

// Position returns the camera position in world space.
func (c *Camera) Position() math.Vec3 { return c.position }

// Pitch returns the downward tilt in degrees.
func (c *Camera) Pitch() float32 { return c.pitch }

// Yaw returns the heading in degrees.
func (c *Camera) Yaw() float32 { return c.yaw }

// Roll returns the roll in degrees.
func (c *Camera) Roll() float32 { return c.roll }

// Distance returns the distance to the target.
func (c *Camera) Distance() float32 { return c.distance }

// Angle returns the orbit angle around the target in degrees.
func (c *Camera) Angle() float32 { return c.angle }

// ViewMatrix returns the world-to-eye transform.
func (c *Camera) ViewMatrix() math.Mat4 {
	return math.ViewMatrix(c.position, c.pitch, c.yaw, c.roll)
}
