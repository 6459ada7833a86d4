package math

import (
	"fmt"
	"math"
)

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * (math.Pi / 180)
}

// Degrees converts radians to degrees.
func Degrees(rad float32) float32 {
	return rad * (180 / math.Pi)
}

// ModelMatrix builds translate * rotX * rotY * rotZ * scale. Rotations are in
// degrees and compose around the already rotated local axes.
func ModelMatrix(translation Vec3, rx, ry, rz, scale float32) Mat4 {
	return Identity().
		Mul(TranslateVec(translation)).
		Mul(RotateX(Radians(rx))).
		Mul(RotateY(Radians(ry))).
		Mul(RotateZ(Radians(rz))).
		Mul(Scale(scale, scale, scale))
}

// ViewMatrix builds the world-to-eye transform for a camera at position with
// the given pitch, yaw and roll in degrees. Orientation is applied before the
// camera is moved to the origin.
func ViewMatrix(position Vec3, pitch, yaw, roll float32) Mat4 {
	return Identity().
		Mul(RotateX(Radians(pitch))).
		Mul(RotateY(Radians(yaw))).
		Mul(RotateZ(Radians(roll))).
		Mul(TranslateVec(position.Negate()))
}

// ProjectionMatrix returns a perspective matrix for a vertical field of view
// in degrees. A fov outside (0, 180), a zero aspect ratio or near == far
// yields ErrInvalidFrustum.
func ProjectionMatrix(fovDeg, aspect, near, far float32) (Mat4, error) {
	if fovDeg <= 0 || fovDeg >= 180 {
		return Mat4{}, fmt.Errorf("fov %.2f: %w", fovDeg, ErrInvalidFrustum)
	}
	if aspect == 0 {
		return Mat4{}, fmt.Errorf("aspect 0: %w", ErrInvalidFrustum)
	}
	if near == far {
		return Mat4{}, fmt.Errorf("near == far (%.2f): %w", near, ErrInvalidFrustum)
	}
	return Perspective(Radians(fovDeg), aspect, near, far), nil
}

// GUIMatrix positions a unit quad in normalized device coordinates.
func GUIMatrix(translation, scale Vec2) Mat4 {
	return Translate(translation.X, translation.Y, 0).Mul(Scale(scale.X, scale.Y, 1))
}
