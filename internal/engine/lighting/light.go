// Package lighting provides the point lights uploaded to the lit shaders.
package lighting

import "github.com/Faultbox/lowpoly/pkg/math"

// MaxLights is the number of light slots the lit shaders declare.
const MaxLights = 4

// Light is a point light. Attenuation holds the constant, linear and
// quadratic falloff coefficients.
type Light struct {
	Position    math.Vec3
	Color       math.Vec3
	Attenuation math.Vec3
}

// NoAttenuation keeps a light at full strength at any distance.
var NoAttenuation = math.Vec3{X: 1, Y: 0, Z: 0}

// NewLight creates a light that does not fall off with distance.
func NewLight(position, color math.Vec3) Light {
	return Light{Position: position, Color: color, Attenuation: NoAttenuation}
}

// NewAttenuatedLight creates a light with the given falloff.
func NewAttenuatedLight(position, color, attenuation math.Vec3) Light {
	return Light{Position: position, Color: color, Attenuation: attenuation}
}

// placeholder fills unused slots: black, at the origin, not attenuated,
// so it contributes nothing and never divides by zero.
var placeholder = Light{Attenuation: NoAttenuation}

// Slots returns exactly MaxLights lights for upload. Extra lights are
// dropped and missing ones are padded with a placeholder.
func Slots(lights []Light) [MaxLights]Light {
	var out [MaxLights]Light
	for i := range out {
		if i < len(lights) {
			out[i] = lights[i]
		} else {
			out[i] = placeholder
		}
	}
	return out
}
