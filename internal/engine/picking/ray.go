// Package picking turns cursor positions into world-space rays and finds
// where they meet the ground.
package picking

import (
	gomath "math"

	"github.com/Faultbox/lowpoly/pkg/math"
)

// Ray is a half-line from Origin along the unit vector Direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectPlaneY intersects a ray with a horizontal plane at the given Y level.
// Returns the intersection point (X, Z) and whether the intersection is valid.
func (r Ray) IntersectPlaneY(planeY float32) (x, z float32, ok bool) {
	// Solve: Origin.Y + t * Direction.Y = planeY
	if gomath.Abs(float64(r.Direction.Y)) < 0.001 {
		return 0, 0, false // Ray parallel to plane
	}

	t := (planeY - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return 0, 0, false // Intersection behind ray origin
	}

	p := r.At(t)
	return p.X, p.Z, true
}

// HeightSampler answers ground height queries in world space.
type HeightSampler interface {
	HeightAt(worldX, worldZ float32) float32
}

// TerrainPoint finds where the ray first passes below the ground within
// maxDistance. The crossing is refined by bisection for the given number of
// iterations. It reports false when the ray starts under the ground or never
// reaches it in range.
func TerrainPoint(r Ray, ground HeightSampler, maxDistance float32, iterations int) (math.Vec3, bool) {
	if ground == nil || maxDistance <= 0 {
		return math.Vec3{}, false
	}
	if underGround(r.At(0), ground) || !underGround(r.At(maxDistance), ground) {
		return math.Vec3{}, false
	}

	lo, hi := float32(0), maxDistance
	for range iterations {
		mid := lo + (hi-lo)/2
		if underGround(r.At(mid), ground) {
			hi = mid
		} else {
			lo = mid
		}
	}

	p := r.At(lo + (hi-lo)/2)
	p.Y = ground.HeightAt(p.X, p.Z)
	return p, true
}

func underGround(p math.Vec3, ground HeightSampler) bool {
	return p.Y < ground.HeightAt(p.X, p.Z)
}
