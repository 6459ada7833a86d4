package terrain

import (
	"fmt"
	"image"
	gomath "math"

	"github.com/Faultbox/lowpoly/internal/engine/texture"
	"github.com/Faultbox/lowpoly/pkg/math"
)

// PixelHeight maps a packed, signed ARGB pixel to a height. The pixel is
// shifted by half the color range and scaled so that the range spans
// [-MaxHeight, MaxHeight]. Only grayscale inputs give meaningful results.
func PixelHeight(argb int32) float32 {
	half := float32(MaxPixelColor / 2)
	h := float32(argb)
	h += half
	h /= half
	return h * MaxHeight
}

// Heightfield is an immutable grid of heights anchored at a world origin.
// heights[x][z] is the height of the vertex at column x, row z.
type Heightfield struct {
	originX, originZ float32
	heights          [][]float32
}

// NewHeightfield reads a square heightmap for the tile at grid (gridX, gridZ).
func NewHeightfield(gridX, gridZ int, heightmap image.Image) (*Heightfield, error) {
	heights, err := ReadHeights(heightmap)
	if err != nil {
		return nil, err
	}
	return &Heightfield{
		originX: float32(gridX) * Size,
		originZ: float32(gridZ) * Size,
		heights: heights,
	}, nil
}

// ReadHeights converts every pixel of a square heightmap to a height.
func ReadHeights(heightmap image.Image) ([][]float32, error) {
	b := heightmap.Bounds()
	if b.Dx() != b.Dy() {
		return nil, fmt.Errorf("reading heights (%dx%d): %w", b.Dx(), b.Dy(), ErrNotSquare)
	}
	n := b.Dx()
	if n < 2 {
		return nil, fmt.Errorf("reading heights (%dx%d): %w", n, n, ErrTooSmall)
	}

	heights := make([][]float32, n)
	for x := range n {
		heights[x] = make([]float32, n)
		for z := range n {
			heights[x][z] = PixelHeight(texture.PackedARGB(heightmap, x, z))
		}
	}
	return heights, nil
}

// Origin returns the world position of the tile's (0, 0) corner.
func (h *Heightfield) Origin() (x, z float32) {
	return h.originX, h.originZ
}

// VertexCount returns the number of vertices along one side.
func (h *Heightfield) VertexCount() int {
	return len(h.heights)
}

// Heights returns a copy of the height grid.
func (h *Heightfield) Heights() [][]float32 {
	out := make([][]float32, len(h.heights))
	for x, col := range h.heights {
		out[x] = append([]float32(nil), col...)
	}
	return out
}

// heightAtVertex returns the stored height, or 0 outside the grid.
func (h *Heightfield) heightAtVertex(x, z int) float32 {
	if x < 0 || z < 0 || x >= len(h.heights) || z >= len(h.heights) {
		return 0
	}
	return h.heights[x][z]
}

// HeightAt returns the interpolated terrain height under a world position.
// Positions outside the tile return 0.
func (h *Heightfield) HeightAt(worldX, worldZ float32) float32 {
	terrainX := worldX - h.originX
	terrainZ := worldZ - h.originZ

	cells := len(h.heights) - 1
	cellSize := float32(Size) / float32(cells)
	gridX := int(gomath.Floor(float64(terrainX / cellSize)))
	gridZ := int(gomath.Floor(float64(terrainZ / cellSize)))
	if gridX < 0 || gridZ < 0 || gridX >= cells || gridZ >= cells {
		return 0
	}

	xc := (terrainX - float32(gridX)*cellSize) / cellSize
	zc := (terrainZ - float32(gridZ)*cellSize) / cellSize
	pos := math.Vec2{X: xc, Y: zc}

	// The cell diagonal runs from (1,0) to (0,1).
	if xc <= 1-zc {
		return BarycentricHeight(
			math.Vec3{X: 0, Y: h.heights[gridX][gridZ], Z: 0},
			math.Vec3{X: 1, Y: h.heights[gridX+1][gridZ], Z: 0},
			math.Vec3{X: 0, Y: h.heights[gridX][gridZ+1], Z: 1},
			pos)
	}
	return BarycentricHeight(
		math.Vec3{X: 1, Y: h.heights[gridX+1][gridZ], Z: 0},
		math.Vec3{X: 1, Y: h.heights[gridX+1][gridZ+1], Z: 1},
		math.Vec3{X: 0, Y: h.heights[gridX][gridZ+1], Z: 1},
		pos)
}

// BarycentricHeight interpolates the Y of triangle p1 p2 p3 at pos, where
// pos.X and pos.Y are coordinates on the triangle's XZ plane.
func BarycentricHeight(p1, p2, p3 math.Vec3, pos math.Vec2) float32 {
	det := (p2.Z-p3.Z)*(p1.X-p3.X) + (p3.X-p2.X)*(p1.Z-p3.Z)
	l1 := ((p2.Z-p3.Z)*(pos.X-p3.X) + (p3.X-p2.X)*(pos.Y-p3.Z)) / det
	l2 := ((p3.Z-p1.Z)*(pos.X-p3.X) + (p1.X-p3.X)*(pos.Y-p3.Z)) / det
	l3 := 1 - l1 - l2
	return l1*p1.Y + l2*p2.Y + l3*p3.Y
}
