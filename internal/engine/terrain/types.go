// Package terrain builds heightmap terrain tiles and answers height queries
// against them.
package terrain

import (
	"errors"

	"github.com/Faultbox/lowpoly/internal/engine/model"
	"github.com/Faultbox/lowpoly/pkg/formats"
)

// Tile dimensions.
const (
	Size      = 800 // world units along each side of a tile
	MaxHeight = 40
	// MaxPixelColor is the number of distinct packed RGB values.
	MaxPixelColor = 256 * 256 * 256
)

var (
	ErrNotSquare = errors.New("heightmap is not square")
	ErrTooSmall  = errors.New("heightmap must be at least 2x2")
)

// MeshUploader turns mesh data into a GPU mesh. *model.Loader satisfies it.
type MeshUploader interface {
	LoadMesh(data *formats.ModelData) (*model.RawMesh, error)
}

// HeightSampler answers terrain height queries in world space.
type HeightSampler interface {
	HeightAt(worldX, worldZ float32) float32
}
