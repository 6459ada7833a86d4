package terrain

import (
	"fmt"
	"image"

	"github.com/Faultbox/lowpoly/internal/engine/model"
	"github.com/Faultbox/lowpoly/pkg/math"
)

// Terrain is one heightmap tile with its GPU mesh and blend textures.
type Terrain struct {
	*Heightfield

	mesh     *model.RawMesh
	textures model.TerrainTexturePack
	blendMap model.Texture
}

// New builds the tile at grid (gridX, gridZ) from a square heightmap and
// uploads its mesh.
func New(gridX, gridZ int, heightmap image.Image, pack model.TerrainTexturePack, blendMap model.Texture, loader MeshUploader) (*Terrain, error) {
	field, err := NewHeightfield(gridX, gridZ, heightmap)
	if err != nil {
		return nil, fmt.Errorf("building terrain (%d,%d): %w", gridX, gridZ, err)
	}

	mesh, err := loader.LoadMesh(field.BuildMesh())
	if err != nil {
		return nil, fmt.Errorf("uploading terrain (%d,%d): %w", gridX, gridZ, err)
	}

	return &Terrain{
		Heightfield: field,
		mesh:        mesh,
		textures:    pack,
		blendMap:    blendMap,
	}, nil
}

// Mesh returns the uploaded grid mesh.
func (t *Terrain) Mesh() *model.RawMesh { return t.mesh }

// Textures returns the four blended layers.
func (t *Terrain) Textures() model.TerrainTexturePack { return t.textures }

// BlendMap returns the texture that weights the layers.
func (t *Terrain) BlendMap() model.Texture { return t.blendMap }

// ModelMatrix places the tile at its world origin.
func (t *Terrain) ModelMatrix() math.Mat4 {
	x, z := t.Origin()
	return math.Translate(x, 0, z)
}
