package model

import "github.com/Faultbox/lowpoly/internal/engine/gpu"

// RawMesh is geometry resident on the GPU. It is created by a Loader and
// never changes afterwards.
type RawMesh struct {
	ID          gpu.MeshID
	VertexCount int
	// Attribs is how many vertex attribute streams the mesh binds.
	Attribs int
}

// Texture is a GPU texture handle plus its binding target.
type Texture struct {
	ID     gpu.TextureID
	Target gpu.Target
}

// Material describes how a textured mesh is shaded. It is filled in during
// asset setup and only read while rendering.
type Material struct {
	Texture         Texture
	ShineDamper     float32
	Reflectivity    float32
	HasTransparency bool
	UseFakeLighting bool
	AtlasRows       int
}

// NewMaterial returns a material with the default shading: no specular
// highlight and a single-cell atlas.
func NewMaterial(tex Texture) *Material {
	return &Material{
		Texture:     tex,
		ShineDamper: 1,
		AtlasRows:   1,
	}
}

// Rows returns the atlas row count, treating zero as one.
func (m *Material) Rows() int {
	if m.AtlasRows < 1 {
		return 1
	}
	return m.AtlasRows
}

// TexturedModel pairs a mesh with the material it is drawn with.
// Pointer identity of the pair is what the renderer batches on.
type TexturedModel struct {
	Mesh     *RawMesh
	Material *Material
}

// TerrainTexturePack holds the four layers a blend map mixes.
type TerrainTexturePack struct {
	Background Texture
	R, G, B    Texture
}
