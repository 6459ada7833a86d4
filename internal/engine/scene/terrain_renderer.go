package scene

import (
	"github.com/Faultbox/lowpoly/internal/engine/gpu"
	"github.com/Faultbox/lowpoly/internal/engine/shader"
	"github.com/Faultbox/lowpoly/internal/engine/terrain"
	"github.com/Faultbox/lowpoly/pkg/math"
)

// Terrain is matte: a damper of one with no reflectivity.
const (
	terrainShineDamper  = 1
	terrainReflectivity = 0
)

// TerrainRenderer draws terrain tiles with their four blended layers.
type TerrainRenderer struct {
	device gpu.Device
	shader *shader.TerrainShader
}

// NewTerrainRenderer connects the sampler units and uploads the projection.
func NewTerrainRenderer(device gpu.Device, s *shader.TerrainShader, projection math.Mat4) *TerrainRenderer {
	r := &TerrainRenderer{device: device}
	r.SetShader(s, projection)
	return r
}

// SetShader switches to a (recompiled) program.
func (r *TerrainRenderer) SetShader(s *shader.TerrainShader, projection math.Mat4) {
	r.shader = s
	r.shader.Start()
	r.shader.ConnectTextureUnits()
	r.shader.Stop()
	r.SetProjection(projection)
}

// SetProjection uploads a new projection matrix.
func (r *TerrainRenderer) SetProjection(projection math.Mat4) {
	r.shader.Start()
	r.shader.LoadProjectionMatrix(projection)
	r.shader.Stop()
}

// Render draws each tile at its grid origin.
func (r *TerrainRenderer) Render(tiles []*terrain.Terrain) {
	for _, t := range tiles {
		mesh := t.Mesh()
		r.device.BindMesh(mesh.ID, mesh.Attribs)
		r.bindTextures(t)
		r.shader.LoadShineVariables(terrainShineDamper, terrainReflectivity)
		r.shader.LoadModelMatrix(t.ModelMatrix())
		r.device.DrawElements(gpu.Triangles, mesh.VertexCount)
		r.device.UnbindMesh(mesh.Attribs)
	}
}

func (r *TerrainRenderer) bindTextures(t *terrain.Terrain) {
	pack := t.Textures()
	blend := t.BlendMap()
	r.device.BindTexture(shader.TerrainUnitBackground, pack.Background.Target, pack.Background.ID)
	r.device.BindTexture(shader.TerrainUnitR, pack.R.Target, pack.R.ID)
	r.device.BindTexture(shader.TerrainUnitG, pack.G.Target, pack.G.ID)
	r.device.BindTexture(shader.TerrainUnitB, pack.B.Target, pack.B.ID)
	r.device.BindTexture(shader.TerrainUnitBlendMap, blend.Target, blend.ID)
}
