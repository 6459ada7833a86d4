package scene

import (
	"github.com/Faultbox/lowpoly/internal/engine/gpu"
	"github.com/Faultbox/lowpoly/internal/engine/shader"
	"github.com/Faultbox/lowpoly/pkg/math"
)

// EntityRenderer draws batched entities. The caller starts the shader and
// uploads per-frame uniforms before Render.
type EntityRenderer struct {
	device gpu.Device
	shader *shader.EntityShader
}

// NewEntityRenderer uploads the projection once.
func NewEntityRenderer(device gpu.Device, s *shader.EntityShader, projection math.Mat4) *EntityRenderer {
	r := &EntityRenderer{device: device}
	r.SetShader(s, projection)
	return r
}

// SetShader switches to a (recompiled) program and loads its projection.
func (r *EntityRenderer) SetShader(s *shader.EntityShader, projection math.Mat4) {
	r.shader = s
	r.SetProjection(projection)
}

// SetProjection uploads a new projection matrix.
func (r *EntityRenderer) SetProjection(projection math.Mat4) {
	r.shader.Start()
	r.shader.LoadProjectionMatrix(projection)
	r.shader.Stop()
}

// Render binds each batch's mesh and material once and issues one draw
// per instance.
func (r *EntityRenderer) Render(batches []*Batch) {
	for _, b := range batches {
		r.prepare(b)
		for _, inst := range b.Instances {
			r.shader.LoadTransformationMatrix(inst.ModelMatrix())
			r.shader.LoadOffset(inst.AtlasOffset())
			r.device.DrawElements(gpu.Triangles, b.Mesh.VertexCount)
		}
		r.unbind(b)
	}
}

func (r *EntityRenderer) prepare(b *Batch) {
	r.device.BindMesh(b.Mesh.ID, b.Mesh.Attribs)

	mat := b.Material
	if mat.HasTransparency {
		r.device.SetCulling(false)
	}
	r.shader.LoadNumberOfRows(mat.Rows())
	r.shader.LoadFakeLighting(mat.UseFakeLighting)
	r.shader.LoadShineVariables(mat.ShineDamper, mat.Reflectivity)
	r.device.BindTexture(0, mat.Texture.Target, mat.Texture.ID)
}

func (r *EntityRenderer) unbind(b *Batch) {
	if b.Material.HasTransparency {
		r.device.SetCulling(true)
	}
	r.device.UnbindMesh(b.Mesh.Attribs)
}
