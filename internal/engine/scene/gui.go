package scene

import (
	"github.com/Faultbox/lowpoly/internal/engine/gpu"
	"github.com/Faultbox/lowpoly/internal/engine/model"
	"github.com/Faultbox/lowpoly/internal/engine/shader"
	"github.com/Faultbox/lowpoly/pkg/math"
)

// GUITexture is a textured quad placed in normalized device coordinates.
type GUITexture struct {
	Texture  model.Texture
	Position math.Vec2
	Scale    math.Vec2
}

var guiQuad = []float32{-1, 1, -1, -1, 1, 1, 1, -1}

// GUIRenderer draws overlay quads on top of the scene.
type GUIRenderer struct {
	device gpu.Device
	shader *shader.GUIShader
	quad   *model.RawMesh
}

// NewGUIRenderer uploads the shared quad and compiles the overlay program.
func NewGUIRenderer(device gpu.Device, loader *model.Loader, src shader.Sources) (*GUIRenderer, error) {
	quad, err := loader.LoadPositions(guiQuad, 2)
	if err != nil {
		return nil, err
	}
	s, err := shader.NewGUIShader(device, src)
	if err != nil {
		return nil, err
	}
	return &GUIRenderer{device: device, shader: s, quad: quad}, nil
}

// Render draws each element with alpha blending and no depth test, then
// restores the 3D state.
func (r *GUIRenderer) Render(guis []GUITexture) {
	if len(guis) == 0 {
		return
	}
	r.shader.Start()
	r.device.BindMesh(r.quad.ID, r.quad.Attribs)
	r.device.SetBlending(true)
	r.device.SetDepthTest(false)

	for _, g := range guis {
		r.device.BindTexture(0, g.Texture.Target, g.Texture.ID)
		r.shader.LoadTransformationMatrix(math.GUIMatrix(g.Position, g.Scale))
		r.device.DrawArrays(gpu.TriangleStrip, 0, r.quad.VertexCount)
	}

	r.device.SetDepthTest(true)
	r.device.SetBlending(false)
	r.device.UnbindMesh(r.quad.Attribs)
	r.shader.Stop()
}

// Reload recompiles the overlay program, keeping the old one on failure.
func (r *GUIRenderer) Reload(src shader.Sources) error {
	s, err := shader.NewGUIShader(r.device, src)
	if err != nil {
		return err
	}
	r.shader.Delete()
	r.shader = s
	return nil
}

// Destroy deletes the program.
func (r *GUIRenderer) Destroy() {
	r.shader.Delete()
}
