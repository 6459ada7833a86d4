package shader

import (
	"github.com/Faultbox/lowpoly/internal/engine/gpu"
	"github.com/Faultbox/lowpoly/pkg/math"
)

// EntityShader lights textured meshes with up to four point lights and
// fades them into the sky color with distance.
type EntityShader struct {
	*Program
}

// NewEntityShader compiles the entity program.
func NewEntityShader(device gpu.Device, src Sources) (*EntityShader, error) {
	p, err := Compile(device, src, EntityProgram, meshAttribs)
	if err != nil {
		return nil, err
	}
	return &EntityShader{Program: p}, nil
}

func (s *EntityShader) LoadTransformationMatrix(m math.Mat4) {
	s.LoadMatrix("transformationMatrix", m)
}

func (s *EntityShader) LoadProjectionMatrix(m math.Mat4) {
	s.LoadMatrix("projectionMatrix", m)
}

func (s *EntityShader) LoadViewMatrix(m math.Mat4) {
	s.LoadMatrix("viewMatrix", m)
}

func (s *EntityShader) LoadSkyColor(c math.Vec3) {
	s.LoadVec3("skyColor", c)
}

func (s *EntityShader) LoadShineVariables(damper, reflectivity float32) {
	s.LoadFloat("shineDamper", damper)
	s.LoadFloat("reflectivity", reflectivity)
}

// LoadFakeLighting points every normal straight up, for flat billboards
// like grass that would otherwise be lit from behind.
func (s *EntityShader) LoadFakeLighting(enabled bool) {
	s.LoadBool("useFakeLighting", enabled)
}

func (s *EntityShader) LoadNumberOfRows(rows int) {
	s.LoadFloat("numberOfRows", float32(rows))
}

// LoadOffset selects the atlas cell as a texture coordinate offset.
func (s *EntityShader) LoadOffset(offset math.Vec2) {
	s.LoadVec2("offset", offset)
}
