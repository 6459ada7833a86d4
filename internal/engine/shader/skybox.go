package shader

import (
	"github.com/Faultbox/lowpoly/internal/engine/gpu"
	"github.com/Faultbox/lowpoly/pkg/math"
)

// SkyboxShader mixes two cubemaps and fades the horizon into the fog color.
type SkyboxShader struct {
	*Program
}

// NewSkyboxShader compiles the skybox program.
func NewSkyboxShader(device gpu.Device, src Sources) (*SkyboxShader, error) {
	p, err := Compile(device, src, SkyboxProgram, positionOnly)
	if err != nil {
		return nil, err
	}
	return &SkyboxShader{Program: p}, nil
}

// ConnectTextureUnits binds cubeMap1 to unit 0 and cubeMap2 to unit 1.
func (s *SkyboxShader) ConnectTextureUnits() {
	s.LoadInt("cubeMap1", 0)
	s.LoadInt("cubeMap2", 1)
}

// LoadBlendFactor sets how much of cubeMap2 shows through, in [0, 1].
func (s *SkyboxShader) LoadBlendFactor(f float32) {
	s.LoadFloat("blendFactor", f)
}

func (s *SkyboxShader) LoadFogColor(c math.Vec3) {
	s.LoadVec3("fogColor", c)
}

func (s *SkyboxShader) LoadProjectionMatrix(m math.Mat4) {
	s.LoadMatrix("projectionMatrix", m)
}

// LoadViewMatrix uploads a view matrix. The caller strips the translation.
func (s *SkyboxShader) LoadViewMatrix(m math.Mat4) {
	s.LoadMatrix("viewMatrix", m)
}
