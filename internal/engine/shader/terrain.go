package shader

import (
	"github.com/Faultbox/lowpoly/internal/engine/gpu"
	"github.com/Faultbox/lowpoly/pkg/math"
)

// Texture units the terrain samplers read from.
const (
	TerrainUnitBackground = 0
	TerrainUnitR          = 1
	TerrainUnitG          = 2
	TerrainUnitB          = 3
	TerrainUnitBlendMap   = 4
)

// TerrainShader blends four tiled textures by a blend map.
type TerrainShader struct {
	*Program
}

// NewTerrainShader compiles the terrain program.
func NewTerrainShader(device gpu.Device, src Sources) (*TerrainShader, error) {
	p, err := Compile(device, src, TerrainProgram, meshAttribs)
	if err != nil {
		return nil, err
	}
	return &TerrainShader{Program: p}, nil
}

// ConnectTextureUnits assigns each sampler its unit. The program must be started.
func (s *TerrainShader) ConnectTextureUnits() {
	s.LoadInt("backgroundTexture", TerrainUnitBackground)
	s.LoadInt("rTexture", TerrainUnitR)
	s.LoadInt("gTexture", TerrainUnitG)
	s.LoadInt("bTexture", TerrainUnitB)
	s.LoadInt("blendMap", TerrainUnitBlendMap)
}

func (s *TerrainShader) LoadModelMatrix(m math.Mat4) {
	s.LoadMatrix("modelMatrix", m)
}

func (s *TerrainShader) LoadProjectionMatrix(m math.Mat4) {
	s.LoadMatrix("projectionMatrix", m)
}

func (s *TerrainShader) LoadViewMatrix(m math.Mat4) {
	s.LoadMatrix("viewMatrix", m)
}

func (s *TerrainShader) LoadSkyColor(c math.Vec3) {
	s.LoadVec3("skyColor", c)
}

func (s *TerrainShader) LoadShineVariables(damper, reflectivity float32) {
	s.LoadFloat("shineDamper", damper)
	s.LoadFloat("reflectivity", reflectivity)
}
