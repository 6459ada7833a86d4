package shader

import (
	"github.com/Faultbox/lowpoly/internal/engine/gpu"
	"github.com/Faultbox/lowpoly/pkg/math"
)

// GUIShader draws unlit textured quads in screen space.
type GUIShader struct {
	*Program
}

// NewGUIShader compiles the GUI program.
func NewGUIShader(device gpu.Device, src Sources) (*GUIShader, error) {
	p, err := Compile(device, src, GUIProgram, positionOnly)
	if err != nil {
		return nil, err
	}
	return &GUIShader{Program: p}, nil
}

func (s *GUIShader) LoadTransformationMatrix(m math.Mat4) {
	s.LoadMatrix("transformationMatrix", m)
}
