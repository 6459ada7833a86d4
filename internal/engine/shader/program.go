// Package shader defines the shader programs the renderers drive and the
// uniforms each one expects.
package shader

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/lowpoly/internal/engine/gpu"
	"github.com/Faultbox/lowpoly/internal/engine/lighting"
	"github.com/Faultbox/lowpoly/internal/logger"
	"github.com/Faultbox/lowpoly/pkg/math"
)

// Attribute names bound to the mesh attribute locations.
var (
	meshAttribs = map[uint32]string{
		0: "position",
		1: "textureCoordinates",
		2: "normal",
	}
	positionOnly = map[uint32]string{
		0: "position",
	}
)

// Program is a linked shader program plus a cache of its uniform locations.
// Concrete shaders embed it and add typed loaders for their uniforms.
type Program struct {
	device    gpu.Device
	id        gpu.ProgramID
	name      string
	locations map[string]int32
	log       *zap.Logger
}

// Compile builds the named program from src. Attribute names are bound to
// their locations before linking.
func Compile(device gpu.Device, src Sources, name string, attribs map[uint32]string) (*Program, error) {
	vert, frag, err := src.Load(name)
	if err != nil {
		return nil, err
	}

	id, err := device.CreateProgram(vert, frag, attribs)
	if err != nil {
		return nil, fmt.Errorf("compiling %s shader: %w", name, err)
	}

	return &Program{
		device:    device,
		id:        id,
		name:      name,
		locations: make(map[string]int32),
		log:       logger.Named("shader").With(zap.String("program", name)),
	}, nil
}

// ID returns the GPU handle.
func (p *Program) ID() gpu.ProgramID { return p.id }

// Name returns the source name the program was compiled from.
func (p *Program) Name() string { return p.name }

// Start makes the program current.
func (p *Program) Start() { p.device.UseProgram(p.id) }

// Stop unbinds any program.
func (p *Program) Stop() { p.device.UseProgram(0) }

// Delete releases the program.
func (p *Program) Delete() {
	p.device.DeleteProgram(p.id)
}

// Location returns the cached location of a uniform. A uniform the program
// does not use resolves to -1, which makes uploads to it no-ops; this is
// logged once.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := p.device.UniformLocation(p.id, name)
	if loc < 0 {
		p.log.Debug("uniform not found", zap.String("uniform", name))
	}
	p.locations[name] = loc
	return loc
}

// LoadFloat uploads a float uniform.
func (p *Program) LoadFloat(name string, v float32) {
	p.device.Uniform1f(p.Location(name), v)
}

// LoadInt uploads an int uniform, typically a sampler unit.
func (p *Program) LoadInt(name string, v int) {
	p.device.Uniform1i(p.Location(name), int32(v))
}

// LoadBool uploads a bool as a float of 1 or 0.
func (p *Program) LoadBool(name string, v bool) {
	var f float32
	if v {
		f = 1
	}
	p.device.Uniform1f(p.Location(name), f)
}

// LoadVec2 uploads a vec2 uniform.
func (p *Program) LoadVec2(name string, v math.Vec2) {
	p.device.Uniform2f(p.Location(name), v.X, v.Y)
}

// LoadVec3 uploads a vec3 uniform.
func (p *Program) LoadVec3(name string, v math.Vec3) {
	p.device.Uniform3f(p.Location(name), v.X, v.Y, v.Z)
}

// LoadMatrix uploads a mat4 uniform.
func (p *Program) LoadMatrix(name string, m math.Mat4) {
	p.device.UniformMatrix4(p.Location(name), m.Floats())
}

// lightUniforms holds the pre-formatted array element names.
var lightUniforms = func() (names [lighting.MaxLights][3]string) {
	for i := range names {
		names[i] = [3]string{
			fmt.Sprintf("lightPosition[%d]", i),
			fmt.Sprintf("lightColor[%d]", i),
			fmt.Sprintf("attenuation[%d]", i),
		}
	}
	return names
}()

// LoadLights uploads every light slot. Slots beyond len(lights) get a black,
// unattenuated placeholder.
func (p *Program) LoadLights(lights []lighting.Light) {
	for i, l := range lighting.Slots(lights) {
		p.LoadVec3(lightUniforms[i][0], l.Position)
		p.LoadVec3(lightUniforms[i][1], l.Color)
		p.LoadVec3(lightUniforms[i][2], l.Attenuation)
	}
}
