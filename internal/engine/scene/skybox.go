package scene

import (
	stdmath "math"

	"github.com/Faultbox/lowpoly/internal/engine/gpu"
	"github.com/Faultbox/lowpoly/internal/engine/model"
	"github.com/Faultbox/lowpoly/internal/engine/shader"
	"github.com/Faultbox/lowpoly/pkg/math"
)

const (
	// SkyboxSize is the half-extent of the sky cube.
	SkyboxSize = 500
	// DayLength is the length of one day/night cycle in seconds.
	DayLength = 240
	// SkyboxRotateSpeed is how fast the sky turns about Y, in degrees per second.
	SkyboxRotateSpeed = 1
)

// Cycle boundaries, in seconds into the day.
const (
	dawnStart = 50
	dawnEnd   = 80
	duskStart = 210
)

var skyboxVertices = []float32{
	-SkyboxSize, SkyboxSize, -SkyboxSize,
	-SkyboxSize, -SkyboxSize, -SkyboxSize,
	SkyboxSize, -SkyboxSize, -SkyboxSize,
	SkyboxSize, -SkyboxSize, -SkyboxSize,
	SkyboxSize, SkyboxSize, -SkyboxSize,
	-SkyboxSize, SkyboxSize, -SkyboxSize,

	-SkyboxSize, -SkyboxSize, SkyboxSize,
	-SkyboxSize, -SkyboxSize, -SkyboxSize,
	-SkyboxSize, SkyboxSize, -SkyboxSize,
	-SkyboxSize, SkyboxSize, -SkyboxSize,
	-SkyboxSize, SkyboxSize, SkyboxSize,
	-SkyboxSize, -SkyboxSize, SkyboxSize,

	SkyboxSize, -SkyboxSize, -SkyboxSize,
	SkyboxSize, -SkyboxSize, SkyboxSize,
	SkyboxSize, SkyboxSize, SkyboxSize,
	SkyboxSize, SkyboxSize, SkyboxSize,
	SkyboxSize, SkyboxSize, -SkyboxSize,
	SkyboxSize, -SkyboxSize, -SkyboxSize,

	-SkyboxSize, -SkyboxSize, SkyboxSize,
	-SkyboxSize, SkyboxSize, SkyboxSize,
	SkyboxSize, SkyboxSize, SkyboxSize,
	SkyboxSize, SkyboxSize, SkyboxSize,
	SkyboxSize, -SkyboxSize, SkyboxSize,
	-SkyboxSize, -SkyboxSize, SkyboxSize,

	-SkyboxSize, SkyboxSize, -SkyboxSize,
	SkyboxSize, SkyboxSize, -SkyboxSize,
	SkyboxSize, SkyboxSize, SkyboxSize,
	SkyboxSize, SkyboxSize, SkyboxSize,
	-SkyboxSize, SkyboxSize, SkyboxSize,
	-SkyboxSize, SkyboxSize, -SkyboxSize,

	-SkyboxSize, -SkyboxSize, -SkyboxSize,
	-SkyboxSize, -SkyboxSize, SkyboxSize,
	SkyboxSize, -SkyboxSize, -SkyboxSize,
	SkyboxSize, -SkyboxSize, -SkyboxSize,
	-SkyboxSize, -SkyboxSize, SkyboxSize,
	SkyboxSize, -SkyboxSize, SkyboxSize,
}

// SkyPhase says which cubemaps are mixed at a point in the cycle and how far
// the mix has progressed from the first towards the second.
type SkyPhase struct {
	FromDay, ToDay bool
	Factor         float32
}

// PhaseAt returns the sky phase t seconds into the cycle. t wraps.
//
//	[0, 50)    night, night
//	[50, 80)   night fading to day
//	[80, 210)  day, day
//	[210, 240) day fading to night
func PhaseAt(t float32) SkyPhase {
	t = wrapCycle(t)
	switch {
	case t < dawnStart:
		return SkyPhase{Factor: t / dawnStart}
	case t < dawnEnd:
		return SkyPhase{ToDay: true, Factor: (t - dawnStart) / (dawnEnd - dawnStart)}
	case t < duskStart:
		return SkyPhase{FromDay: true, ToDay: true, Factor: (t - dawnEnd) / (duskStart - dawnEnd)}
	default:
		return SkyPhase{FromDay: true, Factor: (t - duskStart) / (DayLength - duskStart)}
	}
}

// DayAmount is how much daylight the phase shows, in [0, 1].
func (p SkyPhase) DayAmount() float32 {
	return math.Lerp(dayValue(p.FromDay), dayValue(p.ToDay), p.Factor)
}

// BlendFactor returns the visible day amount t seconds into the cycle: 0 at
// night, 1 at day, ramping linearly through dawn and dusk. It is continuous
// across segment boundaries and the wrap at DayLength.
func BlendFactor(t float32) float32 {
	return PhaseAt(t).DayAmount()
}

func dayValue(day bool) float32 {
	if day {
		return 1
	}
	return 0
}

func wrapCycle(t float32) float32 {
	t = float32(stdmath.Mod(float64(t), DayLength))
	if t < 0 {
		t += DayLength
	}
	return t
}

// SkyboxRenderer draws the sky cube and advances the day/night clock.
type SkyboxRenderer struct {
	device   gpu.Device
	shader   *shader.SkyboxShader
	cube     *model.RawMesh
	day      model.Texture
	night    model.Texture
	time     float32
	rotation float32
}

// NewSkyboxRenderer uploads the cube and compiles the sky program.
func NewSkyboxRenderer(device gpu.Device, loader *model.Loader, src shader.Sources, projection math.Mat4, sky Skyboxes) (*SkyboxRenderer, error) {
	cube, err := loader.LoadPositions(skyboxVertices, 3)
	if err != nil {
		return nil, err
	}
	s, err := shader.NewSkyboxShader(device, src)
	if err != nil {
		return nil, err
	}
	r := &SkyboxRenderer{
		device: device,
		cube:   cube,
		day:    sky.Day,
		night:  sky.Night,
	}
	r.setShader(s, projection)
	return r, nil
}

func (r *SkyboxRenderer) setShader(s *shader.SkyboxShader, projection math.Mat4) {
	r.shader = s
	r.shader.Start()
	r.shader.ConnectTextureUnits()
	r.shader.LoadProjectionMatrix(projection)
	r.shader.Stop()
}

// SetProjection uploads a new projection matrix.
func (r *SkyboxRenderer) SetProjection(projection math.Mat4) {
	r.shader.Start()
	r.shader.LoadProjectionMatrix(projection)
	r.shader.Stop()
}

// Time returns the seconds into the current cycle.
func (r *SkyboxRenderer) Time() float32 { return r.time }

// SetTime jumps the clock to t seconds into the cycle.
func (r *SkyboxRenderer) SetTime(t float32) { r.time = wrapCycle(t) }

// DayAmount returns the current visible day amount.
func (r *SkyboxRenderer) DayAmount() float32 { return BlendFactor(r.time) }

// Render advances the clock by dt and draws the cube around the camera.
func (r *SkyboxRenderer) Render(view math.Mat4, fog math.Vec3, dt float32) {
	r.time = wrapCycle(r.time + dt)
	r.rotation = float32(stdmath.Mod(float64(r.rotation+SkyboxRotateSpeed*dt), 360))

	r.shader.Start()
	r.shader.LoadViewMatrix(r.skyView(view))
	r.shader.LoadFogColor(fog)

	r.device.BindMesh(r.cube.ID, r.cube.Attribs)
	r.bindTextures()
	r.device.DrawArrays(gpu.Triangles, 0, r.cube.VertexCount)
	r.device.UnbindMesh(r.cube.Attribs)

	r.shader.Stop()
}

// skyView keeps the camera's orientation but not its position, so the cube
// never gets closer.
func (r *SkyboxRenderer) skyView(view math.Mat4) math.Mat4 {
	return view.WithoutTranslation().Mul(math.RotateY(math.Radians(r.rotation)))
}

func (r *SkyboxRenderer) bindTextures() {
	phase := PhaseAt(r.time)
	r.device.BindTexture(0, gpu.TextureCubeMap, r.cubemap(phase.FromDay).ID)
	r.device.BindTexture(1, gpu.TextureCubeMap, r.cubemap(phase.ToDay).ID)
	r.shader.LoadBlendFactor(phase.Factor)
}

func (r *SkyboxRenderer) cubemap(day bool) model.Texture {
	if day {
		return r.day
	}
	return r.night
}

// Reload recompiles the sky program, keeping the old one on failure.
func (r *SkyboxRenderer) Reload(src shader.Sources, projection math.Mat4) error {
	s, err := shader.NewSkyboxShader(r.device, src)
	if err != nil {
		return err
	}
	r.shader.Delete()
	r.setShader(s, projection)
	return nil
}

// Destroy deletes the program. The cube and cubemaps belong to the loader.
func (r *SkyboxRenderer) Destroy() {
	r.shader.Delete()
}
