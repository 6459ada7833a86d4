package game

import (
	"errors"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/lowpoly/internal/engine/camera"
	"github.com/Faultbox/lowpoly/internal/engine/frame"
	"github.com/Faultbox/lowpoly/internal/engine/picking"
	"github.com/Faultbox/lowpoly/internal/engine/scene"
	"github.com/Faultbox/lowpoly/internal/game/entity"
	"github.com/Faultbox/lowpoly/internal/game/world"
	"github.com/Faultbox/lowpoly/pkg/math"
)

// Terrain picking search.
const (
	pickRange      = 600
	pickIterations = 200
)

// Ambience follows the day/night cycle. *audio.Manager satisfies it.
type Ambience interface {
	SetDayAmount(amount float64)
}

// session is the per-frame simulation and submission, independent of the
// window that presents it.
type session struct {
	world    *world.World
	renderer *scene.MasterRenderer
	camera   *camera.Camera
	picker   *picking.MousePicker
	ambience Ambience

	hover   math.Vec3
	hoverOK bool
}

// controlsFrom maps held keys to player controls: WASD or the arrows to
// move and turn, space to jump.
func controlsFrom(down func(sdl.Scancode) bool) entity.Controls {
	return entity.Controls{
		Forward:   down(sdl.SCANCODE_W) || down(sdl.SCANCODE_UP),
		Backward:  down(sdl.SCANCODE_S) || down(sdl.SCANCODE_DOWN),
		TurnLeft:  down(sdl.SCANCODE_A) || down(sdl.SCANCODE_LEFT),
		TurnRight: down(sdl.SCANCODE_D) || down(sdl.SCANCODE_RIGHT),
		Jump:      down(sdl.SCANCODE_SPACE),
	}
}

// update advances the player, camera, picker and ambience by dt.
func (s *session) update(dt float32, controls entity.Controls, mouse camera.MouseState, cursorX, cursorY float32, surface frame.Surface) error {
	player := s.world.Player
	player.Move(dt, controls, s.world.Terrain)
	s.camera.Update(player.Position(), player.Rotation().Y, mouse)

	err := s.picker.Update(s.camera.ViewMatrix(), cursorX, cursorY, surface)
	switch {
	case errors.Is(err, picking.ErrEmptySurface):
		// minimized
		s.hoverOK = false
	case err != nil:
		return err
	default:
		s.hover, s.hoverOK = picking.TerrainPoint(s.picker.PickRay(), s.world.Terrain, pickRange, pickIterations)
	}

	if s.ambience != nil {
		s.ambience.SetDayAmount(float64(s.renderer.Skybox().DayAmount()))
	}
	return nil
}

// draw submits the world and renders one frame.
func (s *session) draw(dt float32) {
	s.world.Submit(s.renderer)
	s.renderer.Render(s.world.Lights, s.camera, dt)
}

// resize propagates a new surface size to the projection and picker.
func (s *session) resize(width, height int) error {
	p, err := s.renderer.Resize(width, height)
	if err != nil {
		return err
	}
	return s.picker.SetProjection(p)
}
