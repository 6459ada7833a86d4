package entity

import (
	gomath "math"

	"github.com/Faultbox/lowpoly/internal/engine/model"
	"github.com/Faultbox/lowpoly/pkg/math"
)

// Player movement tuning, in world units and degrees per second.
const (
	RunSpeed  = 20
	TurnSpeed = 160
	Gravity   = -50
	JumpPower = 30
)

// Controls is the keyboard state that drives the player for one frame.
type Controls struct {
	Forward, Backward bool
	TurnLeft          bool
	TurnRight         bool
	Jump              bool
}

// HeightSampler answers ground height queries in world space.
type HeightSampler interface {
	HeightAt(worldX, worldZ float32) float32
}

// Player is an entity steered by the keyboard that falls under gravity
// and stands on the ground.
type Player struct {
	*Entity

	upwardSpeed float32
	inAir       bool
}

// NewPlayer creates a player standing at position.
func NewPlayer(m *model.TexturedModel, position math.Vec3, rotY, scale float32) *Player {
	return &Player{Entity: New(m, position, 0, rotY, 0, scale)}
}

// InAir reports whether the player is off the ground.
func (p *Player) InAir() bool { return p.inAir }

// Move advances the player by dt seconds. Every change is speed × dt.
func (p *Player) Move(dt float32, c Controls, ground HeightSampler) {
	var run, turn float32
	switch {
	case c.Backward:
		run = -RunSpeed
	case c.Forward:
		run = RunSpeed
	}
	switch {
	case c.TurnLeft:
		turn = TurnSpeed
	case c.TurnRight:
		turn = -TurnSpeed
	}
	if c.Jump && !p.inAir {
		p.upwardSpeed = JumpPower
		p.inAir = true
	}

	p.RotateBy(0, turn*dt, 0)

	distance := run * dt
	yaw := float64(math.Radians(p.Rotation().Y))
	dx := distance * float32(gomath.Sin(yaw))
	dz := distance * float32(gomath.Cos(yaw))

	p.upwardSpeed += Gravity * dt
	p.TranslateBy(dx, p.upwardSpeed*dt, dz)

	var groundY float32
	if ground != nil {
		pos := p.Position()
		groundY = ground.HeightAt(pos.X, pos.Z)
	}
	if p.Position().Y < groundY {
		p.upwardSpeed = 0
		p.inAir = false
		p.SetHeight(groundY)
	}
}
