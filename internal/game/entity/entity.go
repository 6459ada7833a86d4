// Package entity implements the placed objects of the world and the
// player that walks among them.
package entity

import (
	"github.com/Faultbox/lowpoly/internal/engine/model"
	"github.com/Faultbox/lowpoly/pkg/math"
)

// Entity is one placed instance of a textured model. Its transform is only
// changed through its methods, and accessors return copies.
type Entity struct {
	model      *model.TexturedModel
	position   math.Vec3
	rotation   math.Vec3 // degrees about X, Y and Z
	scale      float32
	atlasIndex int
}

// New creates an entity at position with the given rotation in degrees.
func New(m *model.TexturedModel, position math.Vec3, rotX, rotY, rotZ, scale float32) *Entity {
	return &Entity{
		model:    m,
		position: position,
		rotation: math.Vec3{X: rotX, Y: rotY, Z: rotZ},
		scale:    scale,
	}
}

// NewWithAtlas creates an entity showing one cell of its texture atlas.
func NewWithAtlas(m *model.TexturedModel, atlasIndex int, position math.Vec3, rotX, rotY, rotZ, scale float32) *Entity {
	e := New(m, position, rotX, rotY, rotZ, scale)
	e.atlasIndex = atlasIndex
	return e
}

// Model returns the textured model the entity is drawn with.
func (e *Entity) Model() *model.TexturedModel { return e.model }

// Position returns the world position.
func (e *Entity) Position() math.Vec3 { return e.position }

// Rotation returns the rotation about each axis in degrees.
func (e *Entity) Rotation() math.Vec3 { return e.rotation }

// Scale returns the uniform scale.
func (e *Entity) Scale() float32 { return e.scale }

// AtlasIndex returns the atlas cell, counted row by row.
func (e *Entity) AtlasIndex() int { return e.atlasIndex }

// TranslateBy moves the entity.
func (e *Entity) TranslateBy(dx, dy, dz float32) {
	e.position = e.position.Add(math.Vec3{X: dx, Y: dy, Z: dz})
}

// RotateBy adds to the rotation, in degrees.
func (e *Entity) RotateBy(dx, dy, dz float32) {
	e.rotation = e.rotation.Add(math.Vec3{X: dx, Y: dy, Z: dz})
}

// SetPosition places the entity.
func (e *Entity) SetPosition(p math.Vec3) {
	e.position = p
}

// SetHeight changes only the Y coordinate.
func (e *Entity) SetHeight(y float32) {
	e.position.Y = y
}

// AtlasOffset returns the texture coordinate offset of the entity's atlas
// cell on a texture with rows rows and columns.
func (e *Entity) AtlasOffset() math.Vec2 {
	rows := 1
	if e.model != nil && e.model.Material != nil {
		rows = e.model.Material.Rows()
	}
	column := e.atlasIndex % rows
	row := e.atlasIndex / rows
	return math.Vec2{
		X: float32(column) / float32(rows),
		Y: float32(row) / float32(rows),
	}
}

// ModelMatrix returns the entity's local-to-world transform.
func (e *Entity) ModelMatrix() math.Mat4 {
	return math.ModelMatrix(e.position, e.rotation.X, e.rotation.Y, e.rotation.Z, e.scale)
}
