// Package gpu defines the graphics device the renderers draw through and
// its OpenGL implementation.
package gpu

import (
	"errors"
	"image"
)

// ErrCompile is returned when a shader stage fails to compile or link.
var ErrCompile = errors.New("shader compilation failed")

// Handles to GPU-resident objects. Zero is never a valid handle.
type (
	MeshID    uint32
	TextureID uint32
	ProgramID uint32
)

// Target selects the texture binding point.
type Target int

const (
	Texture2D Target = iota
	TextureCubeMap
)

// Primitive selects how vertices are assembled.
type Primitive int

const (
	Triangles Primitive = iota
	TriangleStrip
)

// VertexAttrib is one tightly packed float attribute stream.
type VertexAttrib struct {
	Location uint32
	Size     int // components per vertex
	Data     []float32
}

// TextureOptions controls sampling for 2D textures.
type TextureOptions struct {
	Mipmaps bool
	LODBias float32
	Repeat  bool
}

// Device is everything the renderers need from the GPU backend.
// All calls must come from the thread that owns the context.
type Device interface {
	CreateMesh(attribs []VertexAttrib, indices []uint32) (MeshID, error)
	DeleteMesh(id MeshID)
	BindMesh(id MeshID, attribCount int)
	UnbindMesh(attribCount int)

	CreateTexture(img *image.RGBA, opts TextureOptions) (TextureID, error)
	CreateCubemap(faces [6]*image.RGBA) (TextureID, error)
	DeleteTexture(id TextureID)
	BindTexture(unit int, target Target, id TextureID)

	// CreateProgram binds the named attributes to their locations before linking.
	CreateProgram(vertexSrc, fragmentSrc string, attribs map[uint32]string) (ProgramID, error)
	DeleteProgram(id ProgramID)
	UseProgram(id ProgramID)
	UniformLocation(id ProgramID, name string) int32

	Uniform1i(loc int32, v int32)
	Uniform1f(loc int32, v float32)
	Uniform2f(loc int32, x, y float32)
	Uniform3f(loc int32, x, y, z float32)
	UniformMatrix4(loc int32, m [16]float32)

	DrawElements(mode Primitive, count int)
	DrawArrays(mode Primitive, first, count int)

	SetCulling(enabled bool)
	SetBlending(enabled bool)
	SetDepthTest(enabled bool)
	Clear(r, g, b float32)
	Viewport(width, height int)
}
