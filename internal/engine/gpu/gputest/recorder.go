// Package gputest provides a recording gpu.Device for tests.
package gputest

import (
	"fmt"
	"image"
	"strings"

	"github.com/Faultbox/lowpoly/internal/engine/gpu"
)

// Mesh is a recorded mesh upload.
type Mesh struct {
	Attribs []gpu.VertexAttrib
	Indices []uint32
}

// Program is a recorded program with its uniform table.
type Program struct {
	VertexSrc, FragmentSrc string
	Attribs                map[uint32]string
}

type uniformKey struct {
	program gpu.ProgramID
	name    string
}

// Recorder implements gpu.Device in memory. Every call is appended to Calls
// as a short text line, and uniform uploads are kept per program and name.
type Recorder struct {
	Calls []string

	Meshes   map[gpu.MeshID]Mesh
	Textures map[gpu.TextureID]gpu.Target
	Programs map[gpu.ProgramID]Program

	// CompileErr, when set, is returned by CreateProgram.
	CompileErr error
	// Missing lists uniform names that resolve to -1.
	Missing map[string]bool

	Culling, Blending, DepthTest bool

	nextID    uint32
	current   gpu.ProgramID
	locations map[int32]uniformKey
	byKey     map[uniformKey]int32
	values    map[uniformKey]any
}

// NewRecorder returns an empty recorder with depth testing on.
func NewRecorder() *Recorder {
	return &Recorder{
		Meshes:    make(map[gpu.MeshID]Mesh),
		Textures:  make(map[gpu.TextureID]gpu.Target),
		Programs:  make(map[gpu.ProgramID]Program),
		Missing:   make(map[string]bool),
		DepthTest: true,
		locations: make(map[int32]uniformKey),
		byKey:     make(map[uniformKey]int32),
		values:    make(map[uniformKey]any),
	}
}

var _ gpu.Device = (*Recorder)(nil)

func (r *Recorder) id() uint32 {
	r.nextID++
	return r.nextID
}

func (r *Recorder) record(format string, args ...any) {
	r.Calls = append(r.Calls, fmt.Sprintf(format, args...))
}

// Count returns how many recorded calls start with prefix.
func (r *Recorder) Count(prefix string) int {
	n := 0
	for _, c := range r.Calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls but keeps resources and uniform values.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

// Uniform returns the last value uploaded to name in program.
func (r *Recorder) Uniform(program gpu.ProgramID, name string) (any, bool) {
	v, ok := r.values[uniformKey{program, name}]
	return v, ok
}

// Live returns how many meshes, textures and programs have not been deleted.
func (r *Recorder) Live() int {
	return len(r.Meshes) + len(r.Textures) + len(r.Programs)
}

func (r *Recorder) CreateMesh(attribs []gpu.VertexAttrib, indices []uint32) (gpu.MeshID, error) {
	id := gpu.MeshID(r.id())
	r.Meshes[id] = Mesh{Attribs: attribs, Indices: indices}
	r.record("CreateMesh %d", id)
	return id, nil
}

func (r *Recorder) DeleteMesh(id gpu.MeshID) {
	delete(r.Meshes, id)
	r.record("DeleteMesh %d", id)
}

func (r *Recorder) BindMesh(id gpu.MeshID, attribCount int) {
	r.record("BindMesh %d %d", id, attribCount)
}

func (r *Recorder) UnbindMesh(attribCount int) {
	r.record("UnbindMesh %d", attribCount)
}

func (r *Recorder) CreateTexture(img *image.RGBA, opts gpu.TextureOptions) (gpu.TextureID, error) {
	if img == nil {
		return 0, fmt.Errorf("nil image")
	}
	id := gpu.TextureID(r.id())
	r.Textures[id] = gpu.Texture2D
	r.record("CreateTexture %d", id)
	return id, nil
}

func (r *Recorder) CreateCubemap(faces [6]*image.RGBA) (gpu.TextureID, error) {
	for i, f := range faces {
		if f == nil {
			return 0, fmt.Errorf("nil face %d", i)
		}
	}
	id := gpu.TextureID(r.id())
	r.Textures[id] = gpu.TextureCubeMap
	r.record("CreateCubemap %d", id)
	return id, nil
}

func (r *Recorder) DeleteTexture(id gpu.TextureID) {
	delete(r.Textures, id)
	r.record("DeleteTexture %d", id)
}

func (r *Recorder) BindTexture(unit int, target gpu.Target, id gpu.TextureID) {
	r.record("BindTexture %d %d %d", unit, target, id)
}

func (r *Recorder) CreateProgram(vertexSrc, fragmentSrc string, attribs map[uint32]string) (gpu.ProgramID, error) {
	if r.CompileErr != nil {
		return 0, r.CompileErr
	}
	id := gpu.ProgramID(r.id())
	r.Programs[id] = Program{VertexSrc: vertexSrc, FragmentSrc: fragmentSrc, Attribs: attribs}
	r.record("CreateProgram %d", id)
	return id, nil
}

func (r *Recorder) DeleteProgram(id gpu.ProgramID) {
	delete(r.Programs, id)
	r.record("DeleteProgram %d", id)
}

func (r *Recorder) UseProgram(id gpu.ProgramID) {
	r.current = id
	r.record("UseProgram %d", id)
}

func (r *Recorder) UniformLocation(id gpu.ProgramID, name string) int32 {
	if r.Missing[name] {
		return -1
	}
	key := uniformKey{id, name}
	if loc, ok := r.byKey[key]; ok {
		return loc
	}
	loc := int32(len(r.locations))
	r.locations[loc] = key
	r.byKey[key] = loc
	return loc
}

func (r *Recorder) set(loc int32, v any) {
	key, ok := r.locations[loc]
	if !ok || loc < 0 {
		return
	}
	r.values[key] = v
	r.record("Uniform %s", key.name)
}

func (r *Recorder) Uniform1i(loc int32, v int32) { r.set(loc, v) }
func (r *Recorder) Uniform1f(loc int32, v float32) { r.set(loc, v) }
func (r *Recorder) Uniform2f(loc int32, x, y float32) { r.set(loc, [2]float32{x, y}) }
func (r *Recorder) Uniform3f(loc int32, x, y, z float32) { r.set(loc, [3]float32{x, y, z}) }

func (r *Recorder) UniformMatrix4(loc int32, m [16]float32) { r.set(loc, m) }

func (r *Recorder) DrawElements(mode gpu.Primitive, count int) {
	r.record("DrawElements %d %d", mode, count)
}

func (r *Recorder) DrawArrays(mode gpu.Primitive, first, count int) {
	r.record("DrawArrays %d %d %d", mode, first, count)
}

func (r *Recorder) SetCulling(enabled bool) {
	r.Culling = enabled
	r.record("SetCulling %t", enabled)
}

func (r *Recorder) SetBlending(enabled bool) {
	r.Blending = enabled
	r.record("SetBlending %t", enabled)
}

func (r *Recorder) SetDepthTest(enabled bool) {
	r.DepthTest = enabled
	r.record("SetDepthTest %t", enabled)
}

func (r *Recorder) Clear(red, green, blue float32) {
	r.record("Clear %.4f %.4f %.4f", red, green, blue)
}

func (r *Recorder) Viewport(width, height int) {
	r.record("Viewport %d %d", width, height)
}
