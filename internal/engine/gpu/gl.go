package gpu

import (
	"fmt"
	"image"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/lowpoly/internal/logger"
)

// glMesh tracks the buffers owned by a vertex array.
type glMesh struct {
	vbos []uint32
	ebo  uint32
}

// GL implements Device on an OpenGL 4.1 core context.
type GL struct {
	meshes map[MeshID]glMesh
}

// NewGL loads the OpenGL function pointers and sets the default state.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func NewGL() (*GL, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	return &GL{meshes: make(map[MeshID]glMesh)}, nil
}

// CreateMesh uploads one VBO per attribute plus an index buffer.
func (d *GL) CreateMesh(attribs []VertexAttrib, indices []uint32) (MeshID, error) {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	if vao == 0 {
		return 0, fmt.Errorf("glGenVertexArrays returned 0")
	}
	gl.BindVertexArray(vao)

	m := glMesh{}
	for _, a := range attribs {
		if len(a.Data) == 0 {
			continue
		}
		var vbo uint32
		gl.GenBuffers(1, &vbo)
		gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(a.Data)*4, unsafe.Pointer(&a.Data[0]), gl.STATIC_DRAW)
		gl.VertexAttribPointerWithOffset(a.Location, int32(a.Size), gl.FLOAT, false, 0, 0)
		m.vbos = append(m.vbos, vbo)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if len(indices) > 0 {
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)

	id := MeshID(vao)
	d.meshes[id] = m
	return id, nil
}

// DeleteMesh releases the vertex array and its buffers.
func (d *GL) DeleteMesh(id MeshID) {
	m, ok := d.meshes[id]
	if !ok {
		return
	}
	if len(m.vbos) > 0 {
		gl.DeleteBuffers(int32(len(m.vbos)), &m.vbos[0])
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	vao := uint32(id)
	gl.DeleteVertexArrays(1, &vao)
	delete(d.meshes, id)
}

// BindMesh binds a vertex array and enables attributes 0..attribCount-1.
func (d *GL) BindMesh(id MeshID, attribCount int) {
	gl.BindVertexArray(uint32(id))
	for i := 0; i < attribCount; i++ {
		gl.EnableVertexAttribArray(uint32(i))
	}
}

// UnbindMesh disables the attributes and unbinds the vertex array.
func (d *GL) UnbindMesh(attribCount int) {
	for i := 0; i < attribCount; i++ {
		gl.DisableVertexAttribArray(uint32(i))
	}
	gl.BindVertexArray(0)
}

// CreateTexture uploads an RGBA image as a 2D texture.
func (d *GL) CreateTexture(img *image.RGBA, opts TextureOptions) (TextureID, error) {
	if img == nil || len(img.Pix) == 0 {
		return 0, fmt.Errorf("empty texture image")
	}

	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Bounds().Dx()), int32(img.Bounds().Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))

	if opts.Mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
		gl.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_LOD_BIAS, opts.LODBias)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	wrap := int32(gl.CLAMP_TO_EDGE)
	if opts.Repeat {
		wrap = gl.REPEAT
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return TextureID(texID), nil
}

// CreateCubemap uploads six faces in +X, -X, +Y, -Y, +Z, -Z order.
func (d *GL) CreateCubemap(faces [6]*image.RGBA) (TextureID, error) {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, texID)

	for i, img := range faces {
		if img == nil || len(img.Pix) == 0 {
			gl.DeleteTextures(1, &texID)
			return 0, fmt.Errorf("cubemap face %d is empty", i)
		}
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA,
			int32(img.Bounds().Dx()), int32(img.Bounds().Dy()),
			0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	}

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return TextureID(texID), nil
}

// DeleteTexture releases a texture of either target.
func (d *GL) DeleteTexture(id TextureID) {
	tex := uint32(id)
	gl.DeleteTextures(1, &tex)
}

// BindTexture activates a texture unit and binds the texture to it.
func (d *GL) BindTexture(unit int, target Target, id TextureID) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(glTarget(target), uint32(id))
}

// CreateProgram compiles both stages and links them.
func (d *GL) CreateProgram(vertexSrc, fragmentSrc string, attribs map[uint32]string) (ProgramID, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	for loc, name := range attribs {
		gl.BindAttribLocation(program, loc, gl.Str(name+"\x00"))
	}
	gl.LinkProgram(program)
	gl.ValidateProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("%w: link: %s", ErrCompile, strings.TrimRight(log, "\x00"))
	}

	logger.Debug("shader program created", zap.Uint32("program", program))
	return ProgramID(program), nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s shader: %s", ErrCompile, name, strings.TrimRight(log, "\x00"))
	}

	return shader, nil
}

// DeleteProgram releases a linked program.
func (d *GL) DeleteProgram(id ProgramID) {
	gl.UseProgram(0)
	gl.DeleteProgram(uint32(id))
}

// UseProgram binds a program; 0 unbinds.
func (d *GL) UseProgram(id ProgramID) {
	gl.UseProgram(uint32(id))
}

// UniformLocation returns -1 for unknown or inactive uniforms.
func (d *GL) UniformLocation(id ProgramID, name string) int32 {
	return gl.GetUniformLocation(uint32(id), gl.Str(name+"\x00"))
}

// Uniform1i uploads an int.
func (d *GL) Uniform1i(loc int32, v int32) {
	gl.Uniform1i(loc, v)
}

// Uniform1f uploads a float.
func (d *GL) Uniform1f(loc int32, v float32) {
	gl.Uniform1f(loc, v)
}

// Uniform2f uploads a vec2.
func (d *GL) Uniform2f(loc int32, x, y float32) {
	gl.Uniform2f(loc, x, y)
}

// Uniform3f uploads a vec3.
func (d *GL) Uniform3f(loc int32, x, y, z float32) {
	gl.Uniform3f(loc, x, y, z)
}

// UniformMatrix4 uploads a column-major mat4.
func (d *GL) UniformMatrix4(loc int32, m [16]float32) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

// DrawElements draws count indices from the bound element buffer.
func (d *GL) DrawElements(mode Primitive, count int) {
	gl.DrawElements(glPrimitive(mode), int32(count), gl.UNSIGNED_INT, nil)
}

// DrawArrays draws count vertices starting at first.
func (d *GL) DrawArrays(mode Primitive, first, count int) {
	gl.DrawArrays(glPrimitive(mode), int32(first), int32(count))
}

// SetCulling toggles back-face culling.
func (d *GL) SetCulling(enabled bool) {
	if enabled {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	} else {
		gl.Disable(gl.CULL_FACE)
	}
}

// SetBlending toggles standard alpha blending.
func (d *GL) SetBlending(enabled bool) {
	if enabled {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}
}

// SetDepthTest toggles depth testing.
func (d *GL) SetDepthTest(enabled bool) {
	if enabled {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
}

// Clear clears color and depth to the given color.
func (d *GL) Clear(r, g, b float32) {
	gl.ClearColor(r, g, b, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Viewport sets the drawable area.
func (d *GL) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("viewport resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

func glTarget(t Target) uint32 {
	if t == TextureCubeMap {
		return gl.TEXTURE_CUBE_MAP
	}
	return gl.TEXTURE_2D
}

func glPrimitive(p Primitive) uint32 {
	if p == TriangleStrip {
		return gl.TRIANGLE_STRIP
	}
	return gl.TRIANGLES
}
