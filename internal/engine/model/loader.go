// Package model holds mesh, texture and material descriptors and the Loader
// that owns their GPU resources.
package model

import (
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/lowpoly/internal/engine/gpu"
	"github.com/Faultbox/lowpoly/internal/engine/texture"
	"github.com/Faultbox/lowpoly/internal/logger"
	"github.com/Faultbox/lowpoly/pkg/formats"
)

// Vertex attribute locations shared by every shader.
const (
	AttribPosition uint32 = 0
	AttribTexCoord uint32 = 1
	AttribNormal   uint32 = 2
)

// Texture sampling used for every model and terrain texture.
const textureLODBias = -0.4

// Loader uploads meshes and textures and remembers everything it created,
// so teardown can release each resource exactly once.
type Loader struct {
	device   gpu.Device
	meshes   []gpu.MeshID
	textures []gpu.TextureID
	log      *zap.Logger
}

// NewLoader creates a loader that uploads through device.
func NewLoader(device gpu.Device) *Loader {
	return &Loader{
		device: device,
		log:    logger.Named("loader"),
	}
}

// LoadMesh uploads positions, texture coordinates, normals and indices.
func (l *Loader) LoadMesh(data *formats.ModelData) (*RawMesh, error) {
	if data == nil || len(data.Indices) == 0 {
		return nil, fmt.Errorf("uploading mesh: no indices")
	}

	attribs := []gpu.VertexAttrib{
		{Location: AttribPosition, Size: 3, Data: data.Positions},
		{Location: AttribTexCoord, Size: 2, Data: data.UVs},
		{Location: AttribNormal, Size: 3, Data: data.Normals},
	}
	id, err := l.device.CreateMesh(attribs, data.Indices)
	if err != nil {
		return nil, fmt.Errorf("uploading mesh: %w", err)
	}
	l.meshes = append(l.meshes, id)

	l.log.Debug("mesh uploaded",
		zap.Uint32("id", uint32(id)),
		zap.Int("vertices", data.VertexCount()),
		zap.Int("indices", len(data.Indices)))

	return &RawMesh{ID: id, VertexCount: len(data.Indices), Attribs: len(attribs)}, nil
}

// LoadPositions uploads a position-only mesh drawn without indices.
// dims is the number of components per vertex.
func (l *Loader) LoadPositions(positions []float32, dims int) (*RawMesh, error) {
	if dims <= 0 || len(positions) == 0 || len(positions)%dims != 0 {
		return nil, fmt.Errorf("uploading positions: %d floats do not form %d-component vertices", len(positions), dims)
	}

	id, err := l.device.CreateMesh([]gpu.VertexAttrib{
		{Location: AttribPosition, Size: dims, Data: positions},
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("uploading positions: %w", err)
	}
	l.meshes = append(l.meshes, id)

	return &RawMesh{ID: id, VertexCount: len(positions) / dims, Attribs: 1}, nil
}

// LoadTexture decodes an image file and uploads it with mipmaps, a slight
// negative LOD bias and repeat wrapping.
func (l *Loader) LoadTexture(path string) (Texture, error) {
	img, err := texture.Load(path)
	if err != nil {
		return Texture{}, err
	}

	id, err := l.device.CreateTexture(img, gpu.TextureOptions{
		Mipmaps: true,
		LODBias: textureLODBias,
		Repeat:  true,
	})
	if err != nil {
		return Texture{}, fmt.Errorf("uploading texture %s: %w", path, err)
	}
	l.textures = append(l.textures, id)

	l.log.Debug("texture uploaded",
		zap.String("path", path),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))

	return Texture{ID: id, Target: gpu.Texture2D}, nil
}

// LoadCubemap uploads six faces in the order right, left, top, bottom,
// back, front.
func (l *Loader) LoadCubemap(paths [6]string) (Texture, error) {
	var faces [6]*image.RGBA
	for i, p := range paths {
		img, err := texture.Load(p)
		if err != nil {
			return Texture{}, fmt.Errorf("loading cubemap face %d: %w", i, err)
		}
		faces[i] = img
	}

	id, err := l.device.CreateCubemap(faces)
	if err != nil {
		return Texture{}, fmt.Errorf("uploading cubemap: %w", err)
	}
	l.textures = append(l.textures, id)

	return Texture{ID: id, Target: gpu.TextureCubeMap}, nil
}

// Destroy releases every mesh and texture this loader created.
// Calling it again is a no-op.
func (l *Loader) Destroy() {
	for _, id := range l.meshes {
		l.device.DeleteMesh(id)
	}
	for _, id := range l.textures {
		l.device.DeleteTexture(id)
	}
	if n := len(l.meshes) + len(l.textures); n > 0 {
		l.log.Debug("loader resources released", zap.Int("count", n))
	}
	l.meshes = nil
	l.textures = nil
}
