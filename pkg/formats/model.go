package formats

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ModelData holds GPU-ready parallel vertex arrays. Slot i of every array
// describes one unique (position, texcoord, normal) combination.
type ModelData struct {
	Positions []float32 // 3 per vertex
	UVs       []float32 // 2 per vertex, V flipped for top-left image origin
	Normals   []float32 // 3 per vertex
	Indices   []uint32

	// FurthestPoint is the largest distance from the origin of any vertex.
	FurthestPoint float32
}

// VertexCount returns the number of unique vertices.
func (m *ModelData) VertexCount() int {
	return len(m.Positions) / 3
}

// LoadModel loads a mesh, choosing the parser by file extension.
func LoadModel(path string) (*ModelData, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return LoadOBJ(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("unsupported model format %q", ext)
	}
}
