package formats

import (
	"errors"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ErrNoGeometry is returned when a glTF document has no triangle primitives.
var ErrNoGeometry = errors.New("glTF document has no triangle geometry")

// LoadGLTF opens a .gltf or .glb file and flattens its meshes.
func LoadGLTF(path string) (*ModelData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening glTF file: %w", err)
	}
	data, err := ModelFromGLTF(doc)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", path, err)
	}
	return data, nil
}

// ModelFromGLTF merges every triangle primitive of every mesh into one
// ModelData. Node transforms are not applied. glTF texcoords already use a
// top-left origin, so V is kept as stored.
func ModelFromGLTF(doc *gltf.Document) (*ModelData, error) {
	data := &ModelData{}

	for mi, mesh := range doc.Meshes {
		for pi, prim := range mesh.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			if err := appendPrimitive(data, doc, prim); err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
		}
	}

	if len(data.Indices) == 0 {
		return nil, ErrNoGeometry
	}
	return data, nil
}

func appendPrimitive(data *ModelData, doc *gltf.Document, prim *gltf.Primitive) error {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("normals: %w", err)
		}
	}
	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("texcoords: %w", err)
		}
	}

	base := uint32(data.VertexCount())
	for i, p := range positions {
		data.Positions = append(data.Positions, p[0], p[1], p[2])

		length := float32(math.Sqrt(float64(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])))
		if length > data.FurthestPoint {
			data.FurthestPoint = length
		}

		var uv [2]float32
		if i < len(uvs) {
			uv = uvs[i]
		}
		data.UVs = append(data.UVs, uv[0], uv[1])

		n := [3]float32{0, 1, 0}
		if i < len(normals) {
			n = normals[i]
		}
		data.Normals = append(data.Normals, n[0], n[1], n[2])
	}

	if prim.Indices == nil {
		for i := range positions {
			data.Indices = append(data.Indices, base+uint32(i))
		}
		return nil
	}

	indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	if err != nil {
		return fmt.Errorf("indices: %w", err)
	}
	for _, idx := range indices {
		if int(idx) >= len(positions) {
			return fmt.Errorf("index %d: %w", idx, ErrIndexOutOfRange)
		}
		data.Indices = append(data.Indices, base+idx)
	}
	return nil
}
