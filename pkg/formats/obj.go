package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrMalformedFace   = errors.New("malformed OBJ face: expected three v/vt/vn triplets")
	ErrIndexOutOfRange = errors.New("vertex index out of range")
	ErrMalformedVertex = errors.New("malformed OBJ vertex data")
)

// objRef is one corner of a face, as 0-based indices.
type objRef struct {
	pos, uv, normal int
}

// objSlot is an output vertex being assembled.
type objSlot struct {
	pos        int
	uv, normal int
	set        bool
}

// LoadOBJ reads and parses an OBJ file.
func LoadOBJ(path string) (*ModelData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening OBJ file: %w", err)
	}
	defer f.Close()

	data, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return data, nil
}

// ParseOBJ parses triangulated OBJ text with v, vt, vn and f records.
// Positions shared between faces with different texcoords or normals are
// split into extra vertices appended after the original positions.
func ParseOBJ(r io.Reader) (*ModelData, error) {
	var (
		positions [][3]float32
		uvs       [][2]float32
		normals   [][3]float32
		faces     []objRef
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			positions = append(positions, [3]float32{v[0], v[1], v[2]})
		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			uvs = append(uvs, [2]float32{v[0], v[1]})
		case "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			normals = append(normals, [3]float32{v[0], v[1], v[2]})
		case "f":
			if len(fields) != 4 {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrMalformedFace)
			}
			for _, corner := range fields[1:] {
				ref, err := parseFaceRef(corner)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				faces = append(faces, ref)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	for i, ref := range faces {
		if ref.pos < 0 || ref.pos >= len(positions) ||
			ref.uv < 0 || ref.uv >= len(uvs) ||
			ref.normal < 0 || ref.normal >= len(normals) {
			return nil, fmt.Errorf("face corner %d (%d/%d/%d): %w",
				i, ref.pos+1, ref.uv+1, ref.normal+1, ErrIndexOutOfRange)
		}
	}

	slots, indices := dedupVertices(len(positions), faces)
	return buildModelData(slots, indices, positions, uvs, normals), nil
}

// dedupVertices maps every face corner to an output slot. The first corner
// that references a position claims that position's own slot; a later corner
// with a different texcoord or normal gets a new slot appended at the end.
func dedupVertices(positionCount int, faces []objRef) ([]objSlot, []uint32) {
	slots := make([]objSlot, positionCount, positionCount+len(faces)/3)
	for i := range slots {
		slots[i].pos = i
	}

	lookup := make(map[objRef]uint32, len(faces))
	indices := make([]uint32, 0, len(faces))

	for _, ref := range faces {
		if idx, ok := lookup[ref]; ok {
			indices = append(indices, idx)
			continue
		}

		var idx uint32
		if !slots[ref.pos].set {
			idx = uint32(ref.pos)
			slots[idx] = objSlot{pos: ref.pos, uv: ref.uv, normal: ref.normal, set: true}
		} else {
			idx = uint32(len(slots))
			slots = append(slots, objSlot{pos: ref.pos, uv: ref.uv, normal: ref.normal, set: true})
		}
		lookup[ref] = idx
		indices = append(indices, idx)
	}

	return slots, indices
}

func buildModelData(slots []objSlot, indices []uint32, positions [][3]float32, uvs [][2]float32, normals [][3]float32) *ModelData {
	data := &ModelData{
		Positions: make([]float32, 0, len(slots)*3),
		UVs:       make([]float32, 0, len(slots)*2),
		Normals:   make([]float32, 0, len(slots)*3),
		Indices:   indices,
	}

	for _, s := range slots {
		p := positions[s.pos]
		data.Positions = append(data.Positions, p[0], p[1], p[2])

		length := float32(math.Sqrt(float64(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])))
		if length > data.FurthestPoint {
			data.FurthestPoint = length
		}

		// Unreferenced positions fall back to the first texcoord and normal.
		uvIdx, nIdx := s.uv, s.normal
		if !s.set {
			uvIdx, nIdx = 0, 0
		}

		var uv [2]float32
		if uvIdx < len(uvs) {
			uv = uvs[uvIdx]
		}
		data.UVs = append(data.UVs, uv[0], 1-uv[1])

		var n [3]float32
		if nIdx < len(normals) {
			n = normals[nIdx]
		}
		data.Normals = append(data.Normals, n[0], n[1], n[2])
	}

	return data
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("%w: want %d values, got %d", ErrMalformedVertex, n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedVertex, err)
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseFaceRef parses "p/t/n" with 1-based indices.
func parseFaceRef(s string) (objRef, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return objRef{}, fmt.Errorf("%w: %q", ErrMalformedFace, s)
	}
	var idx [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return objRef{}, fmt.Errorf("%w: %q", ErrMalformedFace, s)
		}
		idx[i] = n - 1
	}
	return objRef{pos: idx[0], uv: idx[1], normal: idx[2]}, nil
}
