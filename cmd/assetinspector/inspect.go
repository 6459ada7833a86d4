package main

import (
	"fmt"
	"image"
	"image/color"
	stdmath "math"
	"path/filepath"
	"strings"

	"github.com/Faultbox/lowpoly/internal/engine/terrain"
	"github.com/Faultbox/lowpoly/internal/engine/texture"
	"github.com/Faultbox/lowpoly/pkg/formats"
	"github.com/Faultbox/lowpoly/pkg/math"
)

// assetKind says which preview an opened file gets.
type assetKind int

const (
	kindModel assetKind = iota
	kindHeightmap
)

// modelStats summarizes a mesh.
type modelStats struct {
	Vertices      int
	Triangles     int
	FurthestPoint float32
	Min, Max      math.Vec3
}

// heightStats summarizes a heightmap read as terrain.
type heightStats struct {
	VertexCount int
	Min, Max    float32
	Mean        float32
}

// asset is a decoded file ready to display.
type asset struct {
	path   string
	kind   assetKind
	model  modelStats
	field  *terrain.Heightfield
	height heightStats
	// preview is the heightmap colored by height.
	preview *image.RGBA
}

var modelExts = map[string]bool{".obj": true, ".gltf": true, ".glb": true}

// loadAsset decodes a model or a heightmap image. Everything is read on
// the CPU; nothing needs a GL context.
func loadAsset(path string) (*asset, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if modelExts[ext] {
		data, err := formats.LoadModel(path)
		if err != nil {
			return nil, err
		}
		return &asset{path: path, kind: kindModel, model: measureModel(data)}, nil
	}

	img, err := texture.Load(path)
	if err != nil {
		return nil, err
	}
	field, err := terrain.NewHeightfield(0, 0, img)
	if err != nil {
		return nil, fmt.Errorf("reading %s as heightmap: %w", filepath.Base(path), err)
	}
	stats := measureHeights(field)
	return &asset{
		path:    path,
		kind:    kindHeightmap,
		field:   field,
		height:  stats,
		preview: heightColormap(field, stats),
	}, nil
}

func measureModel(data *formats.ModelData) modelStats {
	s := modelStats{
		Vertices:      data.VertexCount(),
		Triangles:     len(data.Indices) / 3,
		FurthestPoint: data.FurthestPoint,
	}
	for i := 0; i+2 < len(data.Positions); i += 3 {
		p := math.Vec3{X: data.Positions[i], Y: data.Positions[i+1], Z: data.Positions[i+2]}
		if i == 0 {
			s.Min, s.Max = p, p
			continue
		}
		s.Min = math.Vec3{X: min(s.Min.X, p.X), Y: min(s.Min.Y, p.Y), Z: min(s.Min.Z, p.Z)}
		s.Max = math.Vec3{X: max(s.Max.X, p.X), Y: max(s.Max.Y, p.Y), Z: max(s.Max.Z, p.Z)}
	}
	return s
}

func measureHeights(h *terrain.Heightfield) heightStats {
	s := heightStats{
		VertexCount: h.VertexCount(),
		Min:         float32(stdmath.Inf(1)),
		Max:         float32(stdmath.Inf(-1)),
	}
	var sum float64
	n := 0
	for _, row := range h.Heights() {
		for _, v := range row {
			s.Min = min(s.Min, v)
			s.Max = max(s.Max, v)
			sum += float64(v)
			n++
		}
	}
	if n > 0 {
		s.Mean = float32(sum / float64(n))
	}
	return s
}

// heightColormap renders heights as a blue-green-yellow-white ramp, one
// pixel per vertex, x to the right and z down.
func heightColormap(h *terrain.Heightfield, s heightStats) *image.RGBA {
	heights := h.Heights()
	n := len(heights)
	rgba := image.NewRGBA(image.Rect(0, 0, n, n))

	span := s.Max - s.Min
	for x := range n {
		for z := range n {
			normalized := float32(0.5)
			if span > 0 {
				normalized = (heights[x][z] - s.Min) / span
			}
			rgba.Set(x, z, rampColor(normalized))
		}
	}
	return rgba
}

func rampColor(normalized float32) color.RGBA {
	var r, g, b uint8
	switch {
	case normalized < 0.25:
		// Dark blue to blue
		t := normalized * 4
		r = uint8(20 * t)
		g = uint8(50 + 50*t)
		b = uint8(100 + 100*t)
	case normalized < 0.5:
		// Blue to green
		t := (normalized - 0.25) * 4
		r = uint8(20 + 80*t)
		g = uint8(100 + 100*t)
		b = uint8(200 - 100*t)
	case normalized < 0.75:
		// Green to yellow
		t := (normalized - 0.5) * 4
		r = uint8(100 + 155*t)
		g = uint8(200 + 55*t)
		b = uint8(100 - 50*t)
	default:
		// Yellow to white
		t := (normalized - 0.75) * 4
		r = 255
		g = 255
		b = uint8(50 + 205*t)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

const tileSize = float32(terrain.Size)

// queryHeight samples the heightmap at a position relative to the tile
// corner. Positions off the tile read as zero.
func queryHeight(a *asset, x, z float32) float32 {
	if a.field == nil {
		return 0
	}
	ox, oz := a.field.Origin()
	return a.field.HeightAt(ox+x, oz+z)
}
