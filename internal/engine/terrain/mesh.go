package terrain

import (
	"github.com/Faultbox/lowpoly/pkg/formats"
	"github.com/Faultbox/lowpoly/pkg/math"
)

// BuildMesh generates the grid mesh for a heightfield in tile-local space.
// Vertex (x, z) lands at slot z*N+x with UV (x/(N-1), z/(N-1)).
func (h *Heightfield) BuildMesh() *formats.ModelData {
	n := len(h.heights)
	count := n * n
	data := &formats.ModelData{
		Positions: make([]float32, 0, count*3),
		UVs:       make([]float32, 0, count*2),
		Normals:   make([]float32, 0, count*3),
		Indices:   make([]uint32, 0, 6*(n-1)*(n-1)),
	}

	last := float32(n - 1)
	for z := range n {
		for x := range n {
			u := float32(x) / last
			v := float32(z) / last
			p := math.Vec3{X: u * Size, Y: h.heights[x][z], Z: v * Size}
			data.Positions = append(data.Positions, p.X, p.Y, p.Z)
			data.UVs = append(data.UVs, u, v)

			nrm := h.normalAt(x, z)
			data.Normals = append(data.Normals, nrm.X, nrm.Y, nrm.Z)

			if l := p.Length(); l > data.FurthestPoint {
				data.FurthestPoint = l
			}
		}
	}

	for z := range n - 1 {
		for x := range n - 1 {
			topLeft := uint32(z*n + x)
			topRight := topLeft + 1
			bottomLeft := uint32((z+1)*n + x)
			bottomRight := bottomLeft + 1
			data.Indices = append(data.Indices,
				topLeft, bottomLeft, topRight,
				topRight, bottomLeft, bottomRight)
		}
	}
	return data
}

// normalAt estimates the surface normal from the four neighbouring heights.
func (h *Heightfield) normalAt(x, z int) math.Vec3 {
	left := h.heightAtVertex(x-1, z)
	right := h.heightAtVertex(x+1, z)
	down := h.heightAtVertex(x, z-1)
	up := h.heightAtVertex(x, z+1)

	// Y is fixed at 2, so the length is never zero.
	n, _ := math.Vec3{X: left - right, Y: 2, Z: down - up}.Normalize()
	return n
}
