package scene

import "github.com/Faultbox/lowpoly/internal/engine/model"

// batchKey identifies instances that can share mesh and material binds.
type batchKey struct {
	mesh     *model.RawMesh
	material *model.Material
}

// Batch is every instance of one mesh drawn with one material.
type Batch struct {
	Mesh      *model.RawMesh
	Material  *model.Material
	Instances []Renderable
}

// batchList groups renderables by mesh and material in first-seen order.
type batchList struct {
	index   map[batchKey]int
	batches []*Batch
}

func newBatchList() *batchList {
	return &batchList{index: make(map[batchKey]int)}
}

func (l *batchList) add(r Renderable) {
	m := r.Model()
	if m == nil || m.Mesh == nil || m.Material == nil {
		return
	}
	key := batchKey{mesh: m.Mesh, material: m.Material}
	i, ok := l.index[key]
	if !ok {
		i = len(l.batches)
		l.index[key] = i
		l.batches = append(l.batches, &Batch{Mesh: m.Mesh, Material: m.Material})
	}
	l.batches[i].Instances = append(l.batches[i].Instances, r)
}

func (l *batchList) reset() {
	clear(l.index)
	l.batches = l.batches[:0]
}
