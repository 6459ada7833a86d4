package terrain

import (
	"errors"
	"image"
	"image/color"
	gomath "math"
	"testing"

	"github.com/Faultbox/lowpoly/internal/engine/gpu/gputest"
	"github.com/Faultbox/lowpoly/internal/engine/model"
	"github.com/Faultbox/lowpoly/pkg/math"
)

const eps = 1e-3

func approx(a, b, tol float32) bool {
	return float32(gomath.Abs(float64(a-b))) <= tol
}

// grayHeight is the height a gray pixel with luminance y maps to.
func grayHeight(y uint8) float32 {
	return PixelHeight(int32(-16777216 + int(y)*0x010101))
}

func solid(n int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, n, n))
	for x := range n {
		for z := range n {
			img.Set(x, z, c)
		}
	}
	return img
}

// ramp returns a 3x3 gray heightmap with distinct values per pixel.
func ramp() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 3, 3))
	for x := range 3 {
		for z := range 3 {
			img.SetGray(x, z, color.Gray{Y: uint8(40 + 20*x + 60*z)})
		}
	}
	return img
}

func TestPixelHeight(t *testing.T) {
	tests := []struct {
		name string
		argb int32
		want float32
	}{
		{"black", -16777216, -MaxHeight},
		{"half range", -MaxPixelColor / 2, 0},
		{"white", -1, MaxHeight - MaxHeight/float32(MaxPixelColor/2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PixelHeight(tt.argb); !approx(got, tt.want, eps) {
				t.Errorf("PixelHeight(%d) = %v, want %v", tt.argb, got, tt.want)
			}
		})
	}
}

func TestReadHeightsErrors(t *testing.T) {
	if _, err := ReadHeights(image.NewGray(image.Rect(0, 0, 4, 3))); !errors.Is(err, ErrNotSquare) {
		t.Errorf("expected ErrNotSquare, got %v", err)
	}
	if _, err := ReadHeights(image.NewGray(image.Rect(0, 0, 1, 1))); !errors.Is(err, ErrTooSmall) {
		t.Errorf("expected ErrTooSmall, got %v", err)
	}
}

func TestFlatHeightmap(t *testing.T) {
	// 0x800000 sits exactly at half the color range.
	field, err := NewHeightfield(0, 0, solid(2, color.RGBA{R: 0x80, A: 255}))
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range [][2]float32{{0, 0}, {10, 10}, {400, 300}, {799, 1}, {1, 799}} {
		if got := field.HeightAt(p[0], p[1]); got != 0 {
			t.Errorf("HeightAt(%v) = %v, want 0", p, got)
		}
	}

	// Mid-gray lands within one gray step of zero.
	step := grayHeight(1) - grayHeight(0)
	gray, err := NewHeightfield(0, 0, solid(2, color.Gray{Y: 0x80}))
	if err != nil {
		t.Fatal(err)
	}
	if got := gray.HeightAt(400, 400); !approx(got, 0, step) {
		t.Errorf("mid-gray HeightAt = %v, want within %v of 0", got, step)
	}
}

func TestHeightAtVertices(t *testing.T) {
	field, err := NewHeightfield(0, 0, ramp())
	if err != nil {
		t.Fatal(err)
	}
	cell := float32(Size) / 2

	for x := range 2 {
		for z := range 2 {
			want := grayHeight(uint8(40 + 20*x + 60*z))
			got := field.HeightAt(float32(x)*cell, float32(z)*cell)
			if !approx(got, want, eps) {
				t.Errorf("HeightAt vertex (%d,%d) = %v, want %v", x, z, got, want)
			}
		}
	}

	// Approaching the far edge converges to the edge vertex.
	if got, want := field.HeightAt(Size-0.001, 0), grayHeight(80); !approx(got, want, 0.01) {
		t.Errorf("HeightAt near edge = %v, want %v", got, want)
	}
}

func TestHeightAtInterpolates(t *testing.T) {
	field, err := NewHeightfield(0, 0, ramp())
	if err != nil {
		t.Fatal(err)
	}
	h := field.Heights()

	// Midpoint of the diagonal is the average of its two ends.
	got := field.HeightAt(200, 200)
	want := (h[1][0] + h[0][1]) / 2
	if !approx(got, want, eps) {
		t.Errorf("HeightAt diagonal midpoint = %v, want %v", got, want)
	}

	// A point in the lower-right triangle only depends on its corners.
	got = field.HeightAt(300, 300)
	want = BarycentricHeight(
		math.Vec3{X: 1, Y: h[1][0], Z: 0},
		math.Vec3{X: 1, Y: h[1][1], Z: 1},
		math.Vec3{X: 0, Y: h[0][1], Z: 1},
		math.Vec2{X: 0.75, Y: 0.75})
	if !approx(got, want, eps) {
		t.Errorf("HeightAt lower triangle = %v, want %v", got, want)
	}
}

func TestHeightAtOutside(t *testing.T) {
	field, err := NewHeightfield(0, -1, solid(3, color.Gray{Y: 255}))
	if err != nil {
		t.Fatal(err)
	}

	if got := field.HeightAt(400, -400); got == 0 {
		t.Error("expected non-zero height inside the tile")
	}
	for _, p := range [][2]float32{{-1, -400}, {400, 1}, {Size, -400}, {400, -Size - 1}, {5000, 5000}} {
		if got := field.HeightAt(p[0], p[1]); got != 0 {
			t.Errorf("HeightAt(%v) = %v, want 0", p, got)
		}
	}
}

func TestBarycentricHeight(t *testing.T) {
	p1 := math.Vec3{X: 0, Y: 3, Z: 0}
	p2 := math.Vec3{X: 1, Y: 6, Z: 0}
	p3 := math.Vec3{X: 0, Y: 9, Z: 1}

	tests := []struct {
		pos  math.Vec2
		want float32
	}{
		{math.Vec2{X: 0, Y: 0}, 3},
		{math.Vec2{X: 1, Y: 0}, 6},
		{math.Vec2{X: 0, Y: 1}, 9},
		{math.Vec2{X: 1.0 / 3, Y: 1.0 / 3}, 6},
	}
	for _, tt := range tests {
		if got := BarycentricHeight(p1, p2, p3, tt.pos); !approx(got, tt.want, eps) {
			t.Errorf("BarycentricHeight(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestBuildMesh(t *testing.T) {
	field, err := NewHeightfield(0, 0, ramp())
	if err != nil {
		t.Fatal(err)
	}
	data := field.BuildMesh()

	if data.VertexCount() != 9 {
		t.Fatalf("VertexCount = %d, want 9", data.VertexCount())
	}
	if len(data.Indices) != 24 {
		t.Fatalf("len(Indices) = %d, want 24", len(data.Indices))
	}
	wantFirst := []uint32{0, 3, 1, 1, 3, 4}
	for i, want := range wantFirst {
		if data.Indices[i] != want {
			t.Errorf("Indices[%d] = %d, want %d", i, data.Indices[i], want)
		}
	}
	for i, idx := range data.Indices {
		if int(idx) >= data.VertexCount() {
			t.Errorf("Indices[%d] = %d out of range", i, idx)
		}
	}

	// Slot 5 is column 2, row 1.
	x, y, z := data.Positions[15], data.Positions[16], data.Positions[17]
	if x != Size || z != Size/2 || !approx(y, grayHeight(40+40+60), eps) {
		t.Errorf("vertex 5 = (%v,%v,%v)", x, y, z)
	}
	if u, v := data.UVs[10], data.UVs[11]; u != 1 || v != 0.5 {
		t.Errorf("uv 5 = (%v,%v), want (1,0.5)", u, v)
	}
	if data.FurthestPoint < Size {
		t.Errorf("FurthestPoint = %v, want at least %v", data.FurthestPoint, Size)
	}
}

func TestBuildMeshFlatNormals(t *testing.T) {
	field, err := NewHeightfield(0, 0, solid(3, color.RGBA{R: 0x80, A: 255}))
	if err != nil {
		t.Fatal(err)
	}
	data := field.BuildMesh()
	for i := 0; i < len(data.Normals); i += 3 {
		n := math.Vec3{X: data.Normals[i], Y: data.Normals[i+1], Z: data.Normals[i+2]}
		if !approx(n.X, 0, eps) || !approx(n.Y, 1, eps) || !approx(n.Z, 0, eps) {
			t.Errorf("normal %d = %v, want (0,1,0)", i/3, n)
		}
	}
}

func TestHeightsReturnsCopy(t *testing.T) {
	field, err := NewHeightfield(0, 0, ramp())
	if err != nil {
		t.Fatal(err)
	}
	before := field.HeightAt(0, 0)

	h := field.Heights()
	h[0][0] = 1000

	if got := field.HeightAt(0, 0); got != before {
		t.Errorf("HeightAt changed after mutating copy: %v -> %v", before, got)
	}
}

func TestNew(t *testing.T) {
	rec := gputest.NewRecorder()
	loader := model.NewLoader(rec)
	pack := model.TerrainTexturePack{Background: model.Texture{ID: 1}}

	tr, err := New(0, -1, ramp(), pack, model.Texture{ID: 5}, loader)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tr.Mesh().VertexCount != 24 {
		t.Errorf("mesh index count = %d, want 24", tr.Mesh().VertexCount)
	}
	if tr.BlendMap().ID != 5 || tr.Textures().Background.ID != 1 {
		t.Error("textures not kept")
	}
	if got := tr.ModelMatrix().Translation(); got != (math.Vec3{X: 0, Y: 0, Z: -Size}) {
		t.Errorf("ModelMatrix translation = %v", got)
	}

	if _, err := New(0, 0, image.NewGray(image.Rect(0, 0, 2, 3)), pack, model.Texture{}, loader); !errors.Is(err, ErrNotSquare) {
		t.Errorf("expected ErrNotSquare, got %v", err)
	}
}
