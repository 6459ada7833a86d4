package main

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/lowpoly/internal/engine/terrain"
	"github.com/Faultbox/lowpoly/internal/engine/texture"
)

const triangleOBJ = `v 0 0 0
v 2 0 0
v 0 3 -1
vt 0 0
vn 0 0 1
f 1/1/1 2/1/1 3/1/1
`

func writeGray(t *testing.T, path string, w, h int, lum func(x, z int) uint8) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for x := range w {
		for z := range h {
			img.SetGray(x, z, color.Gray{Y: lum(x, z)})
		}
	}
	if err := writePNG(path, img); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestLoadModelStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.obj")
	if err := os.WriteFile(path, []byte(triangleOBJ), 0644); err != nil {
		t.Fatal(err)
	}

	a, err := loadAsset(path)
	if err != nil {
		t.Fatalf("loadAsset: %v", err)
	}
	if a.kind != kindModel {
		t.Fatalf("kind = %v, want model", a.kind)
	}
	s := a.model
	if s.Vertices != 3 || s.Triangles != 1 {
		t.Errorf("counts = %d vertices, %d triangles, want 3 and 1", s.Vertices, s.Triangles)
	}
	if s.Min.X != 0 || s.Min.Y != 0 || s.Min.Z != -1 {
		t.Errorf("min = %+v", s.Min)
	}
	if s.Max.X != 2 || s.Max.Y != 3 || s.Max.Z != 0 {
		t.Errorf("max = %+v", s.Max)
	}
	if s.FurthestPoint <= 3 {
		t.Errorf("furthest point = %v, want > 3", s.FurthestPoint)
	}
}

func TestLoadHeightmapStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "height.png")
	writeGray(t, path, 4, 4, func(x, z int) uint8 { return uint8(40 * (x + z)) })

	a, err := loadAsset(path)
	if err != nil {
		t.Fatalf("loadAsset: %v", err)
	}
	if a.kind != kindHeightmap {
		t.Fatalf("kind = %v, want heightmap", a.kind)
	}
	s := a.height
	if s.VertexCount != 4 {
		t.Errorf("vertex count = %d, want 4", s.VertexCount)
	}
	heights := a.field.Heights()
	if s.Min != heights[0][0] || s.Max != heights[3][3] {
		t.Errorf("range = [%v, %v], want [%v, %v]", s.Min, s.Max, heights[0][0], heights[3][3])
	}
	if !(s.Min < s.Mean && s.Mean < s.Max) {
		t.Errorf("mean %v outside (%v, %v)", s.Mean, s.Min, s.Max)
	}

	if got := a.preview.Bounds(); got.Dx() != 4 || got.Dy() != 4 {
		t.Fatalf("preview bounds = %v", got)
	}
	low := a.preview.RGBAAt(0, 0)
	high := a.preview.RGBAAt(3, 3)
	if low.B <= low.R {
		t.Errorf("lowest point should be blue, got %+v", low)
	}
	if high != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("highest point = %+v, want white", high)
	}
}

func TestFlatHeightmapUsesMidColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flat.png")
	writeGray(t, path, 3, 3, func(int, int) uint8 { return 128 })

	a, err := loadAsset(path)
	if err != nil {
		t.Fatalf("loadAsset: %v", err)
	}
	want := rampColor(0.5)
	for x := range 3 {
		for z := range 3 {
			if got := a.preview.RGBAAt(x, z); got != want {
				t.Fatalf("pixel (%d,%d) = %+v, want %+v", x, z, got, want)
			}
		}
	}

	img, err := texture.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	expected := terrain.PixelHeight(texture.PackedARGB(img, 0, 0))
	if got := queryHeight(a, 100, 250); got != expected {
		t.Errorf("queryHeight = %v, want %v", got, expected)
	}
	if got := queryHeight(a, tileSize+1, 0); got != 0 {
		t.Errorf("queryHeight off tile = %v, want 0", got)
	}
}

func TestLoadAssetErrors(t *testing.T) {
	dir := t.TempDir()

	notSquare := filepath.Join(dir, "wide.png")
	writeGray(t, notSquare, 4, 2, func(int, int) uint8 { return 0 })
	if _, err := loadAsset(notSquare); !errors.Is(err, terrain.ErrNotSquare) {
		t.Errorf("non-square heightmap: err = %v, want ErrNotSquare", err)
	}

	text := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(text, []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadAsset(text); !errors.Is(err, texture.ErrUnsupportedFormat) {
		t.Errorf("unknown extension: err = %v, want ErrUnsupportedFormat", err)
	}

	if _, err := loadAsset(filepath.Join(dir, "missing.obj")); err == nil {
		t.Error("missing model: expected error")
	}
}

func TestRampColorBands(t *testing.T) {
	tests := []struct {
		in   float32
		want color.RGBA
	}{
		{0, color.RGBA{R: 0, G: 50, B: 100, A: 255}},
		{0.25, color.RGBA{R: 20, G: 100, B: 200, A: 255}},
		{0.75, color.RGBA{R: 255, G: 255, B: 50, A: 255}},
		{1, color.RGBA{R: 255, G: 255, B: 255, A: 255}},
	}
	for _, tt := range tests {
		if got := rampColor(tt.in); got != tt.want {
			t.Errorf("rampColor(%v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestFlipRows(t *testing.T) {
	// Two rows, bottom row first as GL returns them.
	pixels := []byte{
		1, 1, 1, 255, 2, 2, 2, 255,
		9, 9, 9, 255, 8, 8, 8, 255,
	}
	img := flipRows(pixels, 2, 2)
	if got := img.RGBAAt(0, 0).R; got != 9 {
		t.Errorf("top-left = %d, want 9", got)
	}
	if got := img.RGBAAt(1, 1).R; got != 2 {
		t.Errorf("bottom-right = %d, want 2", got)
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.Set(1, 0, color.RGBA{R: 200, A: 255})
	if err := writePNG(path, src); err != nil {
		t.Fatalf("writePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r, _, _, _ := img.At(1, 0).RGBA(); r>>8 != 200 {
		t.Errorf("red = %d, want 200", r>>8)
	}
}
