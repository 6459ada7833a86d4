package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func tgaHeaderBytes(imageType byte, w, h int, bpp byte, topToBottom bool) []byte {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	if topToBottom {
		hdr[17] = 0x20
	}
	return hdr
}

func TestDecodeTGAUncompressed(t *testing.T) {
	// 2x2, bottom-up, 24-bit BGR
	data := tgaHeaderBytes(TGATypeUncompressed, 2, 2, 24, false)
	data = append(data,
		0, 0, 255, 0, 255, 0, // bottom row: red, green
		255, 0, 0, 255, 255, 255, // top row: blue, white
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 1, color.RGBA{255, 0, 0, 255}},
		{1, 1, color.RGBA{0, 255, 0, 255}},
		{0, 0, color.RGBA{0, 0, 255, 255}},
		{1, 0, color.RGBA{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDecodeTGARLE(t *testing.T) {
	// 3x1, top-down, 32-bit: one run of 2 plus one raw pixel
	data := tgaHeaderBytes(TGATypeRLE, 3, 1, 32, true)
	data = append(data,
		0x81, 10, 20, 30, 40, // run of 2
		0x00, 1, 2, 3, 4, // raw packet with 1 pixel
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{30, 20, 10, 40}) {
		t.Errorf("run pixel = %v", got)
	}
	if got := img.RGBAAt(2, 0); got != (color.RGBA{3, 2, 1, 4}) {
		t.Errorf("raw pixel = %v", got)
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"color mapped", func() []byte {
			d := tgaHeaderBytes(TGATypeUncompressed, 1, 1, 24, false)
			d[1] = 1
			return d
		}()},
		{"grayscale type", tgaHeaderBytes(3, 1, 1, 8, false)},
		{"16 bit", tgaHeaderBytes(TGATypeUncompressed, 1, 1, 16, false)},
		{"missing pixels", tgaHeaderBytes(TGATypeUncompressed, 2, 2, 24, false)},
		{"missing run", tgaHeaderBytes(TGATypeRLE, 2, 2, 24, false)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := DecodeTGA(tgaHeaderBytes(TGATypeRLE, 2, 2, 24, false)); !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}

func TestLoadFormats(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.Set(1, 0, color.NRGBA{200, 100, 50, 255})

	dir := t.TempDir()
	var pngBuf, bmpBuf bytes.Buffer
	if err := png.Encode(&pngBuf, src); err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(&bmpBuf, src); err != nil {
		t.Fatal(err)
	}

	for name, data := range map[string][]byte{"a.png": pngBuf.Bytes(), "a.bmp": bmpBuf.Bytes()} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatal(err)
		}
		img, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s): %v", name, err)
		}
		if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
			t.Errorf("%s: bounds %v", name, img.Bounds())
		}
		if got := img.RGBAAt(1, 0); got != (color.RGBA{200, 100, 50, 255}) {
			t.Errorf("%s: pixel = %v", name, got)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load("heightmap.gif"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestToRGBAOffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 7))
	src.SetRGBA(5, 5, color.RGBA{1, 2, 3, 255})

	got := ToRGBA(src)
	if got.Bounds().Min != (image.Point{}) {
		t.Fatalf("bounds not at origin: %v", got.Bounds())
	}
	if c := got.RGBAAt(0, 0); c != (color.RGBA{1, 2, 3, 255}) {
		t.Errorf("pixel = %v", c)
	}
}

func TestPackedARGB(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1, 2))
	img.SetGray(0, 0, color.Gray{Y: 0})
	img.SetGray(0, 1, color.Gray{Y: 255})

	if got := PackedARGB(img, 0, 0); got != -16777216 {
		t.Errorf("black = %d, want %d", got, -16777216)
	}
	if got := PackedARGB(img, 0, 1); got != -1 {
		t.Errorf("white = %d, want -1", got)
	}
}
