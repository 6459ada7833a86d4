// Package texture decodes image files into RGBA pixel buffers ready for
// upload, and samples heightmaps.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp" // BMP decoder registration
)

// ErrUnsupportedFormat is returned for file extensions with no decoder.
var ErrUnsupportedFormat = errors.New("unsupported image format")

var supported = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".tga":  true,
}

// Load reads an image file and returns it as RGBA with the top row first.
func Load(path string) (*image.RGBA, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !supported[ext] {
		return nil, fmt.Errorf("loading %s: %w", path, ErrUnsupportedFormat)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}

	img, err := Decode(data, ext)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// Decode decodes raw image bytes. ext selects the TGA decoder, everything
// else goes through the registered image decoders.
func Decode(data []byte, ext string) (*image.RGBA, error) {
	if strings.EqualFold(ext, ".tga") {
		return DecodeTGA(data)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return ToRGBA(img), nil
}

// ToRGBA converts any image to *image.RGBA anchored at the origin.
// An RGBA input already at the origin is returned as is.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// PackedARGB returns the pixel at (x, y) as an opaque 0xAARRGGBB value
// reinterpreted as a signed 32-bit integer. Coordinates are relative to the
// image bounds.
func PackedARGB(img image.Image, x, y int) int32 {
	b := img.Bounds()
	c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
	return int32(uint32(0xFF)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B))
}
