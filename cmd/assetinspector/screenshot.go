package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// captureScreenshot writes the front buffer to a timestamped PNG.
func (app *App) captureScreenshot() {
	// DisplaySize is in logical pixels.
	io := imgui.CurrentIO()
	displaySize := io.DisplaySize()
	fbScale := io.DisplayFramebufferScale()
	width := int(displaySize.X * fbScale.X)
	height := int(displaySize.Y * fbScale.Y)
	if width <= 0 || height <= 0 {
		app.showNotice("Screenshot failed: invalid viewport")
		return
	}

	gl.ReadBuffer(gl.FRONT)
	pixels := make([]byte, width*height*4)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.ReadBuffer(gl.BACK)

	img := flipRows(pixels, width, height)

	name := fmt.Sprintf("screenshot-%s.png", time.Now().Format("20060102-150405"))
	path := filepath.Join(app.screenshotDir, name)
	if err := writePNG(path, img); err != nil {
		app.showNotice(fmt.Sprintf("Screenshot failed: %v", err))
		return
	}
	app.showNotice("Saved: " + path)
}

// flipRows turns bottom-up RGBA rows into an image with a top-left origin.
func flipRows(pixels []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	stride := width * 4
	for y := range height {
		src := pixels[(height-1-y)*stride : (height-y)*stride]
		copy(img.Pix[y*img.Stride:y*img.Stride+stride], src)
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
