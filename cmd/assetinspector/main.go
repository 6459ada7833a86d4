// Asset Inspector - checks models and heightmaps before they go into the world.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/sqweek/dialog"
)

func main() {
	runtime.LockOSThread()

	assetPath := flag.String("file", "", "Model or heightmap to open")
	shotDir := flag.String("screenshots", filepath.Join(os.TempDir(), "assetinspector"), "Directory for F12 screenshots")
	flag.Parse()

	app := NewApp(*shotDir)
	defer app.Close()

	if *assetPath != "" {
		app.open(*assetPath)
	}

	app.Run()
}

// App holds the inspector window state.
type App struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]

	current    *asset
	previewTex *backend.Texture
	zoom       float32

	// Height query, in tile coordinates.
	queryX, queryZ float32

	mu          sync.Mutex
	pendingPath string // set by the file dialog goroutine

	screenshotDir       string
	screenshotRequested bool
	notice              string
	noticeTime          time.Time
}

// NewApp creates the window and the imgui context.
func NewApp(screenshotDir string) *App {
	app := &App{
		zoom:          1.0,
		screenshotDir: screenshotDir,
	}

	if err := os.MkdirAll(app.screenshotDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create screenshot dir: %v\n", err)
	}

	var err error
	app.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		panic(fmt.Sprintf("failed to create backend: %v", err))
	}
	app.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	app.backend.CreateWindow("Asset Inspector", 1100, 720)

	// Screenshots read the framebuffer directly.
	if err := gl.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: OpenGL init failed (screenshots disabled): %v\n", err)
	}

	return app
}

// Close releases the preview texture.
func (app *App) Close() {
	app.clearPreview()
}

// Run starts the main loop.
func (app *App) Run() {
	app.backend.Run(app.render)
}

func (app *App) openFileDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("Models", "obj", "gltf", "glb").
			Filter("Heightmaps", "png", "bmp", "tga", "jpg").
			Filter("All Files", "*").
			Title("Open Asset").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				fmt.Fprintf(os.Stderr, "File dialog error: %v\n", err)
			}
			return
		}

		app.mu.Lock()
		app.pendingPath = filename
		app.mu.Unlock()
	}()
}

func (app *App) takePending() string {
	app.mu.Lock()
	defer app.mu.Unlock()
	path := app.pendingPath
	app.pendingPath = ""
	return path
}

// open loads an asset, replacing the current one. Failures are shown in
// a message box and leave the previous asset in place.
func (app *App) open(path string) {
	a, err := loadAsset(path)
	if err != nil {
		dialog.Message("%s", err).Title("Cannot open asset").Error()
		return
	}

	app.clearPreview()
	app.current = a
	app.zoom = 1.0
	app.queryX, app.queryZ = 0, 0
	if a.preview != nil {
		app.previewTex = backend.NewTextureFromRgba(a.preview)
	}
	app.backend.SetWindowTitle(fmt.Sprintf("Asset Inspector - %s", filepath.Base(path)))
}

func (app *App) clearPreview() {
	if app.previewTex != nil {
		app.previewTex.Release()
		app.previewTex = nil
	}
}

func (app *App) render() {
	// Captured at frame start so the previous frame is on screen.
	if app.screenshotRequested {
		app.screenshotRequested = false
		app.captureScreenshot()
	}

	if path := app.takePending(); path != "" {
		app.open(path)
	}

	if imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyF12)) {
		app.screenshotRequested = true
	}

	if imgui.BeginMainMenuBar() {
		if imgui.BeginMenu("File") {
			if imgui.MenuItemBool("Open...") {
				app.openFileDialog()
			}
			imgui.Separator()
			if imgui.MenuItemBool("Exit") {
				os.Exit(0)
			}
			imgui.EndMenu()
		}
		imgui.EndMainMenuBar()
	}

	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()

	infoWidth := float32(320)
	statusBarHeight := float32(30)
	contentHeight := workSize.Y - statusBarHeight

	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(workPos)
	imgui.SetNextWindowSize(imgui.NewVec2(infoWidth, contentHeight))
	if imgui.BeginV("Details", nil, flags) {
		app.renderDetails()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+infoWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X-infoWidth, contentHeight))
	if imgui.BeginV("Preview", nil, flags) {
		app.renderPreview()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X, workPos.Y+contentHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X, statusBarHeight))
	statusFlags := flags | imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoScrollbar
	if imgui.BeginV("##StatusBar", nil, statusFlags) {
		app.renderStatusBar()
	}
	imgui.End()

	if app.notice != "" && time.Since(app.noticeTime) < 2*time.Second {
		notifyFlags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
			imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
			imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoFocusOnAppearing
		imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+10, workPos.Y+10))
		imgui.SetNextWindowBgAlpha(0.85)
		if imgui.BeginV("##Notice", nil, notifyFlags) {
			imgui.Text(app.notice)
		}
		imgui.End()
	}
}

func (app *App) renderDetails() {
	a := app.current
	if a == nil {
		imgui.TextDisabled("No asset loaded")
		imgui.TextDisabled("Use File > Open...")
		return
	}

	imgui.Text("File: " + filepath.Base(a.path))
	imgui.Separator()

	switch a.kind {
	case kindModel:
		s := a.model
		imgui.Text(fmt.Sprintf("Vertices: %d", s.Vertices))
		imgui.Text(fmt.Sprintf("Triangles: %d", s.Triangles))
		imgui.Text(fmt.Sprintf("Furthest point: %.3f", s.FurthestPoint))
		imgui.Text(fmt.Sprintf("Min: (%.2f, %.2f, %.2f)", s.Min.X, s.Min.Y, s.Min.Z))
		imgui.Text(fmt.Sprintf("Max: (%.2f, %.2f, %.2f)", s.Max.X, s.Max.Y, s.Max.Z))
	case kindHeightmap:
		s := a.height
		imgui.Text(fmt.Sprintf("Vertices per side: %d", s.VertexCount))
		imgui.Text(fmt.Sprintf("Height range: %.2f to %.2f", s.Min, s.Max))
		imgui.Text(fmt.Sprintf("Mean height: %.2f", s.Mean))
		imgui.Separator()

		imgui.Text("Height query")
		imgui.SliderFloatV("X##query", &app.queryX, 0, tileSize, "%.1f", imgui.SliderFlagsNone)
		imgui.SliderFloatV("Z##query", &app.queryZ, 0, tileSize, "%.1f", imgui.SliderFlagsNone)
		imgui.Text(fmt.Sprintf("Height: %.3f", queryHeight(a, app.queryX, app.queryZ)))
	}
}

func (app *App) renderPreview() {
	a := app.current
	if a == nil || a.kind != kindHeightmap || app.previewTex == nil {
		imgui.TextDisabled("Heightmaps show a height preview here")
		return
	}

	if imgui.Button("-##zoom") && app.zoom > 0.25 {
		app.zoom -= 0.25
	}
	imgui.SameLine()
	imgui.Text(fmt.Sprintf("%.0f%%", app.zoom*100))
	imgui.SameLine()
	if imgui.Button("+##zoom") && app.zoom < 8 {
		app.zoom += 0.25
	}
	imgui.SameLine()
	if imgui.Button("Fit##zoom") {
		avail := imgui.ContentRegionAvail()
		n := float32(a.preview.Bounds().Dx())
		app.zoom = max(min(avail.X, avail.Y)/n, 0.1)
	}
	imgui.Separator()

	side := float32(a.preview.Bounds().Dx()) * app.zoom
	if imgui.BeginChildStrV("HeightView", imgui.NewVec2(0, 0), imgui.ChildFlagsBorders, imgui.WindowFlagsHorizontalScrollbar) {
		imgui.ImageWithBgV(
			app.previewTex.ID,
			imgui.NewVec2(side, side),
			imgui.NewVec2(0, 0),
			imgui.NewVec2(1, 1),
			imgui.NewVec4(0.1, 0.1, 0.1, 1.0),
			imgui.NewVec4(1, 1, 1, 1),
		)
	}
	imgui.EndChild()
}

func (app *App) renderStatusBar() {
	if app.current == nil {
		imgui.Text("Ready | F12 screenshot")
		return
	}
	imgui.Text(fmt.Sprintf("%s | F12 screenshot to %s", app.current.path, app.screenshotDir))
}

func (app *App) showNotice(msg string) {
	app.notice = msg
	app.noticeTime = time.Now()
}
