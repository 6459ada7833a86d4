// Package game wires the engine together and runs the main loop.
package game

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/lowpoly/internal/config"
	"github.com/Faultbox/lowpoly/internal/engine/audio"
	"github.com/Faultbox/lowpoly/internal/engine/camera"
	"github.com/Faultbox/lowpoly/internal/engine/frame"
	"github.com/Faultbox/lowpoly/internal/engine/gpu"
	"github.com/Faultbox/lowpoly/internal/engine/input"
	"github.com/Faultbox/lowpoly/internal/engine/model"
	"github.com/Faultbox/lowpoly/internal/engine/picking"
	"github.com/Faultbox/lowpoly/internal/engine/scene"
	"github.com/Faultbox/lowpoly/internal/engine/shader"
	"github.com/Faultbox/lowpoly/internal/engine/window"
	"github.com/Faultbox/lowpoly/internal/game/world"
	"github.com/Faultbox/lowpoly/internal/logger"
)

// Title is the window title.
const Title = "Lowpoly"

// Game is the main game instance.
type Game struct {
	cfg     *config.Config
	running bool

	window  *window.Window
	input   *input.Input
	clock   *frame.Clock
	loader  *model.Loader
	audio   *audio.Manager
	watcher *shader.Watcher

	session

	log *zap.Logger
}

// sceneConfig maps the graphics settings onto the renderer config.
func sceneConfig(g config.GraphicsConfig) scene.Config {
	cfg := scene.DefaultConfig()
	cfg.FOV = g.FOV
	cfg.Near = g.NearPlane
	cfg.Far = g.FarPlane
	return cfg
}

// New opens the window, loads the world and prepares every subsystem.
// Audio and shader watching are optional and only log on failure.
func New(cfg *config.Config) (_ *Game, err error) {
	g := &Game{
		cfg:   cfg,
		input: input.New(),
		log:   logger.Named("game"),
	}
	defer func() {
		if err != nil {
			g.Close()
		}
	}()

	g.log.Info("initializing game",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height))

	// OpenGL context must exist before the device
	if g.window, err = window.New(window.ConfigFrom(Title, cfg.Graphics)); err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	var device *gpu.GL
	if device, err = gpu.NewGL(); err != nil {
		return nil, fmt.Errorf("failed to init OpenGL: %w", err)
	}
	g.loader = model.NewLoader(device)

	if g.world, err = world.Build(cfg, g.loader); err != nil {
		return nil, fmt.Errorf("failed to build world: %w", err)
	}

	src := shader.Sources{Dir: cfg.Assets.ShaderDir}
	if src.Dir != "" {
		// Seed the override dir with any sources it is missing.
		if err = shader.Export(src.Dir); err != nil {
			return nil, fmt.Errorf("failed to export shaders: %w", err)
		}
	}
	if g.renderer, err = scene.NewMasterRenderer(device, g.loader, src, sceneConfig(cfg.Graphics), frame.Aspect(g.window), g.world.Sky); err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	if g.picker, err = picking.NewMousePicker(g.renderer.Projection()); err != nil {
		return nil, fmt.Errorf("failed to create mouse picker: %w", err)
	}
	if err = g.resize(g.window.Size()); err != nil {
		return nil, err
	}
	g.camera = camera.NewFromConfig(cfg.Camera)

	g.initAudio()
	g.initWatcher()

	g.log.Info("game initialized successfully")
	return g, nil
}

func (g *Game) initAudio() {
	if !g.cfg.Audio.Enabled {
		return
	}
	m := audio.New(g.cfg.Audio)
	if err := m.LoadAmbience(g.cfg.AssetPath(g.cfg.Audio.DayTrack), g.cfg.AssetPath(g.cfg.Audio.NightTrack)); err != nil {
		g.log.Warn("ambience disabled", zap.Error(err))
		m.Close()
		return
	}
	if err := m.Init(); err != nil {
		g.log.Warn("audio disabled", zap.Error(err))
		m.Close()
		return
	}
	g.audio = m
	g.ambience = m
}

func (g *Game) initWatcher() {
	if !g.cfg.Assets.WatchShaders || g.cfg.Assets.ShaderDir == "" {
		return
	}
	w, err := shader.NewWatcher(g.cfg.Assets.ShaderDir)
	if err != nil {
		g.log.Warn("shader hot reload disabled", zap.Error(err))
		return
	}
	g.watcher = w
}

// Run drives the loop until the window closes or Escape is pressed.
func (g *Game) Run() error {
	g.running = true
	g.clock = frame.NewClock()

	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting game loop")

	for g.running {
		dt := g.clock.Tick()

		if g.input.Update() || g.input.KeyDown(sdl.SCANCODE_ESCAPE) {
			g.running = false
			break
		}
		if w, h, ok := g.input.Resized(); ok {
			g.log.Debug("window resized", zap.Int("width", w), zap.Int("height", h))
			if err := g.resize(g.window.Size()); err != nil {
				g.log.Warn("resize ignored", zap.Error(err))
			}
		}
		g.reloadShaders()

		x, y := g.input.Cursor()
		if err := g.update(dt, controlsFrom(g.input.KeyDown), g.input.Mouse(), x, y, g.window); err != nil {
			return fmt.Errorf("update error: %w", err)
		}
		g.draw(dt)
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.log.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			if g.cfg.Graphics.ShowDebug {
				g.window.SetTitle(g.debugTitle(frameCount))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (g *Game) reloadShaders() {
	if g.watcher == nil {
		return
	}
	if names := g.watcher.Pending(); len(names) > 0 {
		// failures keep the previous program and are already logged
		_ = g.renderer.ReloadShaders(names...)
	}
}

func (g *Game) debugTitle(fps int) string {
	title := fmt.Sprintf("%s | %d fps | day %.2f", Title, fps, g.renderer.Skybox().DayAmount())
	if g.hoverOK {
		title += fmt.Sprintf(" | terrain %.1f %.1f %.1f", g.hover.X, g.hover.Y, g.hover.Z)
	}
	return title
}

// Close releases everything New created, in reverse order. It is safe on a
// partially initialized game.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.watcher != nil {
		g.watcher.Close()
	}
	if g.audio != nil {
		g.audio.Close()
	}
	if g.renderer != nil {
		g.renderer.Destroy()
	}
	if g.loader != nil {
		g.loader.Destroy()
	}
	if g.window != nil {
		g.window.Close()
	}
}
