// Package scene draws a frame: lit entities batched by mesh and material,
// terrain tiles, the day/night skybox and the 2D overlay.
package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/lowpoly/internal/engine/gpu"
	"github.com/Faultbox/lowpoly/internal/engine/lighting"
	"github.com/Faultbox/lowpoly/internal/engine/model"
	"github.com/Faultbox/lowpoly/internal/engine/shader"
	"github.com/Faultbox/lowpoly/internal/engine/terrain"
	"github.com/Faultbox/lowpoly/internal/logger"
	"github.com/Faultbox/lowpoly/pkg/math"
)

// Config contains the projection and clear color of the renderer.
type Config struct {
	FOV      float32 // vertical, degrees
	Near     float32
	Far      float32
	SkyColor math.Vec3
}

// DefaultConfig returns the standard projection and sky color.
func DefaultConfig() Config {
	return Config{
		FOV:      70,
		Near:     0.1,
		Far:      1000,
		SkyColor: math.Vec3{X: 0.5444, Y: 0.62, Z: 0.69},
	}
}

// Renderable is anything the entity pass can draw.
type Renderable interface {
	Model() *model.TexturedModel
	ModelMatrix() math.Mat4
	AtlasOffset() math.Vec2
}

// Viewer supplies the view transform for a frame.
type Viewer interface {
	ViewMatrix() math.Mat4
}

// Skyboxes holds the two cubemaps the sky cycles between.
type Skyboxes struct {
	Day, Night model.Texture
}

// MasterRenderer owns the four passes and the per-frame submission lists.
type MasterRenderer struct {
	config     Config
	device     gpu.Device
	sources    shader.Sources
	projection math.Mat4

	entityShader  *shader.EntityShader
	terrainShader *shader.TerrainShader

	entities *EntityRenderer
	terrains *TerrainRenderer
	skybox   *SkyboxRenderer
	gui      *GUIRenderer

	batches      *batchList
	terrainQueue []*terrain.Terrain
	guiQueue     []GUITexture

	log *zap.Logger
}

// NewMasterRenderer compiles every program and uploads the shared
// geometry. aspect is the surface width over height.
func NewMasterRenderer(device gpu.Device, loader *model.Loader, src shader.Sources, cfg Config, aspect float32, sky Skyboxes) (*MasterRenderer, error) {
	projection, err := math.ProjectionMatrix(cfg.FOV, aspect, cfg.Near, cfg.Far)
	if err != nil {
		return nil, fmt.Errorf("building projection: %w", err)
	}

	r := &MasterRenderer{
		config:     cfg,
		device:     device,
		sources:    src,
		projection: projection,
		batches:    newBatchList(),
		log:        logger.Named("renderer"),
	}

	if r.entityShader, err = shader.NewEntityShader(device, src); err != nil {
		return nil, err
	}
	if r.terrainShader, err = shader.NewTerrainShader(device, src); err != nil {
		r.entityShader.Delete()
		return nil, err
	}
	r.entities = NewEntityRenderer(device, r.entityShader, projection)
	r.terrains = NewTerrainRenderer(device, r.terrainShader, projection)

	if r.skybox, err = NewSkyboxRenderer(device, loader, src, projection, sky); err != nil {
		r.entityShader.Delete()
		r.terrainShader.Delete()
		return nil, err
	}
	if r.gui, err = NewGUIRenderer(device, loader, src); err != nil {
		r.entityShader.Delete()
		r.terrainShader.Delete()
		r.skybox.Destroy()
		return nil, err
	}

	device.SetCulling(true)
	r.log.Info("renderer ready",
		zap.Float32("fov", cfg.FOV),
		zap.Float32("aspect", aspect))
	return r, nil
}

// Projection returns the current projection matrix.
func (r *MasterRenderer) Projection() math.Mat4 {
	return r.projection
}

// Skybox returns the sky pass, whose clock drives the day/night cycle.
func (r *MasterRenderer) Skybox() *SkyboxRenderer {
	return r.skybox
}

// ProcessEntity queues an entity for this frame.
func (r *MasterRenderer) ProcessEntity(e Renderable) {
	r.batches.add(e)
}

// ProcessTerrain queues a terrain tile for this frame.
func (r *MasterRenderer) ProcessTerrain(t *terrain.Terrain) {
	r.terrainQueue = append(r.terrainQueue, t)
}

// ProcessGUI queues an overlay element for this frame.
func (r *MasterRenderer) ProcessGUI(g GUITexture) {
	r.guiQueue = append(r.guiQueue, g)
}

// Render draws everything queued since the last frame, in order: entities,
// terrain, sky, overlay. The queues are empty afterwards.
func (r *MasterRenderer) Render(lights []lighting.Light, viewer Viewer, dt float32) {
	r.prepare()
	view := viewer.ViewMatrix()

	r.entityShader.Start()
	r.entityShader.LoadSkyColor(r.config.SkyColor)
	r.entityShader.LoadLights(lights)
	r.entityShader.LoadViewMatrix(view)
	r.entities.Render(r.batches.batches)
	r.entityShader.Stop()

	r.terrainShader.Start()
	r.terrainShader.LoadSkyColor(r.config.SkyColor)
	r.terrainShader.LoadLights(lights)
	r.terrainShader.LoadViewMatrix(view)
	r.terrains.Render(r.terrainQueue)
	r.terrainShader.Stop()

	r.skybox.Render(view, r.config.SkyColor, dt)
	r.gui.Render(r.guiQueue)

	r.batches.reset()
	r.terrainQueue = r.terrainQueue[:0]
	r.guiQueue = r.guiQueue[:0]
}

func (r *MasterRenderer) prepare() {
	r.device.SetDepthTest(true)
	r.device.Clear(r.config.SkyColor.X, r.config.SkyColor.Y, r.config.SkyColor.Z)
}

// Resize updates the viewport and projection for a new surface size and
// returns the new projection.
func (r *MasterRenderer) Resize(width, height int) (math.Mat4, error) {
	if width <= 0 || height <= 0 {
		return r.projection, fmt.Errorf("resizing to %dx%d: invalid size", width, height)
	}
	projection, err := math.ProjectionMatrix(r.config.FOV, float32(width)/float32(height), r.config.Near, r.config.Far)
	if err != nil {
		return r.projection, fmt.Errorf("building projection: %w", err)
	}

	r.projection = projection
	r.device.Viewport(width, height)
	r.entities.SetProjection(projection)
	r.terrains.SetProjection(projection)
	r.skybox.SetProjection(projection)

	r.log.Debug("viewport resized", zap.Int("width", width), zap.Int("height", height))
	return projection, nil
}

// ReloadShaders recompiles the named programs from the configured sources.
// A program that fails to compile is logged and keeps running its previous
// version; the first such error is returned.
func (r *MasterRenderer) ReloadShaders(names ...string) error {
	var firstErr error
	fail := func(name string, err error) {
		r.log.Error("shader reload failed", zap.String("program", name), zap.Error(err))
		if firstErr == nil {
			firstErr = err
		}
	}

	for _, name := range names {
		switch name {
		case shader.EntityProgram:
			s, err := shader.NewEntityShader(r.device, r.sources)
			if err != nil {
				fail(name, err)
				continue
			}
			r.entityShader.Delete()
			r.entityShader = s
			r.entities.SetShader(s, r.projection)
		case shader.TerrainProgram:
			s, err := shader.NewTerrainShader(r.device, r.sources)
			if err != nil {
				fail(name, err)
				continue
			}
			r.terrainShader.Delete()
			r.terrainShader = s
			r.terrains.SetShader(s, r.projection)
		case shader.SkyboxProgram:
			if err := r.skybox.Reload(r.sources, r.projection); err != nil {
				fail(name, err)
				continue
			}
		case shader.GUIProgram:
			if err := r.gui.Reload(r.sources); err != nil {
				fail(name, err)
				continue
			}
		default:
			r.log.Debug("ignoring change to unknown program", zap.String("program", name))
			continue
		}
		r.log.Info("shader reloaded", zap.String("program", name))
	}
	return firstErr
}

// Destroy deletes every program. Geometry and textures belong to the loader.
func (r *MasterRenderer) Destroy() {
	r.entityShader.Delete()
	r.terrainShader.Delete()
	r.skybox.Destroy()
	r.gui.Destroy()
}
