// Package world assembles the demo scene: one terrain tile with scattered
// vegetation, three lamps, the player, the lights and the overlay.
package world

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/Faultbox/lowpoly/internal/config"
	"github.com/Faultbox/lowpoly/internal/engine/lighting"
	"github.com/Faultbox/lowpoly/internal/engine/model"
	"github.com/Faultbox/lowpoly/internal/engine/scene"
	"github.com/Faultbox/lowpoly/internal/engine/terrain"
	"github.com/Faultbox/lowpoly/internal/engine/texture"
	"github.com/Faultbox/lowpoly/internal/game/entity"
	"github.com/Faultbox/lowpoly/internal/logger"
	"github.com/Faultbox/lowpoly/pkg/formats"
	"github.com/Faultbox/lowpoly/pkg/math"
)

// Terrain tile placement.
const (
	TerrainGridX = 0
	TerrainGridZ = -1
)

// Instance scales per kind.
const (
	lowPolyTreeScale = 0.4
	treeScale        = 3
	grassScale       = 1
	flowerScale      = 1
	fernScale        = 0.6
	lampScale        = 1
	playerScale      = 0.3

	fernAtlasCells = 4
)

var (
	playerStart = math.Vec3{X: 400, Y: 5, Z: -150}
	playerYaw   = float32(180)

	lampPositions = [3]math.Vec3{
		{X: 185, Y: -4.7, Z: -293},
		{X: 370, Y: 4.2, Z: -300},
		{X: 293, Y: -6.8, Z: -305},
	}

	lampAttenuation = math.Vec3{X: 1, Y: 0.01, Z: 0.002}

	healthPosition = math.Vec2{X: -0.6, Y: -0.8}
	healthScale    = math.Vec2{X: 0.3, Y: 0.4}
)

// Lights returns the sun followed by one colored point light above each lamp.
func Lights() []lighting.Light {
	return []lighting.Light{
		lighting.NewLight(math.Vec3{X: 0, Y: 1000, Z: -7000}, math.Vec3{X: 0.4, Y: 0.4, Z: 0.4}),
		lighting.NewAttenuatedLight(math.Vec3{X: 185, Y: 10, Z: -293}, math.Vec3{X: 2}, lampAttenuation),
		lighting.NewAttenuatedLight(math.Vec3{X: 370, Y: 17, Z: -300}, math.Vec3{Y: 2, Z: 2}, lampAttenuation),
		lighting.NewAttenuatedLight(math.Vec3{X: 293, Y: 7, Z: -305}, math.Vec3{X: 2, Y: 2}, lampAttenuation),
	}
}

// World is everything the loop updates and submits each frame.
type World struct {
	Terrain  *terrain.Terrain
	Player   *entity.Player
	Entities []*entity.Entity // scenery, not including the player
	Lights   []lighting.Light
	GUIs     []scene.GUITexture
	Sky      scene.Skyboxes
}

// Submitter queues work for the next frame. *scene.MasterRenderer
// satisfies it.
type Submitter interface {
	ProcessEntity(scene.Renderable)
	ProcessTerrain(*terrain.Terrain)
	ProcessGUI(scene.GUITexture)
}

// Submit queues the whole scene.
func (w *World) Submit(s Submitter) {
	for _, e := range w.Entities {
		s.ProcessEntity(e)
	}
	s.ProcessEntity(w.Player)
	s.ProcessTerrain(w.Terrain)
	for _, g := range w.GUIs {
		s.ProcessGUI(g)
	}
}

type builder struct {
	cfg    *config.Config
	loader *model.Loader
	meshes map[string]*model.RawMesh
	log    *zap.Logger
}

// Build loads every asset through loader and places the scene. Placement
// is deterministic for a given cfg.World.Seed.
func Build(cfg *config.Config, loader *model.Loader) (*World, error) {
	b := &builder{
		cfg:    cfg,
		loader: loader,
		meshes: make(map[string]*model.RawMesh),
		log:    logger.Named("world"),
	}

	w := &World{Lights: Lights()}

	var err error
	if w.Terrain, err = b.terrain(); err != nil {
		return nil, err
	}
	if w.Sky, err = b.skyboxes(); err != nil {
		return nil, err
	}
	if err := b.scatter(w, rand.New(rand.NewSource(cfg.World.Seed))); err != nil {
		return nil, err
	}

	lamp, err := b.model(lampAsset)
	if err != nil {
		return nil, err
	}
	for _, p := range lampPositions {
		w.Entities = append(w.Entities, entity.New(lamp, p, 0, 0, 0, lampScale))
	}

	person, err := b.model(playerAsset)
	if err != nil {
		return nil, err
	}
	w.Player = entity.NewPlayer(person, playerStart, playerYaw, playerScale)

	health, err := loader.LoadTexture(cfg.AssetPath(healthPath))
	if err != nil {
		return nil, err
	}
	w.GUIs = []scene.GUITexture{{Texture: health, Position: healthPosition, Scale: healthScale}}

	b.log.Info("world built",
		zap.Int("entities", len(w.Entities)),
		zap.Int("meshes", len(b.meshes)),
		zap.Int64("seed", cfg.World.Seed))
	return w, nil
}

func (b *builder) terrain() (*terrain.Terrain, error) {
	var pack model.TerrainTexturePack
	layers := []*model.Texture{&pack.Background, &pack.R, &pack.G, &pack.B}
	for i, path := range terrainLayers {
		tex, err := b.loader.LoadTexture(b.cfg.AssetPath(path))
		if err != nil {
			return nil, err
		}
		*layers[i] = tex
	}

	blendMap, err := b.loader.LoadTexture(b.cfg.AssetPath(blendMapPath))
	if err != nil {
		return nil, err
	}
	heightmap, err := texture.Load(b.cfg.AssetPath(heightmapPath))
	if err != nil {
		return nil, err
	}

	t, err := terrain.New(TerrainGridX, TerrainGridZ, heightmap, pack, blendMap, b.loader)
	if err != nil {
		return nil, fmt.Errorf("building terrain: %w", err)
	}
	return t, nil
}

func (b *builder) skyboxes() (scene.Skyboxes, error) {
	day, err := b.loader.LoadCubemap(b.resolve(daySky))
	if err != nil {
		return scene.Skyboxes{}, err
	}
	night, err := b.loader.LoadCubemap(b.resolve(nightSky))
	if err != nil {
		return scene.Skyboxes{}, err
	}
	return scene.Skyboxes{Day: day, Night: night}, nil
}

func (b *builder) resolve(faces [6]string) [6]string {
	for i, f := range faces {
		faces[i] = b.cfg.AssetPath(f)
	}
	return faces
}

// model loads a textured model. Entries naming the same mesh file share
// one upload; each entry gets its own material.
func (b *builder) model(asset modelAsset) (*model.TexturedModel, error) {
	mesh, ok := b.meshes[asset.mesh]
	if !ok {
		data, err := formats.LoadModel(b.cfg.AssetPath(asset.mesh))
		if err != nil {
			return nil, err
		}
		if mesh, err = b.loader.LoadMesh(data); err != nil {
			return nil, err
		}
		b.meshes[asset.mesh] = mesh
	}

	tex, err := b.loader.LoadTexture(b.cfg.AssetPath(asset.texture))
	if err != nil {
		return nil, err
	}
	mat := model.NewMaterial(tex)
	mat.HasTransparency = asset.transparent
	mat.UseFakeLighting = asset.fakeLighting
	if asset.atlasRows > 0 {
		mat.AtlasRows = asset.atlasRows
	}
	return &model.TexturedModel{Mesh: mesh, Material: mat}, nil
}

// kind is one scattered population.
type kind struct {
	model *model.TexturedModel
	scale float32
	count int
	atlas bool
}

// scatter places the vegetation at random points on the terrain tile,
// interleaving kinds so every population draws from the whole sequence.
func (b *builder) scatter(w *World, rng *rand.Rand) error {
	populations := []struct {
		asset modelAsset
		scale float32
		count int
	}{
		{lowPolyTreeAsset, lowPolyTreeScale, b.cfg.World.LowPoly},
		{treeAsset, treeScale, b.cfg.World.Trees},
		{grassAsset, grassScale, b.cfg.World.Grass},
		{flowerAsset, flowerScale, b.cfg.World.Flowers},
		{fernAsset, fernScale, b.cfg.World.Ferns},
	}

	kinds := make([]kind, 0, len(populations))
	most := 0
	for _, s := range populations {
		if s.count <= 0 {
			continue
		}
		m, err := b.model(s.asset)
		if err != nil {
			return err
		}
		kinds = append(kinds, kind{model: m, scale: s.scale, count: s.count, atlas: s.asset.atlasRows > 1})
		most = max(most, s.count)
	}

	originX, originZ := w.Terrain.Origin()
	for i := range most {
		for _, k := range kinds {
			if i >= k.count {
				continue
			}
			x := originX + rng.Float32()*terrain.Size
			z := originZ + rng.Float32()*terrain.Size
			pos := math.Vec3{X: x, Y: w.Terrain.HeightAt(x, z), Z: z}
			if k.atlas {
				w.Entities = append(w.Entities, entity.NewWithAtlas(k.model, rng.Intn(fernAtlasCells), pos, 0, 0, 0, k.scale))
				continue
			}
			w.Entities = append(w.Entities, entity.New(k.model, pos, 0, 0, 0, k.scale))
		}
	}
	return nil
}
