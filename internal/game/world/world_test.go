package world

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/lowpoly/internal/config"
	"github.com/Faultbox/lowpoly/internal/engine/gpu/gputest"
	"github.com/Faultbox/lowpoly/internal/engine/lighting"
	"github.com/Faultbox/lowpoly/internal/engine/model"
	"github.com/Faultbox/lowpoly/internal/engine/scene"
	"github.com/Faultbox/lowpoly/internal/engine/terrain"
	"github.com/Faultbox/lowpoly/pkg/math"
)

const triangleOBJ = `v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
`

func writePNG(t *testing.T, path string, size int, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for x := range size {
		for y := range size {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

// writeAssets lays out a minimal asset tree under a temp root.
func writeAssets(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, rel := range AssetPaths() {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		switch {
		case strings.HasSuffix(rel, ".obj"):
			if err := os.WriteFile(path, []byte(triangleOBJ), 0o644); err != nil {
				t.Fatal(err)
			}
		case rel == heightmapPath:
			writePNG(t, path, 4, color.Gray{Y: 200})
		default:
			writePNG(t, path, 2, color.White)
		}
	}
	return root
}

func testConfig(root string) *config.Config {
	cfg := config.Default()
	cfg.Assets.Root = root
	cfg.World = config.WorldConfig{Seed: 7, LowPoly: 2, Trees: 3, Grass: 1, Flowers: 1, Ferns: 4}
	return cfg
}

func build(t *testing.T, cfg *config.Config) *World {
	t.Helper()
	w, err := Build(cfg, model.NewLoader(gputest.NewRecorder()))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return w
}

func TestBuildPopulation(t *testing.T) {
	w := build(t, testConfig(writeAssets(t)))

	if got, want := len(w.Entities), 2+3+1+1+4+len(lampPositions); got != want {
		t.Errorf("entities = %d, want %d", got, want)
	}

	meshes := make(map[*model.RawMesh]bool)
	materials := make(map[*model.Material]bool)
	for _, e := range w.Entities {
		meshes[e.Model().Mesh] = true
		materials[e.Model().Material] = true
	}
	// grass and flowers share one mesh
	if len(meshes) != 5 {
		t.Errorf("distinct meshes = %d, want 5", len(meshes))
	}
	if len(materials) != 6 {
		t.Errorf("distinct materials = %d, want 6", len(materials))
	}
}

func TestBuildPlacesOnTerrain(t *testing.T) {
	w := build(t, testConfig(writeAssets(t)))
	ox, oz := w.Terrain.Origin()
	if ox != 0 || oz != -terrain.Size {
		t.Fatalf("terrain origin = (%v, %v)", ox, oz)
	}

	for _, e := range w.Entities[:len(w.Entities)-len(lampPositions)] {
		p := e.Position()
		if p.X < 0 || p.X >= terrain.Size || p.Z < -terrain.Size || p.Z >= 0 {
			t.Errorf("entity at %+v is off the tile", p)
		}
		if p.Y != w.Terrain.HeightAt(p.X, p.Z) {
			t.Errorf("entity at %+v not on the ground (%v)", p, w.Terrain.HeightAt(p.X, p.Z))
		}
	}
}

func TestBuildFerns(t *testing.T) {
	w := build(t, testConfig(writeAssets(t)))
	ferns := 0
	for _, e := range w.Entities {
		mat := e.Model().Material
		if mat.AtlasRows != 2 {
			continue
		}
		ferns++
		if i := e.AtlasIndex(); i < 0 || i >= fernAtlasCells {
			t.Errorf("fern atlas index %d out of range", i)
		}
		if !mat.HasTransparency || !mat.UseFakeLighting {
			t.Errorf("fern material = %+v", mat)
		}
	}
	if ferns != 4 {
		t.Errorf("ferns = %d, want 4", ferns)
	}
}

func TestBuildDeterministic(t *testing.T) {
	root := writeAssets(t)
	a := build(t, testConfig(root))
	b := build(t, testConfig(root))
	for i := range a.Entities {
		if a.Entities[i].Position() != b.Entities[i].Position() {
			t.Fatalf("entity %d: %+v != %+v", i, a.Entities[i].Position(), b.Entities[i].Position())
		}
	}

	cfg := testConfig(root)
	cfg.World.Seed = 8
	c := build(t, cfg)
	if a.Entities[0].Position() == c.Entities[0].Position() {
		t.Error("different seeds produced the same placement")
	}
}

func TestBuildFixedPieces(t *testing.T) {
	w := build(t, testConfig(writeAssets(t)))

	if got := w.Player.Position(); got != playerStart {
		t.Errorf("player at %+v, want %+v", got, playerStart)
	}
	if got := w.Player.Rotation().Y; got != 180 {
		t.Errorf("player yaw = %v, want 180", got)
	}
	lamp := w.Entities[len(w.Entities)-1]
	if !lamp.Model().Material.UseFakeLighting || lamp.Position() != lampPositions[2] {
		t.Errorf("last lamp = %+v", lamp.Position())
	}
	if len(w.GUIs) != 1 || w.GUIs[0].Position != (math.Vec2{X: -0.6, Y: -0.8}) {
		t.Errorf("GUIs = %+v", w.GUIs)
	}
	if w.Sky.Day.ID == 0 || w.Sky.Night.ID == 0 || w.Sky.Day.ID == w.Sky.Night.ID {
		t.Errorf("sky = %+v", w.Sky)
	}
}

func TestBuildMissingAsset(t *testing.T) {
	root := writeAssets(t)
	if err := os.Remove(filepath.Join(root, "models/fern.obj")); err != nil {
		t.Fatal(err)
	}
	_, err := Build(testConfig(root), model.NewLoader(gputest.NewRecorder()))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v, want os.ErrNotExist", err)
	}
}

func TestBuildSkipsEmptyKinds(t *testing.T) {
	root := writeAssets(t)
	if err := os.Remove(filepath.Join(root, "models/tree.obj")); err != nil {
		t.Fatal(err)
	}
	cfg := testConfig(root)
	cfg.World.Trees = 0
	w := build(t, cfg)
	if got, want := len(w.Entities), 2+1+1+4+len(lampPositions); got != want {
		t.Errorf("entities = %d, want %d", got, want)
	}
}

func TestLights(t *testing.T) {
	lights := Lights()
	if len(lights) != lighting.MaxLights {
		t.Fatalf("lights = %d, want %d", len(lights), lighting.MaxLights)
	}
	if lights[0].Attenuation != lighting.NoAttenuation {
		t.Errorf("sun attenuation = %+v", lights[0].Attenuation)
	}
	for _, l := range lights[1:] {
		if l.Attenuation != lampAttenuation {
			t.Errorf("lamp attenuation = %+v", l.Attenuation)
		}
	}
}

type countingSubmitter struct {
	entities, terrains, guis int
}

func (c *countingSubmitter) ProcessEntity(scene.Renderable)  { c.entities++ }
func (c *countingSubmitter) ProcessTerrain(*terrain.Terrain) { c.terrains++ }
func (c *countingSubmitter) ProcessGUI(scene.GUITexture)     { c.guis++ }

func TestSubmit(t *testing.T) {
	w := build(t, testConfig(writeAssets(t)))
	var c countingSubmitter
	w.Submit(&c)
	if c.entities != len(w.Entities)+1 || c.terrains != 1 || c.guis != 1 {
		t.Errorf("submitted %+v", c)
	}
}
