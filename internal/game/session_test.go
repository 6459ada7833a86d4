package game

import (
	"image"
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/lowpoly/internal/config"
	"github.com/Faultbox/lowpoly/internal/engine/camera"
	"github.com/Faultbox/lowpoly/internal/engine/gpu/gputest"
	"github.com/Faultbox/lowpoly/internal/engine/model"
	"github.com/Faultbox/lowpoly/internal/engine/picking"
	"github.com/Faultbox/lowpoly/internal/engine/scene"
	"github.com/Faultbox/lowpoly/internal/engine/shader"
	"github.com/Faultbox/lowpoly/internal/engine/terrain"
	"github.com/Faultbox/lowpoly/internal/game/entity"
	"github.com/Faultbox/lowpoly/internal/game/world"
	"github.com/Faultbox/lowpoly/pkg/formats"
	"github.com/Faultbox/lowpoly/pkg/math"
)

type size struct{ w, h int }

func (s size) Size() (int, int) { return s.w, s.h }

type recordingAmbience struct{ amounts []float64 }

func (r *recordingAmbience) SetDayAmount(a float64) { r.amounts = append(r.amounts, a) }

func newSession(t *testing.T) (*session, *gputest.Recorder) {
	t.Helper()
	rec := gputest.NewRecorder()
	loader := model.NewLoader(rec)

	img := image.NewGray(image.Rect(0, 0, 5, 5))
	for i := range img.Pix {
		img.Pix[i] = 128
	}
	tile, err := terrain.New(world.TerrainGridX, world.TerrainGridZ, img, model.TerrainTexturePack{}, model.Texture{}, loader)
	if err != nil {
		t.Fatalf("terrain.New: %v", err)
	}

	mesh, err := loader.LoadMesh(&formats.ModelData{
		Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		UVs:       []float32{0, 0, 1, 0, 0, 1},
		Normals:   []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		Indices:   []uint32{0, 1, 2},
	})
	if err != nil {
		t.Fatalf("LoadMesh: %v", err)
	}
	tm := &model.TexturedModel{Mesh: mesh, Material: model.NewMaterial(model.Texture{ID: 1})}

	w := &world.World{
		Terrain:  tile,
		Player:   entity.NewPlayer(tm, math.Vec3{X: 400, Y: 5, Z: -150}, 180, 0.3),
		Entities: []*entity.Entity{entity.New(tm, math.Vec3{X: 10, Z: -10}, 0, 0, 0, 1)},
		Lights:   world.Lights(),
		GUIs:     []scene.GUITexture{{Scale: math.Vec2{X: 1, Y: 1}}},
	}

	r, err := scene.NewMasterRenderer(rec, loader, shader.Sources{}, sceneConfig(config.Default().Graphics), 4.0/3.0, w.Sky)
	if err != nil {
		t.Fatalf("NewMasterRenderer: %v", err)
	}
	p, err := picking.NewMousePicker(r.Projection())
	if err != nil {
		t.Fatalf("NewMousePicker: %v", err)
	}
	return &session{world: w, renderer: r, camera: camera.New(), picker: p}, rec
}

func TestControlsFrom(t *testing.T) {
	held := map[sdl.Scancode]bool{sdl.SCANCODE_UP: true, sdl.SCANCODE_D: true, sdl.SCANCODE_SPACE: true}
	got := controlsFrom(func(sc sdl.Scancode) bool { return held[sc] })
	want := entity.Controls{Forward: true, TurnRight: true, Jump: true}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSessionUpdateMovesPlayerAndCamera(t *testing.T) {
	s, _ := newSession(t)
	start := s.world.Player.Position()

	if err := s.update(0.5, entity.Controls{Forward: true}, camera.MouseState{}, 400, 300, size{800, 600}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if s.world.Player.Position() == start {
		t.Error("player did not move")
	}
	if s.camera.Position() == (math.Vec3{}) {
		t.Error("camera did not follow the player")
	}
}

func TestSessionUpdatePicksTerrain(t *testing.T) {
	s, _ := newSession(t)
	// the default camera looks down at the player, so the screen center
	// lands on the ground near it
	if err := s.update(0.016, entity.Controls{}, camera.MouseState{}, 400, 300, size{800, 600}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if !s.hoverOK {
		t.Fatal("no terrain under the cursor")
	}
	if d := s.hover.Distance(s.world.Player.Position()); d > 50 {
		t.Errorf("picked %+v, %v from the player", s.hover, d)
	}
}

func TestSessionUpdateMinimized(t *testing.T) {
	s, _ := newSession(t)
	s.hoverOK = true
	if err := s.update(0.016, entity.Controls{}, camera.MouseState{}, 0, 0, size{0, 0}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if s.hoverOK {
		t.Error("hover should clear while minimized")
	}
}

func TestSessionUpdateFeedsAmbience(t *testing.T) {
	s, _ := newSession(t)
	amb := &recordingAmbience{}
	s.ambience = amb
	s.renderer.Skybox().SetTime(65)

	if err := s.update(0, entity.Controls{}, camera.MouseState{}, 0, 0, size{800, 600}); err != nil {
		t.Fatal(err)
	}
	if len(amb.amounts) != 1 || amb.amounts[0] < 0.49 || amb.amounts[0] > 0.51 {
		t.Errorf("ambience got %v, want [0.5]", amb.amounts)
	}
}

func TestSessionDraw(t *testing.T) {
	s, rec := newSession(t)
	rec.Reset()
	s.draw(0.016)

	// scenery and player share one batch; terrain draws separately
	if got := rec.Count("DrawElements"); got != 3 {
		t.Errorf("DrawElements = %d, want 3", got)
	}
	if got := rec.Count("DrawArrays 1 0 4"); got != 1 {
		t.Errorf("GUI draws = %d, want 1", got)
	}
}

func TestSessionResize(t *testing.T) {
	s, rec := newSession(t)
	if err := s.resize(1024, 512); err != nil {
		t.Fatalf("resize: %v", err)
	}
	if rec.Count("Viewport 1024 512") != 1 {
		t.Error("viewport not updated")
	}
	if err := s.resize(0, 0); err == nil {
		t.Error("expected error for empty size")
	}
}

func TestSceneConfig(t *testing.T) {
	g := config.Default().Graphics
	g.FOV = 90
	cfg := sceneConfig(g)
	if cfg.FOV != 90 || cfg.Near != g.NearPlane || cfg.Far != g.FarPlane {
		t.Errorf("got %+v", cfg)
	}
	if cfg.SkyColor != scene.DefaultConfig().SkyColor {
		t.Errorf("sky color = %+v", cfg.SkyColor)
	}
}
