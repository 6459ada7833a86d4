package world

// Asset paths, relative to the configured asset root.
const (
	heightmapPath = "textures/heightmap.png"
	blendMapPath  = "textures/blendMap.png"
	healthPath    = "textures/health.png"
)

var terrainLayers = [4]string{
	"textures/grassy2.png",
	"textures/dirt.png",
	"textures/pinkFlowers.png",
	"textures/path.png",
}

// Cubemap faces in upload order: right, left, top, bottom, back, front.
var (
	daySky = [6]string{
		"textures/dayRight.png",
		"textures/dayLeft.png",
		"textures/dayTop.png",
		"textures/dayBottom.png",
		"textures/dayBack.png",
		"textures/dayFront.png",
	}
	nightSky = [6]string{
		"textures/nightRight.png",
		"textures/nightLeft.png",
		"textures/nightTop.png",
		"textures/nightBottom.png",
		"textures/nightBack.png",
		"textures/nightFront.png",
	}
)

// modelAsset describes one textured model of the demo scene.
type modelAsset struct {
	mesh, texture string
	transparent   bool
	fakeLighting  bool
	atlasRows     int
}

var (
	lowPolyTreeAsset = modelAsset{mesh: "models/lowPolyTree.obj", texture: "textures/lowPolyTree.png"}
	treeAsset        = modelAsset{mesh: "models/tree.obj", texture: "textures/tree.png"}
	grassAsset       = modelAsset{mesh: "models/grassModel.obj", texture: "textures/grassTexture.png", transparent: true, fakeLighting: true}
	flowerAsset      = modelAsset{mesh: "models/grassModel.obj", texture: "textures/flower.png", transparent: true, fakeLighting: true}
	fernAsset        = modelAsset{mesh: "models/fern.obj", texture: "textures/fern.png", transparent: true, fakeLighting: true, atlasRows: 2}
	lampAsset        = modelAsset{mesh: "models/lamp.obj", texture: "textures/lamp.png", fakeLighting: true}
	playerAsset      = modelAsset{mesh: "models/person.obj", texture: "textures/playerTexture.png"}
)

// AssetPaths lists every file the demo scene reads, relative to the root.
func AssetPaths() []string {
	paths := []string{heightmapPath, blendMapPath, healthPath}
	paths = append(paths, terrainLayers[:]...)
	paths = append(paths, daySky[:]...)
	paths = append(paths, nightSky[:]...)
	seen := make(map[string]bool)
	for _, s := range []modelAsset{lowPolyTreeAsset, treeAsset, grassAsset, flowerAsset, fernAsset, lampAsset, playerAsset} {
		for _, p := range []string{s.mesh, s.texture} {
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		}
	}
	return paths
}
