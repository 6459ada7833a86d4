package shader

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed glsl/*.vert glsl/*.frag
var embedded embed.FS

// Program source names.
const (
	EntityProgram  = "entity"
	TerrainProgram = "terrain"
	SkyboxProgram  = "skybox"
	GUIProgram     = "gui"
)

// Sources locates GLSL source pairs. With Dir empty the embedded sources are
// used; otherwise <Dir>/<name>.vert and <Dir>/<name>.frag are read from disk.
type Sources struct {
	Dir string
}

// Load returns the vertex and fragment source for a program name.
func (s Sources) Load(name string) (vert, frag string, err error) {
	read := func(file string) ([]byte, error) {
		return embedded.ReadFile("glsl/" + file)
	}
	if s.Dir != "" {
		read = func(file string) ([]byte, error) {
			return os.ReadFile(filepath.Join(s.Dir, file))
		}
	}

	v, err := read(name + ".vert")
	if err != nil {
		return "", "", fmt.Errorf("reading %s vertex shader: %w", name, err)
	}
	f, err := read(name + ".frag")
	if err != nil {
		return "", "", fmt.Errorf("reading %s fragment shader: %w", name, err)
	}
	return string(v), string(f), nil
}

// Export writes the embedded sources into dir so they can be edited and
// loaded back with Sources{Dir: dir}. Existing files are kept.
func Export(dir string) error {
	entries, err := embedded.ReadDir("glsl")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating shader dir: %w", err)
	}
	for _, e := range entries {
		dst := filepath.Join(dir, e.Name())
		if _, err := os.Stat(dst); err == nil {
			continue
		}
		data, err := embedded.ReadFile("glsl/" + e.Name())
		if err != nil {
			return err
		}
		if err := os.WriteFile(dst, data, 0644); err != nil {
			return fmt.Errorf("exporting %s: %w", e.Name(), err)
		}
	}
	return nil
}
