package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed data/*.yaml data/*.tengo
var dataFS embed.FS

// Load reads a prefab file by name. Files on disk under prefabs/data/
// take precedence over the embedded copies so edits are picked up by the
// hot-reload watcher without rebuilding.
func Load(name string) ([]byte, error) {
	clean := cleanPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return dataFS.ReadFile(clean)
}

// LoadScript reads a tengo event script by name. Same disk-over-embed
// precedence as Load.
func LoadScript(name string) ([]byte, error) {
	return Load(name)
}

func cleanPath(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "prefabs/")
	s = strings.TrimPrefix(s, "data/")
	return "data/" + s
}

func diskPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}
