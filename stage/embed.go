package stage

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.json
var stageFS embed.FS

// Load reads a stage file, preferring an on-disk copy under stage/ so
// edits take effect without rebuilding, and falling back to the embedded one.
func Load(name string) ([]byte, error) {
	clean := cleanPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	data, err := stageFS.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("read stage: %w", err)
	}
	return data, nil
}

// Names lists the embedded stage files in sorted order.
func Names() []string {
	entries, err := stageFS.ReadDir(".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

func cleanPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "stage/") {
		return strings.TrimPrefix(s, "stage/")
	}
	return s
}

func diskPath(clean string) string {
	return filepath.Join("stage", filepath.FromSlash(clean))
}
