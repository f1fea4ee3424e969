package scenario

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed scripts/*.tengo
var drillFS embed.FS

// drillStages maps each embedded drill to the stage it expects.
var drillStages = map[string]string{
	"first_jump.tengo":   "basin.json",
	"double_jump.tengo":  "basin.json",
	"long_jump.tengo":    "basin.json",
	"ground_pound.tengo": "basin.json",
	"swim_basin.tengo":   "basin.json",
	"boost_pad.tengo":    "basin.json",
	"wall_chimney.tengo": "towers.json",
	"ledge_grab.tengo":   "towers.json",
}

// StageFor names the stage a drill runs on, defaulting to the basin.
func StageFor(drill string) string {
	if st, ok := drillStages[cleanPath(drill)]; ok {
		return st
	}
	return "basin.json"
}

// LoadDrill reads a drill script, preferring an on-disk copy under
// scenario/scripts/ so edits take effect without rebuilding, and falling
// back to the embedded one.
func LoadDrill(name string) ([]byte, error) {
	clean := cleanPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	data, err := drillFS.ReadFile("scripts/" + clean)
	if err != nil {
		return nil, fmt.Errorf("read drill: %w", err)
	}
	return data, nil
}

// DrillNames lists the embedded drills in sorted order.
func DrillNames() []string {
	entries, err := drillFS.ReadDir("scripts")
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
	s = strings.TrimPrefix(s, "scenario/")
	s = strings.TrimPrefix(s, "scripts/")
	return s
}

func diskPath(clean string) string {
	return filepath.Join("scenario", "scripts", filepath.FromSlash(clean))
}
