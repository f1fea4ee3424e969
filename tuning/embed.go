package tuning

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed *.yaml
var tuningFS embed.FS

// Load reads a tuning file, preferring an on-disk copy under tuning/ so
// edits take effect without rebuilding, and falling back to the embedded one.
func Load(name string) ([]byte, error) {
	clean := cleanPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return tuningFS.ReadFile(clean)
}

// ModTime reports the on-disk modification time of a tuning file, when one
// exists outside the embedded set.
func ModTime(name string) (time.Time, bool) {
	clean := cleanPath(name)
	info, err := os.Stat(diskPath(clean))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "tuning/") {
		return strings.TrimPrefix(s, "tuning/")
	}
	return s
}

func diskPath(clean string) string {
	return filepath.Join("tuning", filepath.FromSlash(clean))
}
