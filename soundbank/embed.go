package soundbank

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultCatalog is the catalog file loaded when none is configured.
const DefaultCatalog = "catalog.yaml"

//go:embed *.yaml
var CatalogFS embed.FS

// Load returns the named catalog file. A copy under soundbank/ on disk wins
// over the embedded one so catalogs can be edited without a rebuild.
func Load(name string) ([]byte, error) {
	if data, err := os.ReadFile(DiskPath(name)); err == nil {
		return data, nil
	}
	return CatalogFS.ReadFile(cleanCatalogPath(name))
}

func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(DiskPath(name))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// DiskPath is where Load looks for an on-disk override of name.
func DiskPath(name string) string {
	clean := cleanCatalogPath(name)
	if filepath.IsAbs(clean) {
		return clean
	}
	return filepath.Join("soundbank", filepath.FromSlash(clean))
}

func cleanCatalogPath(path string) string {
	if path == "" {
		return DefaultCatalog
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "soundbank/"); ok {
		return after
	}
	return s
}
