package assets

import (
	"embed"
	"io/fs"
	"path/filepath"
	"strings"
)

//go:embed *.wav
var assetsFS embed.FS

// FS exposes the embedded audio files by assets-relative path.
var FS fs.FS = assetsFS

// LoadAudio loads an embedded audio asset by assets-relative path.
func LoadAudio(path string) ([]byte, error) {
	return assetsFS.ReadFile(cleanAssetPath(path))
}

// AudioFiles lists every embedded audio file.
func AudioFiles() []string {
	names, _ := fs.Glob(assetsFS, "*.wav")
	return names
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
