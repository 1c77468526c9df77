//go:build linux

package mpris

import (
	"os"
	"path/filepath"
	"strings"
)

// coverStems lists album art base names in priority order; each is tried
// with every extension in coverExts.
var (
	coverStems = []string{"cover", "folder", "album", "front"}
	coverExts  = []string{".jpg", ".png", ".jpeg"}
)

// FindAlbumArt looks for album art next to the track source. Names are
// matched case-insensitively. Returns "" when none is found.
func FindAlbumArt(source string) string {
	if source == "" {
		return ""
	}
	dir := filepath.Dir(source)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	files := make(map[string]string, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			files[strings.ToLower(e.Name())] = e.Name()
		}
	}

	for _, stem := range coverStems {
		for _, ext := range coverExts {
			if name, ok := files[stem+ext]; ok {
				return filepath.Join(dir, name)
			}
		}
	}
	return ""
}
