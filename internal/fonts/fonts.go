package fonts

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Exts are the font file extensions the HUD can load.
var Exts = []string{".ttf", ".otf"}

// BaseDirs returns candidate font directories, relative to the working
// directory, so fonts are found from the repo root or from cmd/game.
func BaseDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

// ScanDir returns the paths of all font files under dir, sorted. A missing
// dir yields no paths and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(filepath.Clean(dir), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, e := range Exts {
			if ext == e {
				out = append(out, path)
				break
			}
		}
		return nil
	})
	sort.Strings(out)
	return out, err
}

// First returns the first font file found in dirs, in order.
func First(dirs []string) (string, bool) {
	for _, dir := range dirs {
		paths, err := ScanDir(dir)
		if err != nil || len(paths) == 0 {
			continue
		}
		return paths[0], true
	}
	return "", false
}
