package texture

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Index maps lowercase file stems to paths under an asset directory.
type Index struct {
	entries map[string]string // stem.lower() → full path
}

// BuildIndex walks dir recursively for decodable images. When several files
// share a stem, the higher-priority format wins; among equals the first in
// lexical walk order is kept.
func BuildIndex(dir string) *Index {
	idx := &Index{entries: make(map[string]string)}
	if dir == "" {
		return idx
	}

	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !Supported(path) {
			return nil
		}
		idx.add(path)
		return nil
	})
	return idx
}

func (idx *Index) add(path string) {
	stem := stemOf(path)
	existing, exists := idx.entries[stem]
	if !exists || rank(path) > rank(existing) {
		idx.entries[stem] = path
	}
}

func rank(path string) int {
	return priority[strings.ToLower(filepath.Ext(path))]
}

func stemOf(name string) string {
	// Decal refs authored on Windows use backslashes.
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(name)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

// ResolvePath returns the indexed path for an image reference such as
// "logos/Brand.PNG" or "brand", or ("", false).
func (idx *Index) ResolvePath(ref string) (string, bool) {
	path, ok := idx.entries[stemOf(ref)]
	return path, ok
}

// Len returns the number of indexed images.
func (idx *Index) Len() int {
	return len(idx.entries)
}
