package build

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/TheMisteMince/MVP-API/internal/paths"
)

// Removes every cached dependency-layer archive under the given directory.
//
// Used by the CLI's --no-cache flag to force a full rebuild.
func PurgeCache(dir string) error {
	return newLayerCache(dir).purge()
}

// Content-addressed store for dependency-layer archives.
//
// Each entry is an OCI archive named after its layer key. Entries are
// written to a temporary file first and renamed into place only after the
// export completed, so a failed or interrupted build never leaves a
// partial entry behind.
type layerCache struct {
	dir string
}

// Creates a cache rooted at the given directory.
func newLayerCache(dir string) *layerCache {
	return &layerCache{dir: dir}
}

// Returns the archive path for a key and whether an entry exists.
func (c *layerCache) lookup(key layerKey) (string, bool) {
	path := c.entryPath(key)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

// Writes a cache entry by calling export with a temporary path, then commits
// it under the key's name.
//
// When export fails the temporary file is removed and no entry is created.
func (c *layerCache) store(key layerKey, export func(tmp string) error) (string, error) {
	if err := os.MkdirAll(c.dir, paths.DefaultDirMode); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(c.dir, "layer-*.tmp")
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := export(tmpPath); err != nil {
		os.Remove(tmpPath)
		return "", err
	}

	path := c.entryPath(key)
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", err
	}

	return path, nil
}

// Returns the filesystem path for a key's archive.
//
// The digest's colon is replaced so the name is valid on all filesystems.
func (c *layerCache) entryPath(key layerKey) string {
	name := strings.ReplaceAll(key.String(), ":", "-") + ".tar"
	return filepath.Join(c.dir, name)
}

// Removes all cache entries.
func (c *layerCache) purge() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err != nil {
			return fmt.Errorf("%w: %w", ErrFileSystemOperation, err)
		}
	}
	return nil
}
