package whisper

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Cache stores finished transcripts as plain text files keyed by ad
// archive ID. It survives queue resets so audio is never transcribed twice.
type Cache struct {
	dir string
}

// NewCache creates a transcript cache rooted at dir. An empty dir disables
// caching.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// Enabled reports whether the cache has a backing directory.
func (c *Cache) Enabled() bool {
	return c.dir != ""
}

// Path returns the cache file location for an archive ID.
func (c *Cache) Path(archiveID string) string {
	return filepath.Join(c.dir, "ad_"+archiveID+".txt")
}

// Lookup returns a cached transcript and whether one exists. Empty cache
// files are treated as misses so failed writes do not poison future runs.
func (c *Cache) Lookup(archiveID string) (string, bool) {
	if !c.Enabled() {
		return "", false
	}
	data, err := os.ReadFile(c.Path(archiveID))
	if err != nil {
		return "", false
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", false
	}
	return text, true
}

// Store writes a transcript to the cache.
func (c *Cache) Store(archiveID, text string) error {
	if !c.Enabled() {
		return nil
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create transcript cache dir: %w", err)
	}
	if err := os.WriteFile(c.Path(archiveID), []byte(text), 0o644); err != nil {
		return fmt.Errorf("write transcript cache: %w", err)
	}
	return nil
}
