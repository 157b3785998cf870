package artifact

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/afero"
)

// DefaultCacheSize is the number of artifacts kept in memory.
const DefaultCacheSize = 32

// Cache of loaded artifacts keyed by path.
type Cache struct {
	fs    afero.Fs
	cache *lru.Cache[string, *Artifact]
}

// NewCache creates cache that loads artifacts from fs.
func NewCache(fs afero.Fs, size int) (*Cache, error) {
	cache, err := lru.New[string, *Artifact](size)
	if err != nil {
		return nil, fmt.Errorf("create artifact cache: %w", err)
	}
	return &Cache{fs: fs, cache: cache}, nil
}

// Get returns the artifact at path, loading it on the first access.
func (c *Cache) Get(path string) (*Artifact, error) {
	if art, ok := c.cache.Get(path); ok {
		return art, nil
	}
	art, err := Load(c.fs, path)
	if err != nil {
		return nil, err
	}
	c.cache.Add(path, art)
	return art, nil
}

// Len returns the number of cached artifacts.
func (c *Cache) Len() int {
	return c.cache.Len()
}
