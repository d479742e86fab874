package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const cacheFileName = "catalog-index.json"

// Cache holds the last fetched index plus its fetch timestamp. Concurrent
// invocations may race on the cache file; last write wins, which is fine
// because the cache is never a correctness dependency.
type Cache struct {
	FetchedAt time.Time `json:"fetched_at"`
	Index     Index     `json:"index"`
}

// LoadCache reads the catalog cache from the cache directory.
// Returns nil, nil if the cache file does not exist (first run).
func LoadCache(cacheDir string) (*Cache, error) {
	path := filepath.Join(cacheDir, cacheFileName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading catalog cache: %w", err)
	}

	var cache Cache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("parsing catalog cache: %w", err)
	}
	return &cache, nil
}

// SaveCache writes the catalog cache to the cache directory.
func SaveCache(cacheDir string, cache *Cache) error {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling catalog cache: %w", err)
	}

	path := filepath.Join(cacheDir, cacheFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing catalog cache: %w", err)
	}
	return nil
}

// IsCacheStale returns true if the cache is older than maxAge or nil.
func IsCacheStale(cache *Cache, maxAge time.Duration) bool {
	if cache == nil {
		return true
	}
	return time.Since(cache.FetchedAt) > maxAge
}
