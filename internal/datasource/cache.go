package datasource

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/reddotai/sg-property-analyser/pkg/models"
)

// cacheKey identifies one transaction lookup.
func cacheKey(district int, propertyType models.PropertyType) string {
	return fmt.Sprintf("d%02d:%s", district, propertyType)
}

// --- In-memory TTL cache ---

// CacheEntry holds cached transactions with expiration.
type CacheEntry struct {
	Transactions []models.Transaction `json:"transactions"`
	FetchedAt    time.Time            `json:"fetched_at"`
	ExpiresAt    time.Time            `json:"expires_at"`
}

// Cache is a thread-safe transaction cache with TTL and optional file
// persistence, so repeated lookups for the same district do not hammer the
// data service across CLI invocations.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]CacheEntry
	ttl     time.Duration
	file    string // "" disables persistence
}

// NewCache creates a cache with the given TTL. When file is non-empty the
// cache is loaded from and saved to that JSON file.
func NewCache(ttl time.Duration, file string) *Cache {
	c := &Cache{
		entries: make(map[string]CacheEntry),
		ttl:     ttl,
		file:    file,
	}
	if file != "" {
		c.loadFile()
	}
	return c
}

// Get retrieves cached transactions. Returns nil, false if absent or expired.
func (c *Cache) Get(district int, propertyType models.PropertyType) ([]models.Transaction, bool) {
	c.mu.RLock()
	entry, ok := c.entries[cacheKey(district, propertyType)]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Transactions, true
}

// Set stores transactions for a lookup and persists the cache when a file
// is configured.
func (c *Cache) Set(district int, propertyType models.PropertyType, transactions []models.Transaction) {
	now := time.Now()
	c.mu.Lock()
	c.entries[cacheKey(district, propertyType)] = CacheEntry{
		Transactions: transactions,
		FetchedAt:    now,
		ExpiresAt:    now.Add(c.ttl),
	}
	c.mu.Unlock()

	if c.file != "" {
		c.saveFile()
	}
}

// Flush removes all entries.
func (c *Cache) Flush() {
	c.mu.Lock()
	c.entries = make(map[string]CacheEntry)
	c.mu.Unlock()
	if c.file != "" {
		os.Remove(c.file)
	}
}

// loadFile restores the cache from disk, dropping expired entries. A
// missing or corrupt file is ignored: the cache is an optimization only.
func (c *Cache) loadFile() {
	data, err := os.ReadFile(c.file)
	if err != nil {
		return
	}
	var entries map[string]CacheEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return
	}

	now := time.Now()
	c.mu.Lock()
	for key, entry := range entries {
		if now.Before(entry.ExpiresAt) {
			c.entries[key] = entry
		}
	}
	c.mu.Unlock()
}

// saveFile writes the cache to disk. Failures are ignored.
func (c *Cache) saveFile() {
	c.mu.RLock()
	data, err := json.MarshalIndent(c.entries, "", "  ")
	c.mu.RUnlock()
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(c.file), 0o755); err != nil {
		return
	}
	os.WriteFile(c.file, data, 0o644)
}
