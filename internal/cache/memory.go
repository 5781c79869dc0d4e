package cache

import (
	"context"
	"fmt"
	"sync"
)

// MemoryCache is a process-local Cache. It does not survive restarts.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]string

	// Error injection for tests.
	GetErr    error
	SetErr    error
	DeleteErr error
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]string)}
}

// Get implements Reader.
func (c *MemoryCache) Get(ctx context.Context, key string) (string, bool, error) {
	if !ValidKey(key) {
		return "", false, fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}
	if c.GetErr != nil {
		return "", false, c.GetErr
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok, nil
}

// Set implements Cache.
func (c *MemoryCache) Set(ctx context.Context, key, value string) error {
	if !ValidKey(key) {
		return fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}
	if c.SetErr != nil {
		return c.SetErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

// Delete implements Cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	if !ValidKey(key) {
		return fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}
	if c.DeleteErr != nil {
		return c.DeleteErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}
