package cache

import (
	"context"
	"sync"

	"contexthub/internal/models"
)

// MemoryCache is a process-local ContextCache guarded by an RWMutex.
// Entries are cloned on read and write so callers cannot mutate cached
// state. Suited for tests and single-process deployments without Redis.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string][]models.Message
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string][]models.Message)}
}

func (c *MemoryCache) Get(_ context.Context, sessionID string) ([]models.Message, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[sessionID]
	if !ok {
		return nil, false
	}
	out := make([]models.Message, len(entry))
	copy(out, entry)
	return out, true
}

func (c *MemoryCache) Set(_ context.Context, sessionID string, messages []models.Message) {
	entry := make([]models.Message, len(messages))
	copy(entry, messages)
	c.mu.Lock()
	c.entries[sessionID] = entry
	c.mu.Unlock()
}

func (c *MemoryCache) Invalidate(_ context.Context, sessionID string) {
	c.mu.Lock()
	delete(c.entries, sessionID)
	c.mu.Unlock()
}
