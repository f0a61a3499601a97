package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contexthub/internal/models"
)

func TestMemoryCache_MissOnEmpty(t *testing.T) {
	c := NewMemoryCache()
	_, ok := c.Get(context.Background(), "sess")
	assert.False(t, ok)
}

func TestMemoryCache_SetGetInvalidate(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	c.Set(ctx, "sess", []models.Message{{ID: "m1", Content: "hello"}})

	got, ok := c.Get(ctx, "sess")
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "hello", got[0].Content)

	c.Invalidate(ctx, "sess")
	_, ok = c.Get(ctx, "sess")
	assert.False(t, ok)
}

func TestMemoryCache_ClonesEntries(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	source := []models.Message{{ID: "m1", Content: "original"}}
	c.Set(ctx, "sess", source)
	source[0].Content = "mutated after set"

	got, ok := c.Get(ctx, "sess")
	require.True(t, ok)
	assert.Equal(t, "original", got[0].Content)

	got[0].Content = "mutated after get"
	again, ok := c.Get(ctx, "sess")
	require.True(t, ok)
	assert.Equal(t, "original", again[0].Content)
}
