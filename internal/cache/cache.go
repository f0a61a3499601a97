// Package cache provides the advisory fast path in front of the durable
// message log. A cache is never authoritative: readers must behave
// identically with a nil cache, an empty cache, or a stale one.
package cache

import (
	"context"

	"contexthub/internal/models"
)

// ContextCache holds a volatile copy of a session's full message history.
// Implementations swallow their own transport errors; a failed lookup is a
// miss, a failed write is a no-op. Entries are only ever written from a
// complete durable read and are invalidated on every append.
type ContextCache interface {
	Get(ctx context.Context, sessionID string) ([]models.Message, bool)
	Set(ctx context.Context, sessionID string, messages []models.Message)
	Invalidate(ctx context.Context, sessionID string)
}
