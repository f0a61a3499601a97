package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"contexthub/internal/cache"
	"contexthub/internal/models"
	"contexthub/internal/repositories"
)

type ContextService interface {
	// AddMessage appends one immutable message to the session's log and
	// invalidates any cached copy of the history.
	AddMessage(ctx context.Context, sessionID, role, content string, metadata map[string]interface{}) (*models.Message, error)
	// GetContext returns the conversation plus its full ordered history, or
	// (nil, nil) when no conversation exists for the session id. Results are
	// identical whether or not the cache holds an entry.
	GetContext(ctx context.Context, sessionID string) (*models.Context, error)
	CleanupOldSessions(ctx context.Context, olderThanDays int) (int64, error)
}

type contextService struct {
	conversations repositories.ConversationRepository
	cache         cache.ContextCache
	logger        *zap.Logger
}

// NewContextService builds the context store. contextCache may be nil; the
// service then reads straight from the durable log.
func NewContextService(conversations repositories.ConversationRepository, contextCache cache.ContextCache, logger *zap.Logger) ContextService {
	return &contextService{
		conversations: conversations,
		cache:         contextCache,
		logger:        logger,
	}
}

func (s *contextService) AddMessage(ctx context.Context, sessionID, role, content string, metadata map[string]interface{}) (*models.Message, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}
	role = strings.TrimSpace(role)
	if role == "" {
		return nil, fmt.Errorf("role is required")
	}
	if content == "" {
		return nil, fmt.Errorf("content is required")
	}

	metadataJSON := "{}"
	if len(metadata) > 0 {
		data, err := json.Marshal(metadata)
		if err != nil {
			return nil, fmt.Errorf("marshal metadata: %w", err)
		}
		metadataJSON = string(data)
	}

	msg := &models.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Metadata:  metadataJSON,
		Timestamp: time.Now().UTC(),
	}
	if err := s.conversations.AppendMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, sessionID)
	}
	return msg, nil
}

func (s *contextService) GetContext(ctx context.Context, sessionID string) (*models.Context, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	// The durable log decides existence; the cache only ever short-cuts the
	// message read. A stale entry for a deleted conversation is unreachable
	// because this lookup comes first.
	conv, err := s.conversations.FindConversation(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, nil
	}

	if s.cache != nil {
		if messages, ok := s.cache.Get(ctx, sessionID); ok {
			return &models.Context{SessionID: sessionID, Metadata: conv.Metadata, Messages: messages}, nil
		}
	}

	messages, err := s.conversations.ListMessages(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, sessionID, messages)
	}
	return &models.Context{SessionID: sessionID, Metadata: conv.Metadata, Messages: messages}, nil
}

func (s *contextService) CleanupOldSessions(ctx context.Context, olderThanDays int) (int64, error) {
	if olderThanDays <= 0 {
		return 0, fmt.Errorf("olderThanDays must be positive")
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	removed, err := s.conversations.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return removed, fmt.Errorf("cleanup old conversations: %w", err)
	}
	if removed > 0 {
		s.logger.Info("removed old conversations", zap.Int64("count", removed))
	}
	return removed, nil
}
