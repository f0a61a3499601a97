package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"contexthub/internal/models"
)

type ConversationRepository interface {
	FindConversation(ctx context.Context, sessionID string) (*models.Conversation, error)
	AppendMessage(ctx context.Context, msg *models.Message) error
	ListMessages(ctx context.Context, sessionID string) ([]models.Message, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) FindConversation(ctx context.Context, sessionID string) (*models.Conversation, error) {
	var conv models.Conversation
	res := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Take(&conv)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, res.Error
	}
	return &conv, nil
}

// AppendMessage stores one immutable message. The conversation row is
// created lazily on the first message for the session; its updated_at is
// bumped on every append. Runs in a single transaction so a message is
// durable in full before the call returns.
func (r *conversationRepository) AppendMessage(ctx context.Context, msg *models.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		conv := models.Conversation{
			SessionID: msg.SessionID,
			Metadata:  "{}",
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
		}).Create(&conv).Error; err != nil {
			return err
		}
		return tx.Create(msg).Error
	})
}

// ListMessages returns the full history in append order. The rowid tiebreak
// keeps messages written within the same timestamp tick in insertion order.
func (r *conversationRepository) ListMessages(ctx context.Context, sessionID string) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp ASC, rowid ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *conversationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("updated_at < ?", cutoff).
		Delete(&models.Conversation{})
	return res.RowsAffected, res.Error
}
