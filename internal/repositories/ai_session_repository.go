package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"contexthub/internal/models"
)

type AISessionRepository interface {
	FindByKey(ctx context.Context, projectID, aiName string) (*models.AISession, error)
	CreateIfAbsent(ctx context.Context, sess *models.AISession) (bool, error)
	Touch(ctx context.Context, sessionID string, at time.Time) error
	Remint(ctx context.Context, projectID, aiName, newSessionID string, at time.Time) (bool, error)
	MarkCleared(ctx context.Context, projectID, aiName string, at time.Time) (bool, error)
	ListByProject(ctx context.Context, projectID string) ([]models.AISession, error)
	DeleteInactive(ctx context.Context, cutoff time.Time) (int64, error)
}

type aiSessionRepository struct {
	db *gorm.DB
}

func NewAISessionRepository(db *gorm.DB) AISessionRepository {
	return &aiSessionRepository{db: db}
}

func (r *aiSessionRepository) FindByKey(ctx context.Context, projectID, aiName string) (*models.AISession, error) {
	var sess models.AISession
	res := r.db.WithContext(ctx).Where("project_id = ? AND ai_name = ?", projectID, aiName).Take(&sess)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, res.Error
	}
	return &sess, nil
}

// CreateIfAbsent performs the atomic insert-if-absent on the
// (project_id, ai_name) unique index. Returns false when another caller
// already owns the key; the caller falls back to FindByKey.
func (r *aiSessionRepository) CreateIfAbsent(ctx context.Context, sess *models.AISession) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}, {Name: "ai_name"}},
		DoNothing: true,
	}).Create(sess)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *aiSessionRepository) Touch(ctx context.Context, sessionID string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.AISession{}).
		Where("session_id = ?", sessionID).
		Update("last_accessed", at).Error
}

// Remint swaps in a fresh session id for a cleared key. The WHERE cleared
// guard makes racing callers converge: exactly one update wins, the rest
// reselect the row it produced.
func (r *aiSessionRepository) Remint(ctx context.Context, projectID, aiName, newSessionID string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.AISession{}).
		Where("project_id = ? AND ai_name = ? AND cleared = ?", projectID, aiName, true).
		Updates(map[string]interface{}{
			"session_id":    newSessionID,
			"cleared":       false,
			"created_at":    at,
			"last_accessed": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *aiSessionRepository) MarkCleared(ctx context.Context, projectID, aiName string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.AISession{}).
		Where("project_id = ? AND ai_name = ? AND cleared = ?", projectID, aiName, false).
		Updates(map[string]interface{}{
			"cleared":       true,
			"last_accessed": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *aiSessionRepository) ListByProject(ctx context.Context, projectID string) ([]models.AISession, error) {
	var sessions []models.AISession
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("ai_name ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *aiSessionRepository) DeleteInactive(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("last_accessed < ?", cutoff).
		Delete(&models.AISession{})
	return res.RowsAffected, res.Error
}
