package repositories

import (
	"context"

	"gorm.io/gorm"

	"contexthub/internal/models"
)

type ClearEventRepository interface {
	Record(ctx context.Context, ev *models.ClearEvent) error
	CountByProject(ctx context.Context, projectID string) (int64, error)
}

type clearEventRepository struct {
	db *gorm.DB
}

func NewClearEventRepository(db *gorm.DB) ClearEventRepository {
	return &clearEventRepository{db: db}
}

func (r *clearEventRepository) Record(ctx context.Context, ev *models.ClearEvent) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

func (r *clearEventRepository) CountByProject(ctx context.Context, projectID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ClearEvent{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}
