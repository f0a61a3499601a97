package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"contexthub/internal/models"
)

type ProjectRepository interface {
	Upsert(ctx context.Context, p *models.Project) error
	FindByID(ctx context.Context, projectID string) (*models.Project, error)
	List(ctx context.Context, limit int) ([]models.ProjectListing, error)
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Upsert inserts the project row, or touches last_accessed when it already
// exists. A single statement so concurrent callers cannot race-create.
func (r *projectRepository) Upsert(ctx context.Context, p *models.Project) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_accessed"}),
	}).Create(p).Error
}

func (r *projectRepository) FindByID(ctx context.Context, projectID string) (*models.Project, error) {
	var p models.Project
	res := r.db.WithContext(ctx).Where("project_id = ?", projectID).Take(&p)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, res.Error
	}
	return &p, nil
}

func (r *projectRepository) List(ctx context.Context, limit int) ([]models.ProjectListing, error) {
	var listings []models.ProjectListing
	q := r.db.WithContext(ctx).Model(&models.Project{}).
		Select("projects.project_id, projects.project_path, projects.project_name, projects.last_accessed, COUNT(ai_sessions.ai_name) AS ai_count").
		Joins("LEFT JOIN ai_sessions ON ai_sessions.project_id = projects.project_id").
		Group("projects.project_id").
		Order("projects.last_accessed DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}
