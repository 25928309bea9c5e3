// Package projects provides database operations for showcase projects.
package projects

import (
	"gorm.io/gorm"

	"github.com/davinci-coder-club/clubsite/internal/entities"
)

const defaultPageSize = 50

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// InsertProject appends a project. Projects have no identity key, so
// re-importing the same file creates new rows.
func (r *Repository) InsertProject(project *entities.Project) error {
	return r.db.Create(project).Error
}

// ListProjects returns a page of projects, featured first then newest.
func (r *Repository) ListProjects(limit, offset int) ([]entities.Project, int64, error) {
	var projects []entities.Project
	var total int64

	query := r.db.Model(&entities.Project{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	err := query.Order("featured DESC, created_at DESC").Limit(limit).Offset(offset).Find(&projects).Error
	return projects, total, err
}

// ListByBatch returns the projects created by one import batch.
func (r *Repository) ListByBatch(batchID string) ([]entities.Project, error) {
	var projects []entities.Project
	err := r.db.Where("import_batch_id = ?", batchID).Order("id ASC").Find(&projects).Error
	return projects, err
}
