// Package events provides database operations for club events.
package events

import (
	"time"

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

func (r *Repository) InsertEvent(event *entities.Event) error {
	return r.db.Create(event).Error
}

// ListEvents returns a page of events ordered by date, soonest first.
func (r *Repository) ListEvents(limit, offset int) ([]entities.Event, int64, error) {
	var events []entities.Event
	var total int64

	query := r.db.Model(&entities.Event{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	err := query.Order("date ASC").Limit(limit).Offset(offset).Find(&events).Error
	return events, total, err
}

// ListUpcoming returns events dated at or after since.
func (r *Repository) ListUpcoming(since time.Time, limit int) ([]entities.Event, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	var events []entities.Event
	err := r.db.Where("date >= ?", since).Order("date ASC").Limit(limit).Find(&events).Error
	return events, err
}

// ListByBatch returns the events created by one import batch.
func (r *Repository) ListByBatch(batchID string) ([]entities.Event, error) {
	var events []entities.Event
	err := r.db.Where("import_batch_id = ?", batchID).Order("id ASC").Find(&events).Error
	return events, err
}
