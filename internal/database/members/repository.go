// Package members provides database operations for club members.
//
// Members are identified by their lower-cased email address, stored in the
// email_key column under a unique index. The importer loads the existing
// keys once per batch through ExistingMemberEmails.
//
// # Usage
//
//	repo := members.NewRepository(db)
//	emails, err := repo.ExistingMemberEmails()
package members

import (
	"errors"

	"gorm.io/gorm"

	"github.com/davinci-coder-club/clubsite/internal/entities"
)

const defaultPageSize = 50

// Repository handles all member database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new members repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ExistingMemberEmails returns the identity key of every stored member.
func (r *Repository) ExistingMemberEmails() ([]string, error) {
	var keys []string
	err := r.db.Model(&entities.Member{}).Pluck("email_key", &keys).Error
	return keys, err
}

// InsertMember appends a member. A second member with the same email key
// violates the unique index and is returned as an error.
func (r *Repository) InsertMember(member *entities.Member) error {
	return r.db.Create(member).Error
}

// GetByEmail finds a member by email, ignoring case and surrounding spaces.
// Returns nil when no member matches.
func (r *Repository) GetByEmail(email string) (*entities.Member, error) {
	var member entities.Member
	err := r.db.Where("email_key = ?", entities.MemberEmailKey(email)).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers returns a page of members ordered by name, with the total count.
func (r *Repository) ListMembers(limit, offset int) ([]entities.Member, int64, error) {
	var members []entities.Member
	var total int64

	query := r.db.Model(&entities.Member{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	err := query.Order("name ASC").Limit(limit).Offset(offset).Find(&members).Error
	return members, total, err
}

// ListByBatch returns the members created by one import batch.
func (r *Repository) ListByBatch(batchID string) ([]entities.Member, error) {
	var members []entities.Member
	err := r.db.Where("import_batch_id = ?", batchID).Order("id ASC").Find(&members).Error
	return members, err
}
