package entities

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultMemberPosition is assigned when an import row carries no position.
const DefaultMemberPosition = "Member"

// SocialLinks holds a member's public profile handles.
type SocialLinks struct {
	GitHub    string `gorm:"size:255" json:"github"`
	LinkedIn  string `gorm:"size:255" json:"linkedin"`
	Twitter   string `gorm:"size:255" json:"twitter"`
	Portfolio string `gorm:"size:255" json:"portfolio"`
}

type Member struct {
	ID         uint                        `gorm:"primaryKey" json:"id"`
	Name       string                      `gorm:"size:255" json:"name" validate:"required"`
	Email      string                      `gorm:"size:255" json:"email" validate:"required,club_email"`
	EmailKey   string                      `gorm:"uniqueIndex;size:255" json:"-"` // lower-cased Email, identity key
	Role       string                      `gorm:"size:255" json:"role"`
	Department string                      `gorm:"size:255" json:"department"`
	Year       string                      `gorm:"size:50" json:"year"`
	Bio        string                      `gorm:"type:text" json:"bio"`
	Position   string                      `gorm:"size:100" json:"position"`
	Skills     datatypes.JSONSlice[string] `json:"skills"`
	IsActive   bool                        `json:"isActive"`
	Social     SocialLinks                 `gorm:"embedded;embeddedPrefix:social_" json:"social"`

	AddedBy       string    `gorm:"size:100" json:"addedBy,omitempty"`
	ImportBatchID string    `gorm:"index;size:36" json:"importBatchId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// IdentityKey returns the value members are deduplicated by.
func (m *Member) IdentityKey() string {
	return MemberEmailKey(m.Email)
}

// BeforeSave keeps EmailKey in sync so the unique index enforces identity.
func (m *Member) BeforeSave(tx *gorm.DB) error {
	m.EmailKey = m.IdentityKey()
	return nil
}

// MemberEmailKey lower-cases and trims an email address.
func MemberEmailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
