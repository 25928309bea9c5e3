package entities

import (
	"time"

	"gorm.io/datatypes"
)

const (
	DefaultEventCategory  = "Workshop"
	DefaultEventOrganizer = "Da-Vinci Coder Club"
	DefaultEventTime      = "10:00 AM"
	DefaultEventCapacity  = 50
	DefaultEventStatus    = "upcoming"
)

type Event struct {
	ID               uint                        `gorm:"primaryKey" json:"id"`
	Title            string                      `gorm:"index;size:255" json:"title" validate:"required"`
	Description      string                      `gorm:"type:text" json:"description"`
	Category         string                      `gorm:"size:100" json:"category"`
	Venue            string                      `gorm:"size:255" json:"venue" validate:"required"`
	Organizer        string                      `gorm:"size:255" json:"organizer"`
	Date             time.Time                   `gorm:"index" json:"date"`
	Time             string                      `gorm:"size:50" json:"time"`
	Capacity         int                         `json:"capacity"`
	Status           string                      `gorm:"size:50" json:"status"`
	Featured         bool                        `json:"featured"`
	RegistrationOpen bool                        `json:"registrationOpen"`
	Tags             datatypes.JSONSlice[string] `json:"tags"`

	AddedBy       string    `gorm:"size:100" json:"addedBy,omitempty"`
	ImportBatchID string    `gorm:"index;size:36" json:"importBatchId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
