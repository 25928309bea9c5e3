package entities

import (
	"time"

	"gorm.io/datatypes"
)

const (
	DefaultProjectCategory = "Web Development"
	DefaultProjectStatus   = "in-progress"
)

type Project struct {
	ID              uint                        `gorm:"primaryKey" json:"id"`
	Title           string                      `gorm:"index;size:255" json:"title" validate:"required"`
	Description     string                      `gorm:"type:text" json:"description"`
	Category        string                      `gorm:"size:100" json:"category"`
	Technologies    datatypes.JSONSlice[string] `json:"technologies"`
	LongDescription string                      `gorm:"type:text" json:"longDescription"`
	GitHubURL       string                      `gorm:"size:512" json:"githubUrl"`
	LiveURL         string                      `gorm:"size:512" json:"liveUrl"`
	Status          string                      `gorm:"size:50" json:"status"`
	Featured        bool                        `json:"featured"`
	Tags            datatypes.JSONSlice[string] `json:"tags"`

	AddedBy       string    `gorm:"size:100" json:"addedBy,omitempty"`
	ImportBatchID string    `gorm:"index;size:36" json:"importBatchId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
