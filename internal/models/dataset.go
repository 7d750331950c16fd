package models

import "time"

// Dataset is an uploaded text document scoped to a project. Text is
// immutable after upload.
type Dataset struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	ProjectID string    `gorm:"size:36;not null;index" json:"project_id"`
	Filename  *string   `gorm:"size:255" json:"filename"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Dataset) TableName() string { return "datasets" }
