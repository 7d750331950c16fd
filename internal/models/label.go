package models

import "time"

// Label is an annotation label definition scoped to a project.
type Label struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	ProjectID string    `gorm:"size:36;not null;index" json:"project_id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Color     string    `gorm:"size:20;not null" json:"color"` // hex string, e.g. #FF0000
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Label) TableName() string { return "labels" }
