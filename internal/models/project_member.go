package models

import "time"

// ProjectMember links a user to a project. Rows are written owner first,
// so ordering by ID reproduces insertion order.
type ProjectMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID string    `gorm:"uniqueIndex:idx_project_user;size:36;not null" json:"project_id"`
	UserID    string    `gorm:"uniqueIndex:idx_project_user;size:36;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (ProjectMember) TableName() string { return "project_members" }
