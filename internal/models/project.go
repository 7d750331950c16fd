package models

import "time"

// Project is an annotation project. The member list lives in
// project_members and is materialized onto Members when a project is
// loaded; the owner is always part of it.
type Project struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Owner       string    `gorm:"size:36;not null;index" json:"owner"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Members     []string  `gorm:"-" json:"members"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Project) TableName() string { return "projects" }

// IsMember reports whether the user appears in the materialized member list.
func (p *Project) IsMember(userID string) bool {
	for _, m := range p.Members {
		if m == userID {
			return true
		}
	}
	return false
}
