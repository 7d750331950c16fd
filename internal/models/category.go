package models

import "time"

// Category is an annotated offset range over a dataset's text, tagged with
// a label. ProjectID is denormalized so categories can be scoped without a
// join. No ordering between StartOffset and EndOffset is enforced.
type Category struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	LabelID     string    `gorm:"size:36;not null;index" json:"label_id"`
	ProjectID   string    `gorm:"size:36;not null;index" json:"project_id"`
	DatasetID   string    `gorm:"size:36;not null;index" json:"dataset_id"`
	StartOffset int       `gorm:"not null" json:"start_offset"`
	EndOffset   int       `gorm:"not null" json:"end_offset"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Category) TableName() string { return "categories" }
