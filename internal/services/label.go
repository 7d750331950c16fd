package services

import (
	"github.com/annotext/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Label operations are owner-gated, like datasets.
type LabelService struct {
	db *gorm.DB
}

func NewLabelService(db *gorm.DB) *LabelService {
	return &LabelService{db: db}
}

type CreateLabelRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color" binding:"required"`
}

// UpdateLabelRequest carries only the fields the caller wants changed.
// Nil fields keep their stored value.
type UpdateLabelRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

func (s *LabelService) Create(projectID, userID string, req *CreateLabelRequest) (*models.Label, error) {
	project, err := resolveProjectForMember(s.db, projectID, userID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(project, userID); err != nil {
		return nil, err
	}

	label := models.Label{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Name:      req.Name,
		Color:     req.Color,
	}
	if err := s.db.Create(&label).Error; err != nil {
		return nil, err
	}

	return &label, nil
}

func (s *LabelService) Get(projectID, labelID, userID string) (*models.Label, error) {
	project, err := resolveProjectForMember(s.db, projectID, userID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(project, userID); err != nil {
		return nil, err
	}

	return resolveLabel(s.db, projectID, labelID)
}

func (s *LabelService) List(projectID, userID string) ([]models.Label, error) {
	project, err := resolveProjectForMember(s.db, projectID, userID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(project, userID); err != nil {
		return nil, err
	}

	var labels []models.Label
	if err := s.db.Where("project_id = ?", projectID).Find(&labels).Error; err != nil {
		return nil, err
	}
	return labels, nil
}

// Update merges the supplied fields onto the stored label and persists the
// result. Omitted fields are untouched.
func (s *LabelService) Update(projectID, labelID, userID string, req *UpdateLabelRequest) (*models.Label, error) {
	project, err := resolveProjectForMember(s.db, projectID, userID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(project, userID); err != nil {
		return nil, err
	}

	label, err := resolveLabel(s.db, projectID, labelID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		label.Name = *req.Name
	}
	if req.Color != nil {
		label.Color = *req.Color
	}

	if err := s.db.Model(&models.Label{}).
		Where("id = ?", label.ID).
		Updates(map[string]interface{}{
			"name":  label.Name,
			"color": label.Color,
		}).Error; err != nil {
		return nil, err
	}

	return label, nil
}

// Delete removes a label and every category referencing it. Deleting an id
// that does not exist is a silent no-op.
func (s *LabelService) Delete(projectID, labelID, userID string) error {
	project, err := resolveProjectForMember(s.db, projectID, userID)
	if err != nil {
		return err
	}
	if err := requireOwner(project, userID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		// Scoped to the resolved project, like the parent row, so a label
		// id from another project deletes nothing.
		if err := tx.Where("label_id = ? AND project_id = ?", labelID, projectID).
			Delete(&models.Category{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND project_id = ?", labelID, projectID).
			Delete(&models.Label{}).Error
	})
}
