package services

import (
	"errors"

	"github.com/annotext/backend/internal/models"
	"github.com/annotext/backend/pkg/response"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category operations are open to every project member, owner or not.
// This asymmetry with datasets and labels is deliberate: owners curate the
// material, members annotate it.
type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

type CreateCategoryRequest struct {
	LabelID     string `json:"label_id" binding:"required"`
	StartOffset *int   `json:"start_offset" binding:"required"`
	EndOffset   *int   `json:"end_offset" binding:"required"`
}

// UpdateCategoryRequest carries only the fields the caller wants changed.
type UpdateCategoryRequest struct {
	LabelID     *string `json:"label_id"`
	StartOffset *int    `json:"start_offset"`
	EndOffset   *int    `json:"end_offset"`
}

// Create records an annotated offset range. The dataset and the referenced
// label must both belong to the project. Offsets are stored as given; no
// start/end ordering is enforced.
func (s *CategoryService) Create(projectID, datasetID, userID string, req *CreateCategoryRequest) (*models.Category, error) {
	if _, err := resolveProjectForMember(s.db, projectID, userID); err != nil {
		return nil, err
	}
	if _, err := resolveDataset(s.db, projectID, datasetID); err != nil {
		return nil, err
	}
	if _, err := resolveLabel(s.db, projectID, req.LabelID); err != nil {
		return nil, err
	}

	category := models.Category{
		ID:          uuid.NewString(),
		LabelID:     req.LabelID,
		ProjectID:   projectID,
		DatasetID:   datasetID,
		StartOffset: *req.StartOffset,
		EndOffset:   *req.EndOffset,
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}

	return &category, nil
}

func (s *CategoryService) Get(projectID, datasetID, categoryID, userID string) (*models.Category, error) {
	if _, err := resolveProjectForMember(s.db, projectID, userID); err != nil {
		return nil, err
	}
	if _, err := resolveDataset(s.db, projectID, datasetID); err != nil {
		return nil, err
	}

	var category models.Category
	err := s.db.First(&category, "id = ? AND dataset_id = ?", categoryID, datasetID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("category not found")
		}
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) List(projectID, datasetID, userID string) ([]models.Category, error) {
	if _, err := resolveProjectForMember(s.db, projectID, userID); err != nil {
		return nil, err
	}
	if _, err := resolveDataset(s.db, projectID, datasetID); err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := s.db.Where("dataset_id = ?", datasetID).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Update merges the supplied fields onto the stored category. A changed
// label_id must still reference a label in the same project.
func (s *CategoryService) Update(projectID, datasetID, categoryID, userID string, req *UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.Get(projectID, datasetID, categoryID, userID)
	if err != nil {
		return nil, err
	}

	if req.LabelID != nil {
		if _, err := resolveLabel(s.db, projectID, *req.LabelID); err != nil {
			return nil, err
		}
		category.LabelID = *req.LabelID
	}
	if req.StartOffset != nil {
		category.StartOffset = *req.StartOffset
	}
	if req.EndOffset != nil {
		category.EndOffset = *req.EndOffset
	}

	if err := s.db.Model(&models.Category{}).
		Where("id = ?", category.ID).
		Updates(map[string]interface{}{
			"label_id":     category.LabelID,
			"start_offset": category.StartOffset,
			"end_offset":   category.EndOffset,
		}).Error; err != nil {
		return nil, err
	}

	return category, nil
}

// Delete removes a category. Deleting an id that does not exist is a
// silent no-op.
func (s *CategoryService) Delete(projectID, datasetID, categoryID, userID string) error {
	if _, err := resolveProjectForMember(s.db, projectID, userID); err != nil {
		return err
	}
	if _, err := resolveDataset(s.db, projectID, datasetID); err != nil {
		return err
	}

	return s.db.Where("id = ? AND dataset_id = ?", categoryID, datasetID).
		Delete(&models.Category{}).Error
}
