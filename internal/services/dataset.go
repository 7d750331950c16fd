package services

import (
	"github.com/annotext/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Dataset operations are owner-gated: members who do not own the project
// get a 403, non-members a 404.
type DatasetService struct {
	db *gorm.DB
}

func NewDatasetService(db *gorm.DB) *DatasetService {
	return &DatasetService{db: db}
}

// Upload stores a decoded text document under the project.
func (s *DatasetService) Upload(projectID, userID string, filename *string, text string) (*models.Dataset, error) {
	project, err := resolveProjectForMember(s.db, projectID, userID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(project, userID); err != nil {
		return nil, err
	}

	dataset := models.Dataset{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Filename:  filename,
		Text:      text,
	}
	if err := s.db.Create(&dataset).Error; err != nil {
		return nil, err
	}

	return &dataset, nil
}

// Get returns a single dataset in the project.
func (s *DatasetService) Get(projectID, datasetID, userID string) (*models.Dataset, error) {
	project, err := resolveProjectForMember(s.db, projectID, userID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(project, userID); err != nil {
		return nil, err
	}

	return resolveDataset(s.db, projectID, datasetID)
}

// List returns all datasets in the project.
func (s *DatasetService) List(projectID, userID string) ([]models.Dataset, error) {
	project, err := resolveProjectForMember(s.db, projectID, userID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(project, userID); err != nil {
		return nil, err
	}

	var datasets []models.Dataset
	if err := s.db.Where("project_id = ?", projectID).Find(&datasets).Error; err != nil {
		return nil, err
	}
	return datasets, nil
}

// Delete removes a dataset and its categories. Deleting an id that does
// not exist is a silent no-op.
func (s *DatasetService) Delete(projectID, datasetID, userID string) error {
	project, err := resolveProjectForMember(s.db, projectID, userID)
	if err != nil {
		return err
	}
	if err := requireOwner(project, userID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		// The cascade is scoped to the resolved project, like the parent
		// row, so a dataset id from another project deletes nothing.
		if err := tx.Where("dataset_id = ? AND project_id = ?", datasetID, projectID).
			Delete(&models.Category{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND project_id = ?", datasetID, projectID).
			Delete(&models.Dataset{}).Error
	})
}
