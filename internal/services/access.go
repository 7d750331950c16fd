package services

import (
	"errors"

	"github.com/annotext/backend/internal/models"
	"github.com/annotext/backend/pkg/response"
	"gorm.io/gorm"
)

// Every project-scoped operation runs the same guard chain: resolve the
// project with its member list, then check the caller against it. A project
// that does not exist and a project the caller is not a member of produce
// the same 404 so that project existence never leaks to outsiders. Only
// once the caller is known to be a member may an owner check answer 403.

// loadProject fetches a project and materializes its member list in
// insertion order. Returns gorm.ErrRecordNotFound if the project is absent.
func loadProject(db *gorm.DB, projectID string) (*models.Project, error) {
	var project models.Project
	if err := db.First(&project, "id = ?", projectID).Error; err != nil {
		return nil, err
	}

	var members []string
	if err := db.Model(&models.ProjectMember{}).
		Where("project_id = ?", projectID).
		Order("id ASC").
		Pluck("user_id", &members).Error; err != nil {
		return nil, err
	}
	project.Members = members

	return &project, nil
}

// resolveProjectForMember loads the project and verifies the caller is a
// member. Absence and non-membership are indistinguishable to the caller.
func resolveProjectForMember(db *gorm.DB, projectID, userID string) (*models.Project, error) {
	project, err := loadProject(db, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	if !project.IsMember(userID) {
		return nil, response.NewNotFound("project not found")
	}

	return project, nil
}

// requireOwner verifies the caller owns the project. The caller is already
// known to be a member at this point, so a 403 is acceptable.
func requireOwner(project *models.Project, userID string) error {
	if project.Owner != userID {
		return response.NewForbidden("not enough permissions")
	}
	return nil
}

// resolveDataset verifies the dataset exists and belongs to the project.
func resolveDataset(db *gorm.DB, projectID, datasetID string) (*models.Dataset, error) {
	var dataset models.Dataset
	err := db.First(&dataset, "id = ? AND project_id = ?", datasetID, projectID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("dataset not found")
		}
		return nil, err
	}
	return &dataset, nil
}

// resolveLabel verifies the label exists and belongs to the project.
func resolveLabel(db *gorm.DB, projectID, labelID string) (*models.Label, error) {
	var label models.Label
	err := db.First(&label, "id = ? AND project_id = ?", labelID, projectID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("label not found")
		}
		return nil, err
	}
	return &label, nil
}
