package services

import (
	"github.com/annotext/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type CreateProjectRequest struct {
	Members     []string `json:"members"`
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
}

type UpdateProjectRequest struct {
	ID          string   `json:"id" binding:"required"`
	Members     []string `json:"members"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
}

// Create inserts the project and all membership rows in one transaction,
// owner row first. If any member insert fails the project row is rolled
// back with it, so no orphaned project can remain.
//
// Member ids are not validated against the users table. Known gap.
func (s *ProjectService) Create(req *CreateProjectRequest, ownerID string) (*models.Project, error) {
	project := models.Project{
		ID:          uuid.NewString(),
		Owner:       ownerID,
		Title:       req.Title,
		Description: req.Description,
	}

	members := []string{ownerID}
	for _, m := range req.Members {
		if m == ownerID {
			continue
		}
		members = append(members, m)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		for _, userID := range members {
			row := models.ProjectMember{ProjectID: project.ID, UserID: userID}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	project.Members = members
	return &project, nil
}

// GetForMember returns the project with its member list if the caller is a
// member; otherwise 404, whether or not the project exists.
func (s *ProjectService) GetForMember(projectID, userID string) (*models.Project, error) {
	return resolveProjectForMember(s.db, projectID, userID)
}

// ListByMember returns all projects the user is a member of, in the order
// their memberships were created.
func (s *ProjectService) ListByMember(userID string) ([]models.Project, error) {
	var memberships []models.ProjectMember
	if err := s.db.Where("user_id = ?", userID).
		Order("id ASC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}

	projects := make([]models.Project, 0, len(memberships))
	for _, m := range memberships {
		project, err := loadProject(s.db, m.ProjectID)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}

	return projects, nil
}

// Update replaces title and description on the project. Only the owner may
// update. Membership is not altered here; a members field in the request is
// accepted and ignored.
func (s *ProjectService) Update(req *UpdateProjectRequest, userID string) (*models.Project, error) {
	project, err := resolveProjectForMember(s.db, req.ID, userID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(project, userID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}

	updates := map[string]interface{}{
		"owner":       project.Owner,
		"title":       project.Title,
		"description": project.Description,
	}
	if err := s.db.Model(&models.Project{}).
		Where("id = ?", project.ID).
		Updates(updates).Error; err != nil {
		return nil, err
	}

	return project, nil
}
