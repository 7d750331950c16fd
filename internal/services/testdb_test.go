package services

import (
	"errors"
	"testing"

	"github.com/annotext/backend/internal/models"
	"github.com/annotext/backend/internal/utils"
	"github.com/annotext/backend/pkg/response"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	utils.SetJWTSecret("test-secret-for-service-tests")
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A second connection would see a different in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := models.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func registerUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user, err := NewUserService(db).Register(&RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret-" + username,
	})
	if err != nil {
		t.Fatalf("failed to register user %q: %v", username, err)
	}
	return user
}

// assertStatus fails unless err is an AppError with the given HTTP status.
func assertStatus(t *testing.T, err error, want int) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error with status %d, got nil", want)
	}
	var appErr *response.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError with status %d, got %v", want, err)
	}
	if appErr.HTTPStatus != want {
		t.Errorf("expected status %d, got %d (%s)", want, appErr.HTTPStatus, appErr.Message)
	}
}

// fixture sets up one project with an owner, a plain member and an
// unrelated registered user.
type fixture struct {
	db         *gorm.DB
	users      *UserService
	projects   *ProjectService
	datasets   *DatasetService
	labels     *LabelService
	categories *CategoryService

	owner    *models.User
	member   *models.User
	outsider *models.User
	project  *models.Project
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := newTestDB(t)
	f := &fixture{
		db:         db,
		users:      NewUserService(db),
		projects:   NewProjectService(db),
		datasets:   NewDatasetService(db),
		labels:     NewLabelService(db),
		categories: NewCategoryService(db),
	}

	f.owner = registerUser(t, db, "owner")
	f.member = registerUser(t, db, "member")
	f.outsider = registerUser(t, db, "outsider")

	project, err := f.projects.Create(&CreateProjectRequest{
		Members:     []string{f.member.ID},
		Title:       "Test Project",
		Description: "fixture project",
	}, f.owner.ID)
	if err != nil {
		t.Fatalf("failed to create fixture project: %v", err)
	}
	f.project = project

	return f
}

func (f *fixture) uploadDataset(t *testing.T, text string) *models.Dataset {
	t.Helper()

	filename := "fixture.txt"
	dataset, err := f.datasets.Upload(f.project.ID, f.owner.ID, &filename, text)
	if err != nil {
		t.Fatalf("failed to upload fixture dataset: %v", err)
	}
	return dataset
}

func (f *fixture) createLabel(t *testing.T, name, color string) *models.Label {
	t.Helper()

	label, err := f.labels.Create(f.project.ID, f.owner.ID, &CreateLabelRequest{
		Name:  name,
		Color: color,
	})
	if err != nil {
		t.Fatalf("failed to create fixture label: %v", err)
	}
	return label
}
