package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/annotext/backend/internal/config"
	"github.com/annotext/backend/internal/middleware"
	"github.com/annotext/backend/internal/models"
	"github.com/annotext/backend/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret-for-handler-tests")
}

// setupRouter builds the full route table against a fresh in-memory
// database, without the rate limiter.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := models.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	jwtCfg := &config.JWTConfig{Secret: "test-secret-for-handler-tests", ExpireMinute: 30}
	userHandler := NewUserHandler(db, jwtCfg)
	projectHandler := NewProjectHandler(db)
	datasetHandler := NewDatasetHandler(db)
	labelHandler := NewLabelHandler(db)
	categoryHandler := NewCategoryHandler(db)

	r := gin.New()
	r.POST("/register", userHandler.Register)
	r.POST("/token", userHandler.Token)

	protected := r.Group("")
	protected.Use(middleware.AuthRequired())
	{
		protected.GET("/user/me", userHandler.Me)

		protected.POST("/project", projectHandler.Create)
		protected.GET("/project", projectHandler.List)
		protected.PUT("/project", projectHandler.Update)

		protected.POST("/project/:project_id/dataset", datasetHandler.Upload)
		protected.GET("/project/:project_id/dataset", datasetHandler.List)
		protected.GET("/project/:project_id/dataset/:dataset_id", datasetHandler.Get)
		protected.DELETE("/project/:project_id/dataset/:dataset_id", datasetHandler.Delete)

		protected.POST("/project/:project_id/label", labelHandler.Create)
		protected.GET("/project/:project_id/label", labelHandler.List)
		protected.GET("/project/:project_id/label/:label_id", labelHandler.Get)
		protected.PUT("/project/:project_id/label/:label_id", labelHandler.Update)
		protected.DELETE("/project/:project_id/label/:label_id", labelHandler.Delete)

		protected.POST("/project/:project_id/dataset/:dataset_id/category", categoryHandler.Create)
		protected.GET("/project/:project_id/dataset/:dataset_id/category", categoryHandler.List)
		protected.GET("/project/:project_id/dataset/:dataset_id/category/:category_id", categoryHandler.Get)
		protected.PUT("/project/:project_id/dataset/:dataset_id/category/:category_id", categoryHandler.Update)
		protected.DELETE("/project/:project_id/dataset/:dataset_id/category/:category_id", categoryHandler.Delete)
	}

	return r
}

// doJSON performs a JSON request, optionally authenticated, and decodes
// the response body into a generic map.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if len(w.Body.Bytes()) > 0 && w.Body.Bytes()[0] == '{' {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
		}
	}
	return w.Code, decoded
}

// registerAndLogin creates an account over the API and returns its
// bearer token and user id.
func registerAndLogin(t *testing.T, r *gin.Engine, username string) (string, string) {
	t.Helper()

	code, body := doJSON(t, r, http.MethodPost, "/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret-" + username,
	})
	if code != http.StatusOK {
		t.Fatalf("register %q = %d (%v)", username, code, body)
	}
	userID, _ := body["user_id"].(string)
	if userID == "" {
		t.Fatalf("missing user_id in %v", body)
	}

	form := fmt.Sprintf("username=%s&password=secret-%s", username, username)
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("token for %q = %d (%s)", username, w.Code, w.Body.String())
	}

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode token response: %v", err)
	}
	if resp.TokenType != "bearer" {
		t.Fatalf("token_type = %q, expected bearer", resp.TokenType)
	}
	return resp.AccessToken, userID
}

// createProject creates a project over the API and returns its id.
func createProject(t *testing.T, r *gin.Engine, token string, members []string) string {
	t.Helper()

	code, body := doJSON(t, r, http.MethodPost, "/project", token, map[string]interface{}{
		"members":     members,
		"title":       "Test Project",
		"description": "e2e project",
	})
	if code != http.StatusOK {
		t.Fatalf("create project = %d (%v)", code, body)
	}
	id, _ := body["project_id"].(string)
	if id == "" {
		t.Fatalf("missing project_id in %v", body)
	}
	return id
}

// uploadFile posts a multipart file with the given part content type.
func uploadFile(t *testing.T, r *gin.Engine, token, projectID, filename, contentType, text string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to create multipart part: %v", err)
	}
	if _, err := part.Write([]byte(text)); err != nil {
		t.Fatalf("failed to write file content: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/project/"+projectID+"/dataset", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func detail(body map[string]interface{}) string {
	s, _ := body["detail"].(string)
	return s
}
