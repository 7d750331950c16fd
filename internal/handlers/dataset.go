package handlers

import (
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/annotext/backend/internal/middleware"
	"github.com/annotext/backend/internal/services"
	"github.com/annotext/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DatasetHandler struct {
	datasetService *services.DatasetService
}

func NewDatasetHandler(db *gorm.DB) *DatasetHandler {
	return &DatasetHandler{
		datasetService: services.NewDatasetService(db),
	}
}

// Upload stores a plain-text file as a dataset (owner only)
// POST /project/:project_id/dataset
func (h *DatasetHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		response.BadRequest(c, "missing content type")
		return
	}
	if contentType != "text/plain" {
		response.BadRequest(c, "invalid content type")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !utf8.Valid(data) {
		response.BadRequest(c, "encoding not supported")
		return
	}

	var filename *string
	if fileHeader.Filename != "" {
		filename = &fileHeader.Filename
	}

	dataset, err := h.datasetService.Upload(
		c.Param("project_id"),
		middleware.GetUserID(c),
		filename,
		string(data),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dataset_id": dataset.ID})
}

// Get returns a single dataset (owner only)
// GET /project/:project_id/dataset/:dataset_id
func (h *DatasetHandler) Get(c *gin.Context) {
	dataset, err := h.datasetService.Get(
		c.Param("project_id"),
		c.Param("dataset_id"),
		middleware.GetUserID(c),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dataset)
}

// List returns all datasets in a project (owner only)
// GET /project/:project_id/dataset
func (h *DatasetHandler) List(c *gin.Context) {
	datasets, err := h.datasetService.List(
		c.Param("project_id"),
		middleware.GetUserID(c),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, datasets)
}

// Delete removes a dataset and its categories (owner only, idempotent)
// DELETE /project/:project_id/dataset/:dataset_id
func (h *DatasetHandler) Delete(c *gin.Context) {
	err := h.datasetService.Delete(
		c.Param("project_id"),
		c.Param("dataset_id"),
		middleware.GetUserID(c),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "dataset deleted"})
}
