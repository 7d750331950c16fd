package handlers

import (
	"net/http"

	"github.com/annotext/backend/internal/middleware"
	"github.com/annotext/backend/internal/services"
	"github.com/annotext/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LabelHandler struct {
	labelService *services.LabelService
}

func NewLabelHandler(db *gorm.DB) *LabelHandler {
	return &LabelHandler{
		labelService: services.NewLabelService(db),
	}
}

// Create adds a label to a project (owner only)
// POST /project/:project_id/label
func (h *LabelHandler) Create(c *gin.Context) {
	var req services.CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	label, err := h.labelService.Create(
		c.Param("project_id"),
		middleware.GetUserID(c),
		&req,
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"label_id": label.ID})
}

// Get returns a single label (owner only)
// GET /project/:project_id/label/:label_id
func (h *LabelHandler) Get(c *gin.Context) {
	label, err := h.labelService.Get(
		c.Param("project_id"),
		c.Param("label_id"),
		middleware.GetUserID(c),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, label)
}

// List returns all labels in a project (owner only)
// GET /project/:project_id/label
func (h *LabelHandler) List(c *gin.Context) {
	labels, err := h.labelService.List(
		c.Param("project_id"),
		middleware.GetUserID(c),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, labels)
}

// Update merges the provided fields onto a label (owner only)
// PUT /project/:project_id/label/:label_id
func (h *LabelHandler) Update(c *gin.Context) {
	var req services.UpdateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	label, err := h.labelService.Update(
		c.Param("project_id"),
		c.Param("label_id"),
		middleware.GetUserID(c),
		&req,
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, label)
}

// Delete removes a label and its categories (owner only, idempotent)
// DELETE /project/:project_id/label/:label_id
func (h *LabelHandler) Delete(c *gin.Context) {
	err := h.labelService.Delete(
		c.Param("project_id"),
		c.Param("label_id"),
		middleware.GetUserID(c),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "label deleted"})
}
