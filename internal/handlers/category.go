package handlers

import (
	"net/http"

	"github.com/annotext/backend/internal/middleware"
	"github.com/annotext/backend/internal/services"
	"github.com/annotext/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{
		categoryService: services.NewCategoryService(db),
	}
}

// Create records an annotated offset range (any member)
// POST /project/:project_id/dataset/:dataset_id/category
func (h *CategoryHandler) Create(c *gin.Context) {
	var req services.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.Create(
		c.Param("project_id"),
		c.Param("dataset_id"),
		middleware.GetUserID(c),
		&req,
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category_id": category.ID})
}

// Get returns a single category (any member)
// GET /project/:project_id/dataset/:dataset_id/category/:category_id
func (h *CategoryHandler) Get(c *gin.Context) {
	category, err := h.categoryService.Get(
		c.Param("project_id"),
		c.Param("dataset_id"),
		c.Param("category_id"),
		middleware.GetUserID(c),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// List returns all categories of a dataset (any member)
// GET /project/:project_id/dataset/:dataset_id/category
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(
		c.Param("project_id"),
		c.Param("dataset_id"),
		middleware.GetUserID(c),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// Update merges the provided fields onto a category (any member)
// PUT /project/:project_id/dataset/:dataset_id/category/:category_id
func (h *CategoryHandler) Update(c *gin.Context) {
	var req services.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.Update(
		c.Param("project_id"),
		c.Param("dataset_id"),
		c.Param("category_id"),
		middleware.GetUserID(c),
		&req,
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// Delete removes a category (any member, idempotent)
// DELETE /project/:project_id/dataset/:dataset_id/category/:category_id
func (h *CategoryHandler) Delete(c *gin.Context) {
	err := h.categoryService.Delete(
		c.Param("project_id"),
		c.Param("dataset_id"),
		c.Param("category_id"),
		middleware.GetUserID(c),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}
