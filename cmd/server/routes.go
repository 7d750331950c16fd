package main

import (
	"github.com/annotext/backend/internal/config"
	"github.com/annotext/backend/internal/handlers"
	"github.com/annotext/backend/internal/middleware"
	"github.com/annotext/backend/internal/models"
	"github.com/annotext/backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, cfg *config.Config) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	db := models.GetDB()
	userHandler := handlers.NewUserHandler(db, &cfg.JWT)
	projectHandler := handlers.NewProjectHandler(db)
	datasetHandler := handlers.NewDatasetHandler(db)
	labelHandler := handlers.NewLabelHandler(db)
	categoryHandler := handlers.NewCategoryHandler(db)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "annotext"})
	})

	// Public routes, rate limited against credential stuffing
	authLimiter := middleware.NewRateLimiter(5, 10)
	public := r.Group("", authLimiter.Middleware())
	{
		public.POST("/register", userHandler.Register)
		public.POST("/token", userHandler.Token)
	}

	// Protected routes
	protected := r.Group("")
	protected.Use(middleware.AuthRequired())
	{
		protected.GET("/user/me", userHandler.Me)

		// Projects
		protected.POST("/project", projectHandler.Create)
		protected.GET("/project", projectHandler.List)
		protected.PUT("/project", projectHandler.Update)

		// Datasets (project owner only)
		protected.POST("/project/:project_id/dataset", datasetHandler.Upload)
		protected.GET("/project/:project_id/dataset", datasetHandler.List)
		protected.GET("/project/:project_id/dataset/:dataset_id", datasetHandler.Get)
		protected.DELETE("/project/:project_id/dataset/:dataset_id", datasetHandler.Delete)

		// Labels (project owner only)
		protected.POST("/project/:project_id/label", labelHandler.Create)
		protected.GET("/project/:project_id/label", labelHandler.List)
		protected.GET("/project/:project_id/label/:label_id", labelHandler.Get)
		protected.PUT("/project/:project_id/label/:label_id", labelHandler.Update)
		protected.DELETE("/project/:project_id/label/:label_id", labelHandler.Delete)

		// Categories (any project member)
		protected.POST("/project/:project_id/dataset/:dataset_id/category", categoryHandler.Create)
		protected.GET("/project/:project_id/dataset/:dataset_id/category", categoryHandler.List)
		protected.GET("/project/:project_id/dataset/:dataset_id/category/:category_id", categoryHandler.Get)
		protected.PUT("/project/:project_id/dataset/:dataset_id/category/:category_id", categoryHandler.Update)
		protected.DELETE("/project/:project_id/dataset/:dataset_id/category/:category_id", categoryHandler.Delete)
	}
}
