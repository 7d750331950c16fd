package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/annotext/backend/internal/config"
	"github.com/annotext/backend/internal/middleware"
	"github.com/annotext/backend/internal/services"
	"github.com/annotext/backend/internal/utils"
	"github.com/annotext/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	userService *services.UserService
	jwtConfig   *config.JWTConfig
}

func NewUserHandler(db *gorm.DB, jwtCfg *config.JWTConfig) *UserHandler {
	return &UserHandler{
		userService: services.NewUserService(db),
		jwtConfig:   jwtCfg,
	}
}

// Register creates a new account
// POST /register
func (h *UserHandler) Register(c *gin.Context) {
	// Strict decoding: unknown fields in the payload are rejected.
	var req services.RegisterRequest
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		response.BadRequest(c, "username, email and password are required")
		return
	}
	if !strings.Contains(req.Email, "@") {
		response.BadRequest(c, "invalid email address")
		return
	}

	user, err := h.userService.Register(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": user.ID})
}

// Token exchanges a username/password form for a bearer token
// POST /token
func (h *UserHandler) Token(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		response.BadRequest(c, "username and password are required")
		return
	}

	user, err := h.userService.Authenticate(username, password)
	if err != nil {
		c.Header("WWW-Authenticate", "Bearer")
		response.Error(c, err)
		return
	}

	token, err := utils.GenerateToken(user.ID, h.jwtConfig.ExpireMinute)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Me returns the current authenticated user
// GET /user/me
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.userService.GetByID(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username": user.Username,
		"email":    user.Email,
	})
}
