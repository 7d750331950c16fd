package services

import (
	"errors"

	"github.com/annotext/backend/internal/models"
	"github.com/annotext/backend/internal/utils"
	"github.com/annotext/backend/pkg/response"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new user. Username and email are checked
// case-insensitively before insert; the unique indexes on the users table
// back that check up, so a race between the check and the insert still
// cannot produce duplicates.
func (s *UserService) Register(req *RegisterRequest) (*models.User, error) {
	taken, err := s.usernameTaken(req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, response.NewBadRequest("username already registered")
	}

	taken, err = s.emailTaken(req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, response.NewBadRequest("email already registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewBadRequest("username or email already registered")
		}
		return nil, err
	}

	return &user, nil
}

// Authenticate verifies a username/password pair and returns the user.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorized("incorrect username or password")
		}
		return nil, err
	}

	if !utils.CheckPassword(password, user.PasswordHash) {
		return nil, response.NewUnauthorized("incorrect username or password")
	}

	return &user, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) usernameTaken(username string) (bool, error) {
	var count int64
	err := s.db.Model(&models.User{}).
		Where("LOWER(username) = LOWER(?)", username).
		Count(&count).Error
	return count > 0, err
}

func (s *UserService) emailTaken(email string) (bool, error) {
	var count int64
	err := s.db.Model(&models.User{}).
		Where("LOWER(email) = LOWER(?)", email).
		Count(&count).Error
	return count > 0, err
}
