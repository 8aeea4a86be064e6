// internal/domain/user/service.go
package user

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/your-org/shopping-cart-backend/internal/config"
	"github.com/your-org/shopping-cart-backend/internal/pkg/apperr"
	"github.com/your-org/shopping-cart-backend/internal/pkg/auth"
)

// Service handles user business logic
type Service struct {
	db              *gorm.DB
	config          *config.Config
	passwordManager *auth.PasswordManager
	jwtManager      *auth.JWTManager
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		passwordManager: auth.NewPasswordManager(cfg),
		jwtManager:      auth.NewJWTManager(cfg),
	}
}

// RegisterRequest represents user registration data
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents user login data
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents a profile update
type UpdateProfileRequest struct {
	Email *string `json:"email" binding:"omitempty,email"`
}

// ChangePasswordRequest represents a password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Register creates a new user account
func (s *Service) Register(req *RegisterRequest) (*AuthResponse, error) {
	// Check if user already exists
	var existingUser User
	result := s.db.Where("email = ?", req.Email).First(&existingUser)
	if result.Error == nil {
		return nil, apperr.Conflict("user with this email already exists")
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, apperr.Storage(result.Error)
	}

	// Hash password
	hashedPassword, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	u := User{
		Email:    req.Email,
		Password: hashedPassword,
	}
	if err := s.db.Create(&u).Error; err != nil {
		return nil, apperr.FromStorage(err)
	}

	return s.issueTokens(&u)
}

// Login authenticates a user
func (s *Service) Login(req *LoginRequest) (*AuthResponse, error) {
	var u User
	result := s.db.Where("email = ?", req.Email).First(&u)
	if result.Error != nil {
		return nil, apperr.Unauthorized("invalid email or password")
	}

	if err := s.passwordManager.VerifyPassword(req.Password, u.Password); err != nil {
		return nil, apperr.Unauthorized("invalid email or password")
	}

	return s.issueTokens(&u)
}

// RefreshToken exchanges a valid refresh token for a new token pair
func (s *Service) RefreshToken(refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized("invalid or expired refresh token")
	}

	u, err := s.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(u)
}

// GetByID returns the user or NotFound
func (s *Service) GetByID(userID uuid.UUID) (*User, error) {
	var u User
	result := s.db.Where("id = ?", userID).First(&u)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	if result.Error != nil {
		return nil, apperr.Storage(result.Error)
	}
	u.Password = ""
	return &u, nil
}

// UpdateProfile applies a partial profile update
func (s *Service) UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*User, error) {
	if req.Email == nil {
		return nil, apperr.Validation("at least one field must be provided")
	}

	var u User
	result := s.db.Where("id = ?", userID).First(&u)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	if result.Error != nil {
		return nil, apperr.Storage(result.Error)
	}

	if err := s.db.Model(&u).Update("email", strings.ToLower(*req.Email)).Error; err != nil {
		return nil, apperr.FromStorage(err)
	}

	u.Password = ""
	return &u, nil
}

// ChangePassword verifies the current password and stores a new hash
func (s *Service) ChangePassword(userID uuid.UUID, req *ChangePasswordRequest) error {
	var u User
	result := s.db.Where("id = ?", userID).First(&u)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return apperr.NotFound("user not found")
	}
	if result.Error != nil {
		return apperr.Storage(result.Error)
	}

	if err := s.passwordManager.VerifyPassword(req.CurrentPassword, u.Password); err != nil {
		return apperr.Unauthorized("current password is incorrect")
	}

	hashed, err := s.passwordManager.HashPassword(req.NewPassword)
	if err != nil {
		return apperr.Validation(err.Error())
	}

	if err := s.db.Model(&u).Update("password", hashed).Error; err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (s *Service) issueTokens(u *User) (*AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		return nil, apperr.Internal("failed to generate access token")
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(u.ID, u.Email)
	if err != nil {
		return nil, apperr.Internal("failed to generate refresh token")
	}

	u.Password = ""
	return &AuthResponse{
		User:         u,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.JWT.AccessTokenExpiry.Seconds()),
	}, nil
}
