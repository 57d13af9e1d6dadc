package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/qlin/dormtrade/internal/app/models"
	"github.com/qlin/dormtrade/internal/app/models/dto"
	"github.com/qlin/dormtrade/internal/app/repositories"
	"github.com/qlin/dormtrade/internal/pkg/apperrors"
	"github.com/qlin/dormtrade/internal/pkg/auth"
	"github.com/qlin/dormtrade/internal/pkg/logger"
	"github.com/qlin/dormtrade/internal/pkg/validation"
)

// AuthService handles registration and login
type AuthService struct {
	userRepo   *repositories.UserRepository
	roomRepo   *repositories.RoomRepository
	jwtService *auth.JWTService
	adminCode  string
}

// NewAuthService creates a new auth service instance
func NewAuthService(userRepo *repositories.UserRepository, roomRepo *repositories.RoomRepository, jwtService *auth.JWTService, adminCode string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		roomRepo:   roomRepo,
		jwtService: jwtService,
		adminCode:  adminCode,
	}
}

// Register creates a new account and returns a signed token for it. A
// matching admin registration code grants the administrator role level;
// a non-empty code that does not match is rejected rather than silently
// downgraded.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if !validation.IsValidStudentID(req.StudentID) {
		return nil, apperrors.ErrInvalidStudentID
	}
	if !validation.IsValidEmail(req.Email) {
		return nil, apperrors.NewValidationError("invalid email format")
	}
	if validation.IsBlank(req.Username) {
		return nil, apperrors.NewValidationError("username cannot be blank")
	}

	// Pre-check for a friendlier error; the unique constraint still backs
	// this up against races.
	emailTaken, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if emailTaken {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	roleLevel := models.RoleLevelMember
	if req.AdminCode != "" {
		if s.adminCode == "" || req.AdminCode != s.adminCode {
			return nil, apperrors.NewForbiddenError("invalid admin registration code")
		}
		roleLevel = models.RoleLevelAdmin
	}

	if req.RoomID != nil {
		exists, err := s.roomRepo.Exists(ctx, *req.RoomID)
		if err != nil {
			return nil, fmt.Errorf("error checking room: %w", err)
		}
		if !exists {
			return nil, apperrors.NewResourceNotFoundError("room does not exist")
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		StudentID: req.StudentID,
		Username:  req.Username,
		Email:     req.Email,
		Password:  hash,
		Wechat:    req.Wechat,
		RoleLevel: roleLevel,
		Status:    models.UserStatusActive,
		RoomID:    req.RoomID,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Int64("userId", user.ID).Str("studentId", user.StudentID).Msg("User registered")

	return s.issueToken(ctx, user)
}

// Login authenticates by student ID and password
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByStudentID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.IsBanned() {
		return nil, apperrors.ErrAccountBanned
	}

	return s.issueToken(ctx, user)
}

func (s *AuthService) issueToken(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(user.ID, user.StudentID, user.Username, user.RoleLevel)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	// Attach the room for the profile payload if only the ID is bound
	if user.Room == nil && user.RoomID != nil {
		if room, err := s.roomRepo.GetByID(ctx, *user.RoomID); err == nil {
			user.Room = room
		}
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   int64(expiresIn),
		},
		User: dto.FromUser(user),
	}, nil
}
