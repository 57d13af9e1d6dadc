package services

import (
	"context"
	"fmt"

	"github.com/qlin/dormtrade/internal/app/models"
	"github.com/qlin/dormtrade/internal/app/models/dto"
	"github.com/qlin/dormtrade/internal/app/repositories"
	"github.com/qlin/dormtrade/internal/pkg/apperrors"
	"github.com/qlin/dormtrade/internal/pkg/auth"
	"github.com/qlin/dormtrade/internal/pkg/logger"
	"github.com/qlin/dormtrade/internal/pkg/validation"
)

// UserService handles profile and account administration
type UserService struct {
	userRepo *repositories.UserRepository
	roomRepo *repositories.RoomRepository
}

// NewUserService creates a new user service instance
func NewUserService(userRepo *repositories.UserRepository, roomRepo *repositories.RoomRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		roomRepo: roomRepo,
	}
}

// GetProfile retrieves a user's profile with the bound room
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile applies a partial profile update for the requesting user
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error) {
	if req.Email != nil && !validation.IsValidEmail(*req.Email) {
		return nil, apperrors.NewValidationError("invalid email format")
	}
	if req.Username != nil && validation.IsBlank(*req.Username) {
		return nil, apperrors.NewValidationError("username cannot be blank")
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

	if err := s.userRepo.UpdateProfile(ctx, userID, req); err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, userID)
}

// ChangePassword verifies the old password and stores a new hash
func (s *UserService) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, req.OldPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, userID, hash)
}

// GetUsers retrieves the paginated user list for the admin screens
func (s *UserService) GetUsers(ctx context.Context, status *models.UserStatus, page, size int) ([]*models.User, dto.PaginationInfo, error) {
	return s.userRepo.GetAll(ctx, status, page, size)
}

// SetUserStatus bans or reinstates an account. Admins cannot ban
// themselves or other admins.
func (s *UserService) SetUserStatus(ctx context.Context, adminID, targetID int64, status models.UserStatus) error {
	if status == models.UserStatusBanned {
		if targetID == adminID {
			return apperrors.NewForbiddenError("cannot ban your own account")
		}
		target, err := s.userRepo.GetByID(ctx, targetID)
		if err != nil {
			return err
		}
		if target.IsAdmin() {
			return apperrors.NewForbiddenError("cannot ban an administrator account")
		}
	}

	if err := s.userRepo.SetStatus(ctx, targetID, status); err != nil {
		return err
	}

	logger.Info().
		Int64("adminId", adminID).
		Int64("targetId", targetID).
		Str("status", string(status)).
		Msg("User status changed")

	return nil
}

// GetRooms retrieves the dormitory room catalog
func (s *UserService) GetRooms(ctx context.Context) ([]*models.Room, error) {
	return s.roomRepo.GetAll(ctx)
}
