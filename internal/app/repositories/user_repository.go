package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qlin/dormtrade/internal/app/models"
	"github.com/qlin/dormtrade/internal/app/models/dto"
	"github.com/qlin/dormtrade/internal/pkg/apperrors"
	"github.com/qlin/dormtrade/internal/pkg/dberrors"
	"github.com/qlin/dormtrade/internal/pkg/helpers"
	"github.com/qlin/dormtrade/internal/pkg/logger"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and sets the generated ID on the model.
// Unique constraint violations are mapped to the matching conflict error.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (student_id, username, email, password, wechat, role_level, status, room_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		user.StudentID, user.Username, user.Email, user.Password,
		user.Wechat, user.RoleLevel, user.Status, user.RoomID,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "users_student_id_key"):
			return apperrors.ErrStudentIDExists
		case dberrors.IsDuplicateConstraintError(err, "users_email_key"):
			return apperrors.ErrEmailAlreadyExists
		case dberrors.IsDuplicateConstraintError(err, "users_username_key"):
			return apperrors.ErrUsernameExists
		}
		logger.Error().Err(err).Msg("Error creating user")
		return err
	}

	return nil
}

const userSelectColumns = `
	u.id, u.student_id, u.username, u.email, u.password, u.wechat,
	u.role_level, u.status, u.room_id, u.created_at, u.updated_at,
	r.id, r.building, r.floor, r.room_no
`

func scanUserWithRoom(row pgx.Row) (*models.User, error) {
	var u models.User
	var roomID *int64
	var building *string
	var floor *int
	var roomNo *string

	err := row.Scan(
		&u.ID, &u.StudentID, &u.Username, &u.Email, &u.Password, &u.Wechat,
		&u.RoleLevel, &u.Status, &u.RoomID, &u.CreatedAt, &u.UpdatedAt,
		&roomID, &building, &floor, &roomNo,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}

	if roomID != nil {
		u.Room = &models.Room{ID: *roomID, Building: *building, Floor: *floor, RoomNo: *roomNo}
	}
	return &u, nil
}

// GetByID retrieves a user by ID with the bound room, if any
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT ` + userSelectColumns + `
		FROM users u
		LEFT JOIN rooms r ON u.room_id = r.id
		WHERE u.id = $1
	`
	return scanUserWithRoom(r.db.QueryRow(ctx, query, id))
}

// GetByStudentID retrieves a user by student ID, the login identifier
func (r *UserRepository) GetByStudentID(ctx context.Context, studentID string) (*models.User, error) {
	query := `
		SELECT ` + userSelectColumns + `
		FROM users u
		LEFT JOIN rooms r ON u.room_id = r.id
		WHERE u.student_id = $1
	`
	return scanUserWithRoom(r.db.QueryRow(ctx, query, studentID))
}

// GetLocation resolves a user's dormitory location. Returns nil without an
// error when the user has no bound room.
func (r *UserRepository) GetLocation(ctx context.Context, userID int64) (*models.Location, error) {
	query := `
		SELECT r.id, r.floor, r.building
		FROM users u
		JOIN rooms r ON u.room_id = r.id
		WHERE u.id = $1
	`

	var loc models.Location
	err := r.db.QueryRow(ctx, query, userID).Scan(&loc.RoomID, &loc.Floor, &loc.Building)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error resolving user location: %w", err)
	}

	return &loc, nil
}

// UpdateProfile applies a partial profile update. Nil fields are untouched.
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) error {
	builder := squirrel.Update("users").
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	if req.Username != nil {
		builder = builder.Set("username", *req.Username)
	}
	if req.Email != nil {
		builder = builder.Set("email", *req.Email)
	}
	if req.Wechat != nil {
		builder = builder.Set("wechat", *req.Wechat)
	}
	if req.RoomID != nil {
		builder = builder.Set("room_id", *req.RoomID)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update profile SQL")
		return err
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "users_email_key"):
			return apperrors.ErrEmailAlreadyExists
		case dberrors.IsDuplicateConstraintError(err, "users_username_key"):
			return apperrors.ErrUsernameExists
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.NewResourceNotFoundError("room does not exist")
		}
		logger.Error().Err(err).Msg("Error updating user profile")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE users SET password = $1, updated_at = now() WHERE id = $2`,
		passwordHash, userID)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// SetStatus bans or reinstates an account
func (r *UserRepository) SetStatus(ctx context.Context, userID int64, status models.UserStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE users SET status = $1, updated_at = now() WHERE id = $2`,
		status, userID)
	if err != nil {
		return fmt.Errorf("error updating user status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// GetAll retrieves a paginated list of users for the admin screens, newest
// first, optionally filtered by status
func (r *UserRepository) GetAll(ctx context.Context, status *models.UserStatus, page, size int) ([]*models.User, dto.PaginationInfo, error) {
	countBuilder := squirrel.Select("count(*)").From("users u").
		PlaceholderFormat(squirrel.Dollar)
	listBuilder := squirrel.Select().Column(squirrel.Expr(userSelectColumns)).
		From("users u").
		LeftJoin("rooms r ON u.room_id = r.id").
		PlaceholderFormat(squirrel.Dollar)

	if status != nil {
		countBuilder = countBuilder.Where(squirrel.Eq{"u.status": *status})
		listBuilder = listBuilder.Where(squirrel.Eq{"u.status": *status})
	}

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error counting users")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, page, size)
	if totalItems == 0 {
		return []*models.User{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	listBuilder = listBuilder.OrderBy("u.created_at DESC", "u.id DESC").
		Limit(uint64(limit)).Offset(offset)

	sqlStr, args, err := listBuilder.ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing users")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		u, err := scanUserWithRoom(rows)
		if err != nil {
			return nil, dto.PaginationInfo{}, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return users, pagination, nil
}

// StudentIDExists checks if a student ID is already registered
func (r *UserRepository) StudentIDExists(ctx context.Context, studentID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE student_id = $1)`, studentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student ID existence: %w", err)
	}
	return exists, nil
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}
	return exists, nil
}
