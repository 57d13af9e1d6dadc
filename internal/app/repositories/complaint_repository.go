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
	"github.com/qlin/dormtrade/internal/pkg/helpers"
	"github.com/qlin/dormtrade/internal/pkg/logger"
)

// ComplaintRepository handles database operations for complaints
type ComplaintRepository struct {
	db *pgxpool.Pool
}

// NewComplaintRepository creates a new complaint repository
func NewComplaintRepository(db *pgxpool.Pool) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

// Create files a new complaint and sets the generated ID on the model
func (r *ComplaintRepository) Create(ctx context.Context, complaint *models.Complaint) error {
	query := `
		INSERT INTO complaints (order_id, complainant_id, accused_id, content, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		complaint.OrderID, complaint.ComplainantID, complaint.AccusedID,
		complaint.Content, models.ComplaintStatusPending,
	).Scan(&complaint.ID, &complaint.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating complaint")
		return err
	}
	complaint.Status = models.ComplaintStatusPending

	return nil
}

// HasOpenComplaint checks whether the user already has an undecided
// complaint on the order
func (r *ComplaintRepository) HasOpenComplaint(ctx context.Context, orderID, complainantID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM complaints
			WHERE order_id = $1 AND complainant_id = $2 AND status IN ($3, $4)
		)
	`, orderID, complainantID,
		models.ComplaintStatusPending, models.ComplaintStatusProcessing).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking open complaint: %w", err)
	}
	return exists, nil
}

// Common select query builder for complaints with party and posting joins
func (r *ComplaintRepository) selectComplaintQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"c.id", "c.order_id", "c.complainant_id", "c.accused_id", "c.content",
		"c.status", "c.result", "c.handled_by", "c.handled_at", "c.created_at",
		"cu.username as complainant_name", "au.username as accused_name",
		"p.title as posting_title",
	).From("complaints c").
		Join("users cu ON c.complainant_id = cu.id").
		Join("users au ON c.accused_id = au.id").
		Join("orders o ON c.order_id = o.id").
		Join("postings p ON o.posting_id = p.id").
		PlaceholderFormat(squirrel.Dollar)
}

// ScanComplaint scans a row produced by selectComplaintQuery
func ScanComplaint(row pgx.Row) (*models.Complaint, error) {
	var c models.Complaint
	err := row.Scan(
		&c.ID, &c.OrderID, &c.ComplainantID, &c.AccusedID, &c.Content,
		&c.Status, &c.Result, &c.HandledBy, &c.HandledAt, &c.CreatedAt,
		&c.ComplainantName, &c.AccusedName, &c.PostingTitle,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrComplaintNotFound
		}
		return nil, fmt.Errorf("error scanning complaint: %w", err)
	}
	return &c, nil
}

// GetByID retrieves a complaint by ID with joined display data
func (r *ComplaintRepository) GetByID(ctx context.Context, id int64) (*models.Complaint, error) {
	sqlStr, args, err := r.selectComplaintQuery().Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return ScanComplaint(r.db.QueryRow(ctx, sqlStr, args...))
}

// MarkProcessing moves a PENDING complaint to PROCESSING and records the
// handling admin. Complaints already past PENDING are left untouched; the
// zero-row case is only an error when the complaint does not exist at all.
func (r *ComplaintRepository) MarkProcessing(ctx context.Context, id, adminID int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE complaints
		SET status = $1, handled_by = $2, handled_at = now()
		WHERE id = $3 AND status = $4
	`, models.ComplaintStatusProcessing, adminID, id, models.ComplaintStatusPending)
	if err != nil {
		logger.Error().Err(err).Msg("Error marking complaint processing")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM complaints WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("error checking complaint existence: %w", err)
		}
		if !exists {
			return apperrors.ErrComplaintNotFound
		}
	}

	return nil
}

// Resolve records a final administrator decision. The WHERE clause only
// matches undecided complaints, so a decision cannot be overwritten. The
// handling admin and timestamp are always recorded.
func (r *ComplaintRepository) Resolve(ctx context.Context, id int64, status models.ComplaintStatus, result *string, adminID int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE complaints
		SET status = $1, result = $2, handled_by = $3, handled_at = now()
		WHERE id = $4 AND status IN ($5, $6)
	`, status, result, adminID, id,
		models.ComplaintStatusPending, models.ComplaintStatusProcessing)
	if err != nil {
		logger.Error().Err(err).Msg("Error resolving complaint")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM complaints WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("error checking complaint existence: %w", err)
		}
		if !exists {
			return apperrors.ErrComplaintNotFound
		}
		return apperrors.NewConflictError("complaint is already decided")
	}

	return nil
}

// GetByComplainant retrieves a user's own complaints, newest first
func (r *ComplaintRepository) GetByComplainant(ctx context.Context, userID int64, page, size int) ([]*models.Complaint, dto.PaginationInfo, error) {
	return r.list(ctx, squirrel.Eq{"c.complainant_id": userID}, page, size)
}

// GetByOrder retrieves the complaints filed on one order, newest first
func (r *ComplaintRepository) GetByOrder(ctx context.Context, orderID int64, page, size int) ([]*models.Complaint, dto.PaginationInfo, error) {
	return r.list(ctx, squirrel.Eq{"c.order_id": orderID}, page, size)
}

// GetAll retrieves all complaints for the admin screens, optionally filtered
// by status, newest first
func (r *ComplaintRepository) GetAll(ctx context.Context, status *models.ComplaintStatus, page, size int) ([]*models.Complaint, dto.PaginationInfo, error) {
	var predicate squirrel.Sqlizer
	if status != nil {
		predicate = squirrel.Eq{"c.status": *status}
	}
	return r.list(ctx, predicate, page, size)
}

func (r *ComplaintRepository) list(ctx context.Context, predicate squirrel.Sqlizer, page, size int) ([]*models.Complaint, dto.PaginationInfo, error) {
	countBuilder := squirrel.Select("count(*)").From("complaints c").
		PlaceholderFormat(squirrel.Dollar)
	listBuilder := r.selectComplaintQuery()

	if predicate != nil {
		countBuilder = countBuilder.Where(predicate)
		listBuilder = listBuilder.Where(predicate)
	}

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error counting complaints")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, page, size)
	if totalItems == 0 {
		return []*models.Complaint{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	sqlStr, args, err := listBuilder.
		OrderBy("c.created_at DESC", "c.id DESC").
		Limit(uint64(limit)).Offset(offset).
		ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing complaints")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	complaints := make([]*models.Complaint, 0)
	for rows.Next() {
		c, err := ScanComplaint(rows)
		if err != nil {
			return nil, dto.PaginationInfo{}, err
		}
		complaints = append(complaints, c)
	}
	if err := rows.Err(); err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return complaints, pagination, nil
}
