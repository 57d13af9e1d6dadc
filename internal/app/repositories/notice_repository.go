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

// NoticeRepository handles database operations for notices and announcements
type NoticeRepository struct {
	db *pgxpool.Pool
}

// NewNoticeRepository creates a new notice repository
func NewNoticeRepository(db *pgxpool.Pool) *NoticeRepository {
	return &NoticeRepository{db: db}
}

// Create inserts a single-receiver notice
func (r *NoticeRepository) Create(ctx context.Context, notice *models.Notice) error {
	query := `
		INSERT INTO notices (type, title, content, receiver_id, related_order_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		notice.Type, notice.Title, notice.Content, notice.ReceiverID,
		notice.RelatedOrderID, models.NoticeStatusUnread,
	).Scan(&notice.ID, &notice.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating notice")
		return err
	}
	notice.Status = models.NoticeStatusUnread

	return nil
}

// CreateForAllAdmins fans a system notice out to every administrator
// account in one statement
func (r *NoticeRepository) CreateForAllAdmins(ctx context.Context, content string, relatedOrderID *int64) error {
	query := `
		INSERT INTO notices (type, content, receiver_id, related_order_id, status)
		SELECT $1, $2, id, $3, $4
		FROM users
		WHERE role_level = $5 AND status = $6
	`

	_, err := r.db.Exec(ctx, query,
		models.NoticeTypeSystem, content, relatedOrderID,
		models.NoticeStatusUnread, models.RoleLevelAdmin, models.UserStatusActive)
	if err != nil {
		logger.Error().Err(err).Msg("Error fanning out admin notice")
		return err
	}

	return nil
}

// CreateAnnouncement inserts a platform-wide announcement, a notice row
// with a NULL receiver
func (r *NoticeRepository) CreateAnnouncement(ctx context.Context, title, content string) (*models.Notice, error) {
	notice := &models.Notice{
		Type:    models.NoticeTypeAnnouncement,
		Title:   &title,
		Content: content,
		Status:  models.NoticeStatusUnread,
	}

	query := `
		INSERT INTO notices (type, title, content, receiver_id, status)
		VALUES ($1, $2, $3, NULL, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		notice.Type, notice.Title, notice.Content, notice.Status,
	).Scan(&notice.ID, &notice.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating announcement")
		return nil, err
	}

	return notice, nil
}

// DeleteAnnouncement removes a platform-wide announcement. The WHERE clause
// pins the announcement type and the NULL receiver, so inbox notices are out
// of reach even with a matching id.
func (r *NoticeRepository) DeleteAnnouncement(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		DELETE FROM notices
		WHERE id = $1 AND type = $2 AND receiver_id IS NULL
	`, id, models.NoticeTypeAnnouncement)
	if err != nil {
		logger.Error().Err(err).Msg("Error deleting announcement")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoticeNotFound
	}

	return nil
}

func scanNotice(row pgx.Row) (*models.Notice, error) {
	var n models.Notice
	err := row.Scan(
		&n.ID, &n.Type, &n.Title, &n.Content, &n.ReceiverID,
		&n.RelatedOrderID, &n.Status, &n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoticeNotFound
		}
		return nil, fmt.Errorf("error scanning notice: %w", err)
	}
	return &n, nil
}

const noticeColumns = "id, type, title, content, receiver_id, related_order_id, status, created_at"

// GetByReceiver retrieves a user's inbox, optionally filtered by read
// status, newest first
func (r *NoticeRepository) GetByReceiver(ctx context.Context, receiverID int64, status *models.NoticeStatus, page, size int) ([]*models.Notice, dto.PaginationInfo, error) {
	countBuilder := squirrel.Select("count(*)").From("notices").
		Where(squirrel.Eq{"receiver_id": receiverID}).
		PlaceholderFormat(squirrel.Dollar)
	listBuilder := squirrel.Select(noticeColumns).From("notices").
		Where(squirrel.Eq{"receiver_id": receiverID}).
		PlaceholderFormat(squirrel.Dollar)

	if status != nil {
		countBuilder = countBuilder.Where(squirrel.Eq{"status": *status})
		listBuilder = listBuilder.Where(squirrel.Eq{"status": *status})
	}

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error counting notices")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, page, size)
	if totalItems == 0 {
		return []*models.Notice{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	sqlStr, args, err := listBuilder.
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).Offset(offset).
		ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return r.queryNotices(ctx, sqlStr, args, pagination)
}

// GetAnnouncements retrieves platform-wide announcements, newest first
func (r *NoticeRepository) GetAnnouncements(ctx context.Context, page, size int) ([]*models.Notice, dto.PaginationInfo, error) {
	var totalItems int64
	err := r.db.QueryRow(ctx, `
		SELECT count(*) FROM notices WHERE type = $1 AND receiver_id IS NULL
	`, models.NoticeTypeAnnouncement).Scan(&totalItems)
	if err != nil {
		logger.Error().Err(err).Msg("Error counting announcements")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, page, size)
	if totalItems == 0 {
		return []*models.Notice{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	sqlStr := `
		SELECT ` + noticeColumns + `
		FROM notices
		WHERE type = $1 AND receiver_id IS NULL
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	return r.queryNotices(ctx, sqlStr,
		[]any{models.NoticeTypeAnnouncement, limit, offset}, pagination)
}

func (r *NoticeRepository) queryNotices(ctx context.Context, sqlStr string, args []any, pagination dto.PaginationInfo) ([]*models.Notice, dto.PaginationInfo, error) {
	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing notices")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	notices := make([]*models.Notice, 0)
	for rows.Next() {
		n, err := scanNotice(rows)
		if err != nil {
			return nil, dto.PaginationInfo{}, err
		}
		notices = append(notices, n)
	}
	if err := rows.Err(); err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return notices, pagination, nil
}

// CountUnread returns the viewer's unread inbox counter
func (r *NoticeRepository) CountUnread(ctx context.Context, receiverID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT count(*) FROM notices WHERE receiver_id = $1 AND status = $2
	`, receiverID, models.NoticeStatusUnread).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting unread notices: %w", err)
	}
	return count, nil
}

// MarkRead flags a notice as read, scoped to its receiver. Marking an
// already read notice is a no-op, not an error; a notice belonging to
// another user is reported as not found.
func (r *NoticeRepository) MarkRead(ctx context.Context, noticeID, receiverID int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE notices SET status = $1
		WHERE id = $2 AND receiver_id = $3
	`, models.NoticeStatusRead, noticeID, receiverID)
	if err != nil {
		return fmt.Errorf("error marking notice read: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoticeNotFound
	}
	return nil
}

// MarkAllRead flags the viewer's whole inbox as read
func (r *NoticeRepository) MarkAllRead(ctx context.Context, receiverID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE notices SET status = $1
		WHERE receiver_id = $2 AND status = $3
	`, models.NoticeStatusRead, receiverID, models.NoticeStatusUnread)
	if err != nil {
		return fmt.Errorf("error marking all notices read: %w", err)
	}
	return nil
}
