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

// PostingRepository handles database operations for postings, their images
// and favorites
type PostingRepository struct {
	db *pgxpool.Pool
}

// NewPostingRepository creates a new posting repository
func NewPostingRepository(db *pgxpool.Pool) *PostingRepository {
	return &PostingRepository{db: db}
}

// Common select query builder for postings with owner and tag joins
func (r *PostingRepository) selectPostingQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"p.id", "p.owner_id", "p.title", "p.content", "p.price", "p.quantity",
		"p.brand", "p.condition", "p.cover_image_url", "p.tag_id",
		"p.status", "p.scope", "p.created_at", "p.updated_at",
		"u.username as owner_name", "t.name as tag_name",
		"r.id as room_id", "r.floor", "r.building",
	).From("postings p").
		Join("users u ON p.owner_id = u.id").
		LeftJoin("tags t ON p.tag_id = t.id").
		LeftJoin("rooms r ON u.room_id = r.id").
		PlaceholderFormat(squirrel.Dollar)
}

// ScanPosting scans a row produced by selectPostingQuery
func ScanPosting(row pgx.Row) (*models.Posting, error) {
	var p models.Posting
	var roomID *int64
	var floor *int
	var building *string

	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Title, &p.Content, &p.Price, &p.Quantity,
		&p.Brand, &p.Condition, &p.CoverImageURL, &p.TagID,
		&p.Status, &p.Scope, &p.CreatedAt, &p.UpdatedAt,
		&p.OwnerName, &p.TagName,
		&roomID, &floor, &building,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostingNotFound
		}
		return nil, fmt.Errorf("error scanning posting: %w", err)
	}

	if roomID != nil {
		p.OwnerLoc = &models.Location{RoomID: *roomID, Floor: *floor, Building: *building}
	}
	return &p, nil
}

// Create inserts a new posting and sets the generated ID on the model
func (r *PostingRepository) Create(ctx context.Context, tx pgx.Tx, posting *models.Posting) error {
	query := `
		INSERT INTO postings (owner_id, title, content, price, quantity, brand, condition, tag_id, status, scope)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err := queryRow(ctx, r.db, tx, query,
		posting.OwnerID, posting.Title, posting.Content, posting.Price, posting.Quantity,
		posting.Brand, posting.Condition, posting.TagID, posting.Status, posting.Scope,
	).Scan(&posting.ID, &posting.CreatedAt, &posting.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating posting")
		return err
	}

	return nil
}

// GetByID retrieves a posting by ID with owner, tag and owner location
func (r *PostingRepository) GetByID(ctx context.Context, id int64) (*models.Posting, error) {
	sqlStr, args, err := r.selectPostingQuery().Where(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return ScanPosting(r.db.QueryRow(ctx, sqlStr, args...))
}

// Update applies a partial edit to an owner's posting. Nil fields are
// untouched. The owner condition keeps one user from editing another's
// listing without a prior read.
func (r *PostingRepository) Update(ctx context.Context, id, ownerID int64, req *dto.UpdatePostingRequest, tagID *int64) error {
	builder := squirrel.Update("postings").
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "owner_id": ownerID}).
		PlaceholderFormat(squirrel.Dollar)

	if req.Title != nil {
		builder = builder.Set("title", *req.Title)
	}
	if req.Content != nil {
		builder = builder.Set("content", *req.Content)
	}
	if req.Price != nil {
		builder = builder.Set("price", *req.Price)
	}
	if req.Quantity != nil {
		builder = builder.Set("quantity", *req.Quantity)
	}
	if req.Brand != nil {
		builder = builder.Set("brand", *req.Brand)
	}
	if req.Condition != nil {
		builder = builder.Set("condition", *req.Condition)
	}
	if req.Scope != nil {
		builder = builder.Set("scope", *req.Scope)
	}
	if req.TagName != nil {
		builder = builder.Set("tag_id", tagID)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update posting SQL")
		return err
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error updating posting")
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPostingNotFound
	}

	return nil
}

// SetStatus delists or relists an owner's posting
func (r *PostingRepository) SetStatus(ctx context.Context, id, ownerID int64, status models.PostingStatus) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE postings SET status = $1, updated_at = now()
		WHERE id = $2 AND owner_id = $3
	`, status, id, ownerID)
	if err != nil {
		return fmt.Errorf("error updating posting status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPostingNotFound
	}
	return nil
}

// SetCoverImage stores the cover image URL of a posting
func (r *PostingRepository) SetCoverImage(ctx context.Context, id, ownerID int64, url string) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE postings SET cover_image_url = $1, updated_at = now()
		WHERE id = $2 AND owner_id = $3
	`, url, id, ownerID)
	if err != nil {
		return fmt.Errorf("error setting cover image: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPostingNotFound
	}
	return nil
}

// GetByOwner retrieves a paginated list of a user's own postings, any
// status, newest first
func (r *PostingRepository) GetByOwner(ctx context.Context, ownerID int64, page, size int) ([]*models.Posting, dto.PaginationInfo, error) {
	var totalItems int64
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM postings WHERE owner_id = $1`, ownerID).Scan(&totalItems)
	if err != nil {
		logger.Error().Err(err).Msg("Error counting postings by owner")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, page, size)
	if totalItems == 0 {
		return []*models.Posting{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	sqlStr, args, err := r.selectPostingQuery().
		Where(squirrel.Eq{"p.owner_id": ownerID}).
		OrderBy("p.created_at DESC", "p.id DESC").
		Limit(uint64(limit)).Offset(offset).
		ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	postings, err := r.queryPostings(ctx, sqlStr, args)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return postings, pagination, nil
}

func (r *PostingRepository) queryPostings(ctx context.Context, sqlStr string, args []any) ([]*models.Posting, error) {
	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying postings")
		return nil, err
	}
	defer rows.Close()

	postings := make([]*models.Posting, 0)
	for rows.Next() {
		p, err := ScanPosting(rows)
		if err != nil {
			return nil, err
		}
		postings = append(postings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return postings, nil
}

// AddImage attaches an uploaded image to a posting
func (r *PostingRepository) AddImage(ctx context.Context, image *models.Image) error {
	query := `
		INSERT INTO images (posting_id, uploader_id, path, category)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		image.PostingID, image.UploaderID, image.Path, image.Category,
	).Scan(&image.ID, &image.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrPostingNotFound
		}
		logger.Error().Err(err).Msg("Error attaching image")
		return err
	}

	return nil
}

// GetImages retrieves all images of a posting, oldest first
func (r *PostingRepository) GetImages(ctx context.Context, postingID int64) ([]*models.Image, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, posting_id, uploader_id, path, category, created_at
		FROM images
		WHERE posting_id = $1
		ORDER BY id
	`, postingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []*models.Image
	for rows.Next() {
		var img models.Image
		if err := rows.Scan(&img.ID, &img.PostingID, &img.UploaderID,
			&img.Path, &img.Category, &img.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, &img)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return images, nil
}

// DeleteImage removes an image by ID, restricted to its uploader
func (r *PostingRepository) DeleteImage(ctx context.Context, imageID, uploaderID int64) (*models.Image, error) {
	query := `
		DELETE FROM images
		WHERE id = $1 AND uploader_id = $2
		RETURNING id, posting_id, uploader_id, path, category, created_at
	`

	var img models.Image
	err := r.db.QueryRow(ctx, query, imageID, uploaderID).Scan(
		&img.ID, &img.PostingID, &img.UploaderID, &img.Path, &img.Category, &img.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error deleting image: %w", err)
	}

	return &img, nil
}

// UpsertFavorite bookmarks a posting for a user. Re-favoriting an already
// bookmarked posting refreshes its timestamp so it moves to the top of the
// favorites list.
func (r *PostingRepository) UpsertFavorite(ctx context.Context, userID, postingID int64) error {
	query := `
		INSERT INTO favorites (user_id, posting_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, posting_id) DO UPDATE SET created_at = now()
	`

	_, err := r.db.Exec(ctx, query, userID, postingID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrPostingNotFound
		}
		logger.Error().Err(err).Msg("Error upserting favorite")
		return err
	}

	return nil
}

// DeleteFavorite removes a bookmark. Removing a non-existent bookmark is
// not an error.
func (r *PostingRepository) DeleteFavorite(ctx context.Context, userID, postingID int64) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND posting_id = $2`,
		userID, postingID)
	if err != nil {
		return fmt.Errorf("error deleting favorite: %w", err)
	}
	return nil
}

// IsFavorited checks whether a user has bookmarked a posting
func (r *PostingRepository) IsFavorited(ctx context.Context, userID, postingID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND posting_id = $2)`,
		userID, postingID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking favorite: %w", err)
	}
	return exists, nil
}

// GetFavorites retrieves a user's bookmarked postings, most recently
// favorited first
func (r *PostingRepository) GetFavorites(ctx context.Context, userID int64, page, size int) ([]*models.Posting, dto.PaginationInfo, error) {
	var totalItems int64
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM favorites WHERE user_id = $1`, userID).Scan(&totalItems)
	if err != nil {
		logger.Error().Err(err).Msg("Error counting favorites")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, page, size)
	if totalItems == 0 {
		return []*models.Posting{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	sqlStr, args, err := r.selectPostingQuery().
		Join("favorites f ON f.posting_id = p.id").
		Where(squirrel.Eq{"f.user_id": userID}).
		OrderBy("f.created_at DESC", "p.id DESC").
		Limit(uint64(limit)).Offset(offset).
		ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	postings, err := r.queryPostings(ctx, sqlStr, args)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return postings, pagination, nil
}
