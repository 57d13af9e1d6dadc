package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qlin/dormtrade/internal/app/models"
)

// TagRepository handles database operations for item category tags
type TagRepository struct {
	db *pgxpool.Pool
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *pgxpool.Pool) *TagRepository {
	return &TagRepository{db: db}
}

// GetOrCreate resolves a tag name to its ID, inserting the tag if it does
// not exist yet. The ref counter is not touched here.
func (r *TagRepository) GetOrCreate(ctx context.Context, name string) (int64, error) {
	// ON CONFLICT DO UPDATE instead of DO NOTHING so RETURNING always
	// yields a row.
	query := `
		INSERT INTO tags (name, ref_count)
		VALUES ($1, 0)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`

	var id int64
	if err := r.db.QueryRow(ctx, query, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("error resolving tag %q: %w", name, err)
	}
	return id, nil
}

// IncrementRef bumps a tag's reference counter
func (r *TagRepository) IncrementRef(ctx context.Context, tx pgx.Tx, id int64) error {
	_, err := exec(ctx, r.db, tx, `UPDATE tags SET ref_count = ref_count + 1 WHERE id = $1`, id)
	return err
}

// DecrementRef lowers a tag's reference counter, never below zero
func (r *TagRepository) DecrementRef(ctx context.Context, tx pgx.Tx, id int64) error {
	_, err := exec(ctx, r.db, tx,
		`UPDATE tags SET ref_count = GREATEST(ref_count - 1, 0) WHERE id = $1`, id)
	return err
}

// GetPopular retrieves the most referenced tags
func (r *TagRepository) GetPopular(ctx context.Context, limit int) ([]*models.Tag, error) {
	if limit <= 0 {
		limit = 10
	}

	return r.queryTags(ctx, `
		SELECT id, name, ref_count
		FROM tags
		ORDER BY ref_count DESC, name
		LIMIT $1
	`, limit)
}

// Suggest retrieves tags whose name contains the fragment, most referenced
// first. Backs the tag autocomplete.
func (r *TagRepository) Suggest(ctx context.Context, fragment string, limit int) ([]*models.Tag, error) {
	if limit <= 0 {
		limit = 10
	}

	return r.queryTags(ctx, `
		SELECT id, name, ref_count
		FROM tags
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY ref_count DESC, name
		LIMIT $2
	`, fragment, limit)
}

func (r *TagRepository) queryTags(ctx context.Context, query string, args ...any) ([]*models.Tag, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.RefCount); err != nil {
			return nil, err
		}
		tags = append(tags, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tags, nil
}
