package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qlin/dormtrade/internal/app/models"
	"github.com/qlin/dormtrade/internal/app/models/dto"
	"github.com/qlin/dormtrade/internal/pkg/helpers"
	"github.com/qlin/dormtrade/internal/pkg/logger"
)

// SearchParams holds the filters of a visibility-scoped catalog search
type SearchParams struct {
	Keyword  string
	TagName  string
	Range    models.RangeFilter
	PriceMin *float64
	PriceMax *float64
	Page     int
	Size     int
}

// SearchRepository runs visibility-scoped catalog queries. Every query is
// evaluated against the viewer's resolved location; a posting is returned
// only when its publisher-declared scope admits the viewer.
type SearchRepository struct {
	db *pgxpool.Pool
}

// NewSearchRepository creates a new search repository
func NewSearchRepository(db *pgxpool.Pool) *SearchRepository {
	return &SearchRepository{db: db}
}

// visibilityPredicate builds the SQL form of the scope rule. CAMPUS postings
// are visible to everyone with a resolvable location. Location scopes compare
// the poster's room (joined as r) against the viewer's location; a poster
// without a room can never satisfy a location scope because the joined
// columns are NULL. A viewer without a location matches nothing; the service
// short-circuits that case before querying, this keeps the SQL honest if a
// nil viewer ever reaches here.
func visibilityPredicate(viewer *models.Location) squirrel.Sqlizer {
	if viewer == nil {
		return squirrel.Expr("FALSE")
	}

	return squirrel.Or{
		squirrel.Eq{"p.scope": models.ScopeCampus},
		squirrel.And{
			squirrel.Eq{"p.scope": models.ScopeBuilding},
			squirrel.Eq{"r.building": viewer.Building},
		},
		squirrel.And{
			squirrel.Eq{"p.scope": models.ScopeFloor},
			squirrel.Eq{"r.building": viewer.Building},
			squirrel.Eq{"r.floor": viewer.Floor},
		},
		squirrel.And{
			squirrel.Eq{"p.scope": models.ScopeRoom},
			squirrel.Eq{"r.id": viewer.RoomID},
		},
	}
}

// rangePredicate builds the viewer-selected narrowing. It is ANDed onto the
// visibility rule, so it can only shrink the result set. The caller rejects
// range filters for viewers without a location before reaching here.
func rangePredicate(filter models.RangeFilter, viewer *models.Location) squirrel.Sqlizer {
	switch filter {
	case models.RangeBuilding:
		return squirrel.Eq{"r.building": viewer.Building}
	case models.RangeFloor:
		return squirrel.And{
			squirrel.Eq{"r.building": viewer.Building},
			squirrel.Eq{"r.floor": viewer.Floor},
		}
	case models.RangeRoom:
		return squirrel.Eq{"r.id": viewer.RoomID}
	}
	return nil
}

// Search retrieves the listed postings visible to the viewer, filtered and
// paginated, newest first
func (r *SearchRepository) Search(ctx context.Context, viewer *models.Location, params SearchParams) ([]*models.Posting, dto.PaginationInfo, error) {
	baseConditions := func(b squirrel.SelectBuilder) squirrel.SelectBuilder {
		b = b.Where(squirrel.Eq{"p.status": models.PostingStatusListed}).
			Where(visibilityPredicate(viewer))

		if pred := rangePredicate(params.Range, viewer); pred != nil {
			b = b.Where(pred)
		}
		if params.Keyword != "" {
			like := "%" + params.Keyword + "%"
			b = b.Where(squirrel.Or{
				squirrel.ILike{"p.title": like},
				squirrel.ILike{"p.content": like},
				squirrel.ILike{"p.brand": like},
				squirrel.ILike{"t.name": like},
			})
		}
		if params.TagName != "" {
			b = b.Where(squirrel.Eq{"t.name": params.TagName})
		}
		if params.PriceMin != nil {
			b = b.Where(squirrel.GtOrEq{"p.price": *params.PriceMin})
		}
		if params.PriceMax != nil {
			b = b.Where(squirrel.LtOrEq{"p.price": *params.PriceMax})
		}
		return b
	}

	countBuilder := baseConditions(squirrel.Select("count(*)").
		From("postings p").
		Join("users u ON p.owner_id = u.id").
		LeftJoin("tags t ON p.tag_id = t.id").
		LeftJoin("rooms r ON u.room_id = r.id").
		PlaceholderFormat(squirrel.Dollar))

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building search count SQL")
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error executing search count query")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, params.Page, params.Size)
	if totalItems == 0 {
		return []*models.Posting{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(params.Page, params.Size)

	listBuilder := baseConditions(squirrel.Select(
		"p.id", "p.owner_id", "p.title", "p.content", "p.price", "p.quantity",
		"p.brand", "p.condition", "p.cover_image_url", "p.tag_id",
		"p.status", "p.scope", "p.created_at", "p.updated_at",
		"u.username as owner_name", "t.name as tag_name",
		"r.id as room_id", "r.floor", "r.building",
	).From("postings p").
		Join("users u ON p.owner_id = u.id").
		LeftJoin("tags t ON p.tag_id = t.id").
		LeftJoin("rooms r ON u.room_id = r.id").
		PlaceholderFormat(squirrel.Dollar)).
		OrderBy("p.created_at DESC", "p.id DESC").
		Limit(uint64(limit)).Offset(offset)

	sqlStr, args, err := listBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building search SQL")
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing search query")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	postings := make([]*models.Posting, 0)
	for rows.Next() {
		p, err := ScanPosting(rows)
		if err != nil {
			return nil, dto.PaginationInfo{}, err
		}
		postings = append(postings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return postings, pagination, nil
}
