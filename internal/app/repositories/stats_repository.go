package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qlin/dormtrade/internal/app/models"
	"github.com/qlin/dormtrade/internal/app/models/dto"
	"github.com/qlin/dormtrade/internal/pkg/apperrors"
	"github.com/qlin/dormtrade/internal/pkg/logger"
)

// LocationGrouping selects the aggregation bucket for location stats
type LocationGrouping string

const (
	GroupByBuilding LocationGrouping = "BUILDING"
	GroupByFloor    LocationGrouping = "FLOOR"
	GroupByRoom     LocationGrouping = "ROOM"
)

// StatsRepository aggregates counters for the dashboards
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

// GetPlatformStats aggregates the platform-wide counters in one round trip
func (r *StatsRepository) GetPlatformStats(ctx context.Context) (*dto.PlatformStatsResponse, error) {
	query := `
		SELECT
			(SELECT count(*) FROM users),
			(SELECT count(*) FROM users WHERE status = $1),
			(SELECT count(*) FROM users WHERE status = $2),
			(SELECT count(*) FROM postings),
			(SELECT count(*) FROM postings WHERE status = $3),
			(SELECT count(*) FROM orders),
			(SELECT count(*) FROM orders WHERE status = $4),
			(SELECT count(*) FROM orders WHERE status = $5),
			(SELECT count(*) FROM complaints WHERE status IN ($6, $7))
	`

	var stats dto.PlatformStatsResponse
	err := r.db.QueryRow(ctx, query,
		models.UserStatusActive, models.UserStatusBanned,
		models.PostingStatusListed,
		models.OrderStatusCompleted, models.OrderStatusCanceled,
		models.ComplaintStatusPending, models.ComplaintStatusProcessing,
	).Scan(
		&stats.TotalUsers, &stats.ActiveUsers, &stats.BannedUsers,
		&stats.TotalPostings, &stats.ListedPostings,
		&stats.TotalOrders, &stats.CompletedOrders, &stats.CanceledOrders,
		&stats.OpenComplaints,
	)
	if err != nil {
		logger.Error().Err(err).Msg("Error aggregating platform stats")
		return nil, err
	}

	return &stats, nil
}

// GetUserStats aggregates one user's trading activity
func (r *StatsRepository) GetUserStats(ctx context.Context, userID int64) (*dto.UserStatsResponse, error) {
	query := `
		SELECT
			(SELECT count(*) FROM postings WHERE owner_id = $1),
			(SELECT count(*) FROM orders WHERE buyer_id = $1),
			(SELECT count(*) FROM orders WHERE seller_id = $1),
			(SELECT count(*) FROM favorites WHERE user_id = $1),
			(SELECT count(*) FROM complaints WHERE complainant_id = $1)
	`

	var stats dto.UserStatsResponse
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&stats.PostingCount, &stats.BoughtCount, &stats.SoldCount,
		&stats.FavoriteCount, &stats.ComplaintsFiled,
	)
	if err != nil {
		logger.Error().Err(err).Msg("Error aggregating user stats")
		return nil, err
	}

	return &stats, nil
}

// GetLocationStats aggregates residents, listed postings and completed
// sales per dormitory bucket. Sellers without a room are not represented;
// rooms without residents still appear with zero counters.
func (r *StatsRepository) GetLocationStats(ctx context.Context, grouping LocationGrouping) ([]dto.LocationStatsEntry, error) {
	var selectCols, groupCols string
	switch grouping {
	case GroupByBuilding:
		selectCols = "r.building, NULL::int, NULL::varchar"
		groupCols = "r.building"
	case GroupByFloor:
		selectCols = "r.building, r.floor, NULL::varchar"
		groupCols = "r.building, r.floor"
	case GroupByRoom:
		selectCols = "r.building, r.floor, r.room_no"
		groupCols = "r.building, r.floor, r.room_no"
	default:
		return nil, apperrors.NewValidationError("unknown location grouping")
	}

	// DISTINCT counts because the two left joins multiply rows.
	query := fmt.Sprintf(`
		SELECT %s,
			count(DISTINCT u.id),
			count(DISTINCT p.id) FILTER (WHERE p.status = $1),
			count(DISTINCT o.id) FILTER (WHERE o.status = $2)
		FROM rooms r
		LEFT JOIN users u ON u.room_id = r.id
		LEFT JOIN postings p ON p.owner_id = u.id
		LEFT JOIN orders o ON o.seller_id = u.id
		GROUP BY %s
		ORDER BY %s
	`, selectCols, groupCols, groupCols)

	rows, err := r.db.Query(ctx, query,
		models.PostingStatusListed, models.OrderStatusCompleted)
	if err != nil {
		logger.Error().Err(err).Msg("Error aggregating location stats")
		return nil, err
	}
	defer rows.Close()

	entries := make([]dto.LocationStatsEntry, 0)
	for rows.Next() {
		var e dto.LocationStatsEntry
		err := rows.Scan(&e.Building, &e.Floor, &e.RoomNo,
			&e.Residents, &e.ListedPostings, &e.CompletedOrders)
		if err != nil {
			return nil, fmt.Errorf("error scanning location stats: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// GetDailyCompletedOrders counts orders completed per day over the trailing
// window, keyed by the day the order reached COMPLETED. Days without any
// completion appear with a zero count.
func (r *StatsRepository) GetDailyCompletedOrders(ctx context.Context, days int) ([]dto.DailyOrderStat, error) {
	if days <= 0 {
		days = 60
	}

	query := `
		SELECT d.day::date, count(o.id)
		FROM generate_series(
			current_date - ($1 - 1) * interval '1 day',
			current_date,
			interval '1 day'
		) AS d(day)
		LEFT JOIN orders o
			ON o.status = $2
			AND o.updated_at >= d.day
			AND o.updated_at < d.day + interval '1 day'
		GROUP BY d.day
		ORDER BY d.day
	`

	rows, err := r.db.Query(ctx, query, days, models.OrderStatusCompleted)
	if err != nil {
		logger.Error().Err(err).Msg("Error aggregating daily completed orders")
		return nil, err
	}
	defer rows.Close()

	stats := make([]dto.DailyOrderStat, 0, days)
	for rows.Next() {
		var day time.Time
		var count int64
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("error scanning daily order stats: %w", err)
		}
		stats = append(stats, dto.DailyOrderStat{
			Date:            day.Format("2006-01-02"),
			CompletedOrders: count,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
