package services

import (
	"context"
	"strings"

	"github.com/qlin/dormtrade/internal/app/models/dto"
	"github.com/qlin/dormtrade/internal/app/repositories"
)

// dailyStatsWindow is the trailing number of days covered by the daily
// completed-order series
const dailyStatsWindow = 60

// StatsService aggregates dashboard counters
type StatsService struct {
	statsRepo *repositories.StatsRepository
}

// NewStatsService creates a new stats service instance
func NewStatsService(statsRepo *repositories.StatsRepository) *StatsService {
	return &StatsService{statsRepo: statsRepo}
}

// GetPlatformStats aggregates the platform-wide counters for the admin
// dashboard
func (s *StatsService) GetPlatformStats(ctx context.Context) (*dto.PlatformStatsResponse, error) {
	return s.statsRepo.GetPlatformStats(ctx)
}

// GetUserStats aggregates the viewer's own trading activity
func (s *StatsService) GetUserStats(ctx context.Context, userID int64) (*dto.UserStatsResponse, error) {
	return s.statsRepo.GetUserStats(ctx, userID)
}

// GetLocationStats aggregates activity per building, floor or room. An
// empty grouping falls back to the coarsest bucket.
func (s *StatsService) GetLocationStats(ctx context.Context, groupBy string) ([]dto.LocationStatsEntry, error) {
	grouping := repositories.GroupByBuilding
	if groupBy != "" {
		grouping = repositories.LocationGrouping(strings.ToUpper(groupBy))
	}

	return s.statsRepo.GetLocationStats(ctx, grouping)
}

// GetDailyOrders returns the completed-order counts for the trailing 60 days
func (s *StatsService) GetDailyOrders(ctx context.Context) ([]dto.DailyOrderStat, error) {
	return s.statsRepo.GetDailyCompletedOrders(ctx, dailyStatsWindow)
}
