package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qlin/dormtrade/internal/app/models/dto"
	"github.com/qlin/dormtrade/internal/app/services"
	"github.com/qlin/dormtrade/internal/middleware"
	"github.com/rs/zerolog"
)

// StatsController handles usage counters
type StatsController struct {
	statsService *services.StatsService
	logger       zerolog.Logger
}

// NewStatsController creates a new StatsController
func NewStatsController(statsService *services.StatsService, logger zerolog.Logger) *StatsController {
	return &StatsController{
		statsService: statsService,
		logger:       logger,
	}
}

// GetPlatformStats returns platform-wide counters
// @Summary Platform statistics (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=dto.PlatformStatsResponse}
// @Router /admin/stats [get]
func (c *StatsController) GetPlatformStats(ctx *gin.Context) {
	stats, err := c.statsService.GetPlatformStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(stats, "OK"))
}

// GetLocationStats returns per-dormitory activity buckets
// @Summary Location statistics (admin)
// @Description Aggregates residents, listed postings and completed sales per building, floor or room.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param groupBy query string false "Aggregation bucket" Enums(building, floor, room) default(building)
// @Success 200 {object} dto.StructuredResponse{data=[]dto.LocationStatsEntry}
// @Failure 400 {object} dto.ErrorResponse "Unknown grouping"
// @Router /admin/stats/locations [get]
func (c *StatsController) GetLocationStats(ctx *gin.Context) {
	entries, err := c.statsService.GetLocationStats(ctx.Request.Context(), ctx.Query("groupBy"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(entries, "OK"))
}

// GetDailyOrders returns the completed-order series for the last 60 days
// @Summary Daily completed orders (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=[]dto.DailyOrderStat}
// @Router /admin/stats/daily-orders [get]
func (c *StatsController) GetDailyOrders(ctx *gin.Context) {
	stats, err := c.statsService.GetDailyOrders(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(stats, "OK"))
}

// GetMyStats returns counters about the caller's own activity
// @Summary Own statistics
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=dto.UserStatsResponse}
// @Router /users/me/stats [get]
func (c *StatsController) GetMyStats(ctx *gin.Context) {
	stats, err := c.statsService.GetUserStats(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(stats, "OK"))
}
