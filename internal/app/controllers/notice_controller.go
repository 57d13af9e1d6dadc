package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qlin/dormtrade/internal/app/models"
	"github.com/qlin/dormtrade/internal/app/models/dto"
	"github.com/qlin/dormtrade/internal/app/services"
	"github.com/qlin/dormtrade/internal/middleware"
	"github.com/qlin/dormtrade/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// NoticeController handles the notice inbox and platform announcements
type NoticeController struct {
	noticeService *services.NoticeService
	logger        zerolog.Logger
}

// NewNoticeController creates a new NoticeController
func NewNoticeController(noticeService *services.NoticeService, logger zerolog.Logger) *NoticeController {
	return &NoticeController{
		noticeService: noticeService,
		logger:        logger,
	}
}

// GetInbox lists the caller's notices, newest first
// @Summary List own notices
// @Tags notices
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by read status" Enums(UNREAD, READ)
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.StructuredResponse{data=dto.PaginatedResponse}
// @Router /notices [get]
func (c *NoticeController) GetInbox(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	var status *models.NoticeStatus
	if raw := ctx.Query("status"); raw != "" {
		s := models.NoticeStatus(raw)
		status = &s
	}

	notices, pagination, err := c.noticeService.GetInbox(ctx.Request.Context(),
		middleware.GetUserID(ctx), status, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.PaginatedResponse{
		Items:      noticeItems(notices),
		Pagination: pagination,
	}, "OK"))
}

// CountUnread returns the caller's unread notice count
// @Summary Count unread notices
// @Tags notices
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=dto.UnreadCountResponse}
// @Router /notices/unread [get]
func (c *NoticeController) CountUnread(ctx *gin.Context) {
	count, err := c.noticeService.CountUnread(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.UnreadCountResponse{Unread: count}, "OK"))
}

// MarkRead marks one of the caller's notices as read
// @Summary Mark a notice read
// @Tags notices
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notice ID"
// @Success 200 {object} dto.SuccessResponse
// @Router /notices/{id}/read [post]
func (c *NoticeController) MarkRead(ctx *gin.Context) {
	noticeID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.noticeService.MarkRead(ctx.Request.Context(), middleware.GetUserID(ctx), noticeID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Notice marked read"})
}

// MarkAllRead marks every unread notice of the caller as read
// @Summary Mark all notices read
// @Tags notices
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Router /notices/read-all [post]
func (c *NoticeController) MarkAllRead(ctx *gin.Context) {
	if err := c.noticeService.MarkAllRead(ctx.Request.Context(), middleware.GetUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "All notices marked read"})
}

// GetAnnouncements lists platform-wide announcements
// @Summary List announcements
// @Tags notices
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.StructuredResponse{data=dto.PaginatedResponse}
// @Router /announcements [get]
func (c *NoticeController) GetAnnouncements(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	notices, pagination, err := c.noticeService.GetAnnouncements(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.PaginatedResponse{
		Items:      noticeItems(notices),
		Pagination: pagination,
	}, "OK"))
}

// PublishAnnouncement posts a platform-wide announcement
// @Summary Publish an announcement (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAnnouncementRequest true "Announcement title and content"
// @Success 201 {object} dto.StructuredResponse{data=dto.NoticeResponse}
// @Router /admin/announcements [post]
func (c *NoticeController) PublishAnnouncement(ctx *gin.Context) {
	var req dto.CreateAnnouncementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	notice, err := c.noticeService.PublishAnnouncement(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.FromNotice(notice), "Announcement published"))
}

// DeleteAnnouncement removes a platform-wide announcement
// @Summary Delete an announcement (admin)
// @Description Only announcement rows can be deleted; per-user notices are untouchable here.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "Not an announcement or already gone"
// @Router /admin/announcements/{id} [delete]
func (c *NoticeController) DeleteAnnouncement(ctx *gin.Context) {
	noticeID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.noticeService.DeleteAnnouncement(ctx.Request.Context(), middleware.GetUserID(ctx), noticeID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Announcement deleted"})
}

func noticeItems(notices []*models.Notice) []dto.NoticeResponse {
	items := make([]dto.NoticeResponse, 0, len(notices))
	for _, n := range notices {
		items = append(items, dto.FromNotice(n))
	}
	return items
}
