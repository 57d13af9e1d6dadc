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

// ComplaintController handles order complaints and their resolution
type ComplaintController struct {
	complaintService *services.ComplaintService
	logger           zerolog.Logger
}

// NewComplaintController creates a new ComplaintController
func NewComplaintController(complaintService *services.ComplaintService, logger zerolog.Logger) *ComplaintController {
	return &ComplaintController{
		complaintService: complaintService,
		logger:           logger,
	}
}

// Submit files a complaint about an order
// @Summary File a complaint
// @Description The buyer of the order files against its seller. At most one open complaint per order and complainant.
// @Tags complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateComplaintRequest true "Order and complaint text"
// @Success 201 {object} dto.StructuredResponse{data=dto.ComplaintResponse}
// @Failure 400 {object} dto.ErrorResponse "Complaining about your own sale"
// @Failure 409 {object} dto.ErrorResponse "An open complaint already exists"
// @Router /complaints [post]
func (c *ComplaintController) Submit(ctx *gin.Context) {
	var req dto.CreateComplaintRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	complaint, err := c.complaintService.Submit(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("complaintId", complaint.ID).
		Int64("orderId", complaint.OrderID).
		Msg("Complaint filed")
	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.FromComplaint(complaint), "Complaint filed"))
}

// Get returns a complaint visible to its parties or an administrator
// @Summary Get a complaint
// @Tags complaints
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.ComplaintResponse}
// @Router /complaints/{id} [get]
func (c *ComplaintController) Get(ctx *gin.Context) {
	complaintID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	complaint, err := c.complaintService.Get(ctx.Request.Context(),
		middleware.GetUserID(ctx), middleware.IsAdmin(ctx), complaintID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromComplaint(complaint), "OK"))
}

// GetByOrder lists the complaints filed on an order
// @Summary List complaints on an order
// @Description Visible to the order's buyer and seller, and to administrators.
// @Tags complaints
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.StructuredResponse{data=dto.PaginatedResponse}
// @Router /orders/{id}/complaints [get]
func (c *ComplaintController) GetByOrder(ctx *gin.Context) {
	orderID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	complaints, pagination, err := c.complaintService.GetByOrder(ctx.Request.Context(),
		middleware.GetUserID(ctx), middleware.IsAdmin(ctx), orderID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.PaginatedResponse{
		Items:      complaintItems(complaints),
		Pagination: pagination,
	}, "OK"))
}

// GetMine lists complaints the caller filed
// @Summary List own complaints
// @Tags complaints
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.StructuredResponse{data=dto.PaginatedResponse}
// @Router /complaints/mine [get]
func (c *ComplaintController) GetMine(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	complaints, pagination, err := c.complaintService.GetMine(ctx.Request.Context(), middleware.GetUserID(ctx), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.PaginatedResponse{
		Items:      complaintItems(complaints),
		Pagination: pagination,
	}, "OK"))
}

// GetAll lists complaints for the admin review queue
// @Summary List complaints (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(PENDING, PROCESSING, RESOLVED, REJECTED)
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.StructuredResponse{data=dto.PaginatedResponse}
// @Router /admin/complaints [get]
func (c *ComplaintController) GetAll(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	var status *models.ComplaintStatus
	if raw := ctx.Query("status"); raw != "" {
		s := models.ComplaintStatus(raw)
		status = &s
	}

	complaints, pagination, err := c.complaintService.GetAll(ctx.Request.Context(), status, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.PaginatedResponse{
		Items:      complaintItems(complaints),
		Pagination: pagination,
	}, "OK"))
}

// Resolve moves a complaint forward or decides it
// @Summary Resolve a complaint (admin)
// @Description PROCESSING acknowledges a pending complaint. RESOLVED and REJECTED are final and require a result text. An omitted status defaults to RESOLVED.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Complaint ID"
// @Param request body dto.ResolveComplaintRequest true "Target status and result"
// @Success 200 {object} dto.StructuredResponse{data=dto.ComplaintResponse}
// @Failure 409 {object} dto.ErrorResponse "Complaint already decided"
// @Router /admin/complaints/{id}/resolve [post]
func (c *ComplaintController) Resolve(ctx *gin.Context) {
	complaintID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.ResolveComplaintRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	adminID := middleware.GetUserID(ctx)
	complaint, err := c.complaintService.Resolve(ctx.Request.Context(), adminID, complaintID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("complaintId", complaintID).
		Int64("adminId", adminID).
		Str("status", string(complaint.Status)).
		Msg("Complaint handled")
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromComplaint(complaint), "Complaint updated"))
}

func complaintItems(complaints []*models.Complaint) []dto.ComplaintResponse {
	items := make([]dto.ComplaintResponse, 0, len(complaints))
	for _, comp := range complaints {
		items = append(items, dto.FromComplaint(comp))
	}
	return items
}
