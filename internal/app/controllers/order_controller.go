package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qlin/dormtrade/internal/app/models/dto"
	"github.com/qlin/dormtrade/internal/app/services"
	"github.com/qlin/dormtrade/internal/middleware"
	"github.com/qlin/dormtrade/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// OrderController handles order placement and the handoff lifecycle
type OrderController struct {
	orderService *services.OrderService
	logger       zerolog.Logger
}

// NewOrderController creates a new OrderController
func NewOrderController(orderService *services.OrderService, logger zerolog.Logger) *OrderController {
	return &OrderController{
		orderService: orderService,
		logger:       logger,
	}
}

// Create places an order against a listed posting
// @Summary Place an order
// @Description Atomically reserves stock and opens an order in PENDING_HANDOFF. The seller is notified to arrange the handoff.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateOrderRequest true "Posting and quantity"
// @Success 201 {object} dto.StructuredResponse{data=dto.OrderResponse}
// @Failure 403 {object} dto.ErrorResponse "Buying from yourself"
// @Failure 409 {object} dto.ErrorResponse "Posting delisted or not enough stock"
// @Router /orders [post]
func (c *OrderController) Create(ctx *gin.Context) {
	var req dto.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	viewerID := middleware.GetUserID(ctx)
	order, err := c.orderService.Create(ctx.Request.Context(), viewerID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("orderId", order.ID).
		Int64("postingId", order.PostingID).
		Int64("buyerId", order.BuyerID).
		Msg("Order placed")
	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.FromOrder(order, viewerID), "Order placed"))
}

// Get returns an order visible to its buyer, seller or an administrator
// @Summary Get an order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.OrderResponse}
// @Failure 403 {object} dto.ErrorResponse "Caller is not a party to the order"
// @Router /orders/{id} [get]
func (c *OrderController) Get(ctx *gin.Context) {
	orderID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	viewerID := middleware.GetUserID(ctx)
	order, err := c.orderService.Get(ctx.Request.Context(), viewerID, middleware.IsAdmin(ctx), orderID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromOrder(order, viewerID), "OK"))
}

// GetMine lists the caller's orders as buyer, seller or both
// @Summary List own orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param role query string false "Restrict to one side" Enums(buyer, seller)
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.StructuredResponse{data=dto.PaginatedResponse}
// @Router /orders/mine [get]
func (c *OrderController) GetMine(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	viewerID := middleware.GetUserID(ctx)

	orders, pagination, err := c.orderService.GetMine(ctx.Request.Context(), viewerID, ctx.Query("role"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, dto.FromOrder(o, viewerID))
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.PaginatedResponse{
		Items:      items,
		Pagination: pagination,
	}, "OK"))
}

// ConfirmHandoff records that the seller handed the item over
// @Summary Confirm handoff (seller)
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.OrderResponse}
// @Failure 409 {object} dto.ErrorResponse "Order is not pending handoff"
// @Router /orders/{id}/handoff [post]
func (c *OrderController) ConfirmHandoff(ctx *gin.Context) {
	orderID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	viewerID := middleware.GetUserID(ctx)
	order, err := c.orderService.ConfirmHandoff(ctx.Request.Context(), viewerID, orderID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromOrder(order, viewerID), "Handoff confirmed"))
}

// Complete records that the buyer received the item
// @Summary Complete an order (buyer)
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.OrderResponse}
// @Failure 409 {object} dto.ErrorResponse "Order is not handed off"
// @Router /orders/{id}/complete [post]
func (c *OrderController) Complete(ctx *gin.Context) {
	orderID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	viewerID := middleware.GetUserID(ctx)
	order, err := c.orderService.Complete(ctx.Request.Context(), viewerID, orderID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromOrder(order, viewerID), "Order completed"))
}

// Cancel aborts a non-terminal order and restores the reserved stock
// @Summary Cancel an order (buyer)
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Param request body dto.CancelOrderRequest true "Cancellation reason"
// @Success 200 {object} dto.StructuredResponse{data=dto.OrderResponse}
// @Failure 409 {object} dto.ErrorResponse "Order already finished"
// @Router /orders/{id}/cancel [post]
func (c *OrderController) Cancel(ctx *gin.Context) {
	orderID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.CancelOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	viewerID := middleware.GetUserID(ctx)
	order, err := c.orderService.Cancel(ctx.Request.Context(), viewerID, orderID, req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("orderId", orderID).Int64("buyerId", viewerID).Msg("Order canceled")
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromOrder(order, viewerID), "Order canceled"))
}
