package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/qlin/dormtrade/internal/app/models"
	"github.com/qlin/dormtrade/internal/app/models/dto"
	"github.com/qlin/dormtrade/internal/app/services"
	"github.com/qlin/dormtrade/internal/middleware"
	"github.com/qlin/dormtrade/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// UserController handles profile and account administration endpoints
type UserController struct {
	userService *services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// GetMe returns the authenticated user's profile
// @Summary Get own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=dto.UserResponse}
// @Router /users/me [get]
func (c *UserController) GetMe(ctx *gin.Context) {
	user, err := c.userService.GetProfile(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromUser(user), "OK"))
}

// UpdateMe applies a partial profile update
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.StructuredResponse{data=dto.UserResponse}
// @Failure 409 {object} dto.ErrorResponse "Email or username already taken"
// @Router /users/me [patch]
func (c *UserController) UpdateMe(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, err := c.userService.UpdateProfile(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromUser(user), "Profile updated"))
}

// ChangePassword verifies the old password and stores a new one
// @Summary Change password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Old and new password"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse "Old password incorrect"
// @Router /users/me/password [put]
func (c *UserController) ChangePassword(ctx *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.userService.ChangePassword(ctx.Request.Context(), middleware.GetUserID(ctx), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Password changed"})
}

// GetRooms returns the dormitory room catalog
// @Summary List dormitory rooms
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=[]dto.RoomResponse}
// @Router /rooms [get]
func (c *UserController) GetRooms(ctx *gin.Context) {
	rooms, err := c.userService.GetRooms(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := make([]dto.RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		resp = append(resp, dto.RoomResponse{ID: r.ID, Building: r.Building, Floor: r.Floor, RoomNo: r.RoomNo})
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, "OK"))
}

// GetUsers lists accounts for the admin screens
// @Summary List users (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(ACTIVE, BANNED)
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.StructuredResponse{data=dto.PaginatedResponse}
// @Router /admin/users [get]
func (c *UserController) GetUsers(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	var status *models.UserStatus
	if raw := ctx.Query("status"); raw != "" {
		s := models.UserStatus(raw)
		status = &s
	}

	users, pagination, err := c.userService.GetUsers(ctx.Request.Context(), status, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, dto.FromUser(u))
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.PaginatedResponse{
		Items:      items,
		Pagination: pagination,
	}, "OK"))
}

// SetUserStatus bans or reinstates an account
// @Summary Ban or unban a user (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.SetUserStatusRequest true "New status"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse "Target is an administrator"
// @Router /admin/users/{id}/status [put]
func (c *UserController) SetUserStatus(ctx *gin.Context) {
	targetID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	var req dto.SetUserStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	err = c.userService.SetUserStatus(ctx.Request.Context(),
		middleware.GetUserID(ctx), targetID, models.UserStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "User status updated"})
}
