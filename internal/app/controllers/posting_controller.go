package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/qlin/dormtrade/internal/app/models/dto"
	"github.com/qlin/dormtrade/internal/app/services"
	"github.com/qlin/dormtrade/internal/middleware"
	"github.com/qlin/dormtrade/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// PostingController handles posting lifecycle, images and favorites
type PostingController struct {
	postingService *services.PostingService
	logger         zerolog.Logger
}

// NewPostingController creates a new PostingController
func NewPostingController(postingService *services.PostingService, logger zerolog.Logger) *PostingController {
	return &PostingController{
		postingService: postingService,
		logger:         logger,
	}
}

func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		middleware.HandleValidationError(ctx, fmt.Errorf("invalid %s parameter", name))
		return 0, false
	}
	return id, true
}

// Create publishes a new posting
// @Summary Create a posting
// @Tags postings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePostingRequest true "Posting payload"
// @Success 201 {object} dto.StructuredResponse{data=dto.PostingResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid payload or scope without a bound room"
// @Router /postings [post]
func (c *PostingController) Create(ctx *gin.Context) {
	var req dto.CreatePostingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	posting, err := c.postingService.Create(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("postingId", posting.ID).Int64("ownerId", posting.OwnerID).Msg("Posting created")
	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.FromPosting(posting), "Posting created"))
}

// Get returns a posting detail if the caller may see it
// @Summary Get a posting
// @Tags postings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Posting ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.PostingResponse}
// @Failure 404 {object} dto.ErrorResponse "Posting missing or outside the caller's visibility"
// @Router /postings/{id} [get]
func (c *PostingController) Get(ctx *gin.Context) {
	postingID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.postingService.Get(ctx.Request.Context(),
		middleware.GetUserID(ctx), middleware.IsAdmin(ctx), postingID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, "OK"))
}

// Update edits a posting owned by the caller
// @Summary Update a posting
// @Tags postings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Posting ID"
// @Param request body dto.UpdatePostingRequest true "Fields to change"
// @Success 200 {object} dto.StructuredResponse{data=dto.PostingResponse}
// @Router /postings/{id} [patch]
func (c *PostingController) Update(ctx *gin.Context) {
	postingID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdatePostingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	posting, err := c.postingService.Update(ctx.Request.Context(), middleware.GetUserID(ctx), postingID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromPosting(posting), "Posting updated"))
}

// Delist takes a posting off the market
// @Summary Delist a posting
// @Tags postings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Posting ID"
// @Success 200 {object} dto.SuccessResponse
// @Router /postings/{id}/delist [post]
func (c *PostingController) Delist(ctx *gin.Context) {
	postingID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.postingService.Delist(ctx.Request.Context(), middleware.GetUserID(ctx), postingID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Posting delisted"})
}

// Relist puts a delisted posting back on the market
// @Summary Relist a posting
// @Tags postings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Posting ID"
// @Success 200 {object} dto.SuccessResponse
// @Router /postings/{id}/relist [post]
func (c *PostingController) Relist(ctx *gin.Context) {
	postingID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.postingService.Relist(ctx.Request.Context(), middleware.GetUserID(ctx), postingID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Posting relisted"})
}

// GetMine lists the caller's own postings, delisted ones included
// @Summary List own postings
// @Tags postings
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.StructuredResponse{data=dto.PaginatedResponse}
// @Router /postings/mine [get]
func (c *PostingController) GetMine(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	postings, pagination, err := c.postingService.GetMine(ctx.Request.Context(), middleware.GetUserID(ctx), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.PaginatedResponse{
		Items:      postingItems(postings),
		Pagination: pagination,
	}, "OK"))
}

// UploadImage attaches an image file to a posting
// @Summary Upload a posting image
// @Tags postings
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Posting ID"
// @Param file formData file true "Image file (jpg, jpeg, png, gif, webp)"
// @Success 201 {object} dto.StructuredResponse{data=dto.FileUploadResponse}
// @Failure 400 {object} dto.ErrorResponse "Unsupported file type"
// @Router /postings/{id}/images [post]
func (c *PostingController) UploadImage(ctx *gin.Context) {
	postingID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	image, err := c.postingService.UploadImage(ctx.Request.Context(), middleware.GetUserID(ctx), postingID, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("postingId", postingID).Str("path", image.Path).Msg("Image uploaded")
	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.FileUploadResponse{URL: image.Path}, "Image uploaded"))
}

// DeleteImage removes an image the caller uploaded
// @Summary Delete a posting image
// @Tags postings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Image ID"
// @Success 200 {object} dto.SuccessResponse
// @Router /images/{id} [delete]
func (c *PostingController) DeleteImage(ctx *gin.Context) {
	imageID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.postingService.DeleteImage(ctx.Request.Context(), middleware.GetUserID(ctx), imageID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Image deleted"})
}

// Favorite bookmarks a posting for the caller
// @Summary Favorite a posting
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param id path int true "Posting ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 409 {object} dto.ErrorResponse "Posting is delisted"
// @Router /postings/{id}/favorite [post]
func (c *PostingController) Favorite(ctx *gin.Context) {
	postingID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.postingService.Favorite(ctx.Request.Context(), middleware.GetUserID(ctx), postingID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Posting favorited"})
}

// Unfavorite removes a bookmark. Removing an absent bookmark succeeds.
// @Summary Unfavorite a posting
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param id path int true "Posting ID"
// @Success 200 {object} dto.SuccessResponse
// @Router /postings/{id}/favorite [delete]
func (c *PostingController) Unfavorite(ctx *gin.Context) {
	postingID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.postingService.Unfavorite(ctx.Request.Context(), middleware.GetUserID(ctx), postingID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Posting unfavorited"})
}

// GetFavorites lists the caller's bookmarked postings
// @Summary List favorites
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.StructuredResponse{data=dto.PaginatedResponse}
// @Router /favorites [get]
func (c *PostingController) GetFavorites(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	postings, pagination, err := c.postingService.GetFavorites(ctx.Request.Context(), middleware.GetUserID(ctx), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.PaginatedResponse{
		Items:      postingItems(postings),
		Pagination: pagination,
	}, "OK"))
}
