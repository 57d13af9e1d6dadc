package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/qlin/dormtrade/internal/app/models"
	"github.com/qlin/dormtrade/internal/app/models/dto"
	"github.com/qlin/dormtrade/internal/app/services"
	"github.com/qlin/dormtrade/internal/middleware"
	"github.com/rs/zerolog"
)

// SearchController handles visibility-scoped posting search
type SearchController struct {
	searchService *services.SearchService
	logger        zerolog.Logger
}

// NewSearchController creates a new SearchController
func NewSearchController(searchService *services.SearchService, logger zerolog.Logger) *SearchController {
	return &SearchController{
		searchService: searchService,
		logger:        logger,
	}
}

func postingItems(postings []*models.Posting) []dto.PostingResponse {
	items := make([]dto.PostingResponse, 0, len(postings))
	for _, p := range postings {
		items = append(items, dto.FromPosting(p))
	}
	return items
}

// Search lists LISTED postings visible to the caller
// @Summary Search postings
// @Description Results are limited to postings whose visibility scope admits the caller's room. An optional range filter narrows further and requires a bound room.
// @Tags search
// @Produce json
// @Security BearerAuth
// @Param keyword query string false "Matches title, description, brand and tag name"
// @Param tag query string false "Exact tag name"
// @Param range query string false "Narrow to the caller's surroundings" Enums(BUILDING, FLOOR, ROOM)
// @Param priceMin query number false "Minimum price"
// @Param priceMax query number false "Maximum price"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.StructuredResponse{data=dto.PaginatedResponse}
// @Failure 400 {object} dto.ErrorResponse "Range filter without a bound room"
// @Router /search [get]
func (c *SearchController) Search(ctx *gin.Context) {
	var req dto.SearchRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	postings, pagination, err := c.searchService.Search(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.PaginatedResponse{
		Items:      postingItems(postings),
		Pagination: pagination,
	}, "OK"))
}

// GetPopularTags lists the most referenced tags
// @Summary List popular tags
// @Tags search
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of tags" default(10)
// @Success 200 {object} dto.StructuredResponse{data=[]dto.TagResponse}
// @Router /tags/popular [get]
func (c *SearchController) GetPopularTags(ctx *gin.Context) {
	limit := 10
	if raw := ctx.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 50 {
			limit = v
		}
	}

	tags, err := c.searchService.GetPopularTags(ctx.Request.Context(), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(tagItems(tags), "OK"))
}

// SuggestTags fuzzily matches tags against a fragment
// @Summary Suggest tags
// @Description Returns up to ten tags whose name contains the fragment, most referenced first.
// @Tags search
// @Produce json
// @Security BearerAuth
// @Param q query string true "Tag name fragment"
// @Success 200 {object} dto.StructuredResponse{data=[]dto.TagResponse}
// @Failure 400 {object} dto.ErrorResponse "Blank fragment"
// @Router /tags/suggest [get]
func (c *SearchController) SuggestTags(ctx *gin.Context) {
	tags, err := c.searchService.SuggestTags(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(tagItems(tags), "OK"))
}

func tagItems(tags []*models.Tag) []dto.TagResponse {
	items := make([]dto.TagResponse, 0, len(tags))
	for _, t := range tags {
		items = append(items, dto.TagResponse{ID: t.ID, Name: t.Name, RefCount: t.RefCount})
	}
	return items
}
