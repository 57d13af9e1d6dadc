package services

import (
	"context"
	"strings"

	"github.com/qlin/dormtrade/internal/app/models"
	"github.com/qlin/dormtrade/internal/app/models/dto"
	"github.com/qlin/dormtrade/internal/app/repositories"
	"github.com/qlin/dormtrade/internal/pkg/apperrors"
	"github.com/qlin/dormtrade/internal/pkg/helpers"
)

// postingSearcher runs the visibility-scoped catalog query
type postingSearcher interface {
	Search(ctx context.Context, viewer *models.Location, params repositories.SearchParams) ([]*models.Posting, dto.PaginationInfo, error)
}

// locationReader resolves a viewer's dormitory location
type locationReader interface {
	GetLocation(ctx context.Context, userID int64) (*models.Location, error)
}

// tagReader is the slice of the tag repository the service consumes
type tagReader interface {
	GetPopular(ctx context.Context, limit int) ([]*models.Tag, error)
	Suggest(ctx context.Context, fragment string, limit int) ([]*models.Tag, error)
}

// SearchService runs visibility-scoped catalog searches
type SearchService struct {
	postings  postingSearcher
	locations locationReader
	tags      tagReader
}

// NewSearchService creates a new search service instance
func NewSearchService(postings postingSearcher, locations locationReader, tags tagReader) *SearchService {
	return &SearchService{
		postings:  postings,
		locations: locations,
		tags:      tags,
	}
}

// Search retrieves the listed postings visible to the viewer. A viewer
// without a resolvable location gets an empty page, since the scope rule
// cannot be evaluated for them. A range filter on top of that is rejected
// outright instead of silently returning nothing.
func (s *SearchService) Search(ctx context.Context, viewerID int64, req *dto.SearchRequest) ([]*models.Posting, dto.PaginationInfo, error) {
	if req.PriceMin != nil && req.PriceMax != nil && *req.PriceMin > *req.PriceMax {
		return nil, dto.PaginationInfo{}, apperrors.NewValidationError("priceMin cannot exceed priceMax")
	}

	viewerLoc, err := s.locations.GetLocation(ctx, viewerID)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	rangeFilter := models.RangeFilter(strings.ToUpper(req.Range))
	if viewerLoc == nil {
		if rangeFilter != models.RangeAll {
			return nil, dto.PaginationInfo{}, apperrors.ErrLocationUnknown
		}
		return []*models.Posting{}, helpers.NewPaginationInfo(0, req.Page, req.PageSize), nil
	}

	params := repositories.SearchParams{
		Keyword:  strings.TrimSpace(req.Keyword),
		TagName:  strings.TrimSpace(req.TagName),
		Range:    rangeFilter,
		PriceMin: req.PriceMin,
		PriceMax: req.PriceMax,
		Page:     req.Page,
		Size:     req.PageSize,
	}

	return s.postings.Search(ctx, viewerLoc, params)
}

// GetPopularTags retrieves the most referenced category tags
func (s *SearchService) GetPopularTags(ctx context.Context, limit int) ([]*models.Tag, error) {
	return s.tags.GetPopular(ctx, limit)
}

// SuggestTags retrieves up to ten tags fuzzily matching the fragment,
// most referenced first
func (s *SearchService) SuggestTags(ctx context.Context, fragment string) ([]*models.Tag, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return nil, apperrors.NewValidationError("a tag fragment is required")
	}

	return s.tags.Suggest(ctx, fragment, 10)
}
