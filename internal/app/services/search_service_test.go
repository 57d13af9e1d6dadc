package services

import (
	"context"
	"testing"

	"github.com/qlin/dormtrade/internal/app/models"
	"github.com/qlin/dormtrade/internal/app/models/dto"
	"github.com/qlin/dormtrade/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSearchServiceWithMocks() (*SearchService, *mockPostingSearcher, *mockLocationReader, *mockTagReader) {
	postings := new(mockPostingSearcher)
	locations := new(mockLocationReader)
	tags := new(mockTagReader)
	return NewSearchService(postings, locations, tags), postings, locations, tags
}

func TestSearchEmptyForViewerWithoutLocation(t *testing.T) {
	svc, postings, locations, _ := newSearchServiceWithMocks()
	ctx := context.Background()

	locations.On("GetLocation", ctx, int64(7)).Return(nil, nil)

	// The scope rule cannot be evaluated without a viewer location, so the
	// catalog query never runs and the page comes back empty.
	listed, pagination, err := svc.Search(ctx, 7, &dto.SearchRequest{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, listed)
	assert.Zero(t, pagination.TotalItems)
	postings.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchRangeFilterRequiresLocation(t *testing.T) {
	svc, postings, locations, _ := newSearchServiceWithMocks()
	ctx := context.Background()

	locations.On("GetLocation", ctx, int64(7)).Return(nil, nil)

	_, _, err := svc.Search(ctx, 7, &dto.SearchRequest{Range: "BUILDING", Page: 1, PageSize: 10})
	assert.ErrorIs(t, err, apperrors.ErrLocationUnknown)
	postings.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchPassesViewerLocationThrough(t *testing.T) {
	svc, postings, locations, _ := newSearchServiceWithMocks()
	ctx := context.Background()

	loc := &models.Location{RoomID: 3, Floor: 2, Building: "B1"}
	locations.On("GetLocation", ctx, int64(7)).Return(loc, nil)
	postings.On("Search", ctx, loc, mock.Anything).
		Return([]*models.Posting{{ID: 1}}, dto.PaginationInfo{TotalItems: 1}, nil)

	listed, _, err := svc.Search(ctx, 7, &dto.SearchRequest{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, listed, 1)
	postings.AssertExpectations(t)
}

func TestSearchRejectsInvertedPriceRange(t *testing.T) {
	svc, _, locations, _ := newSearchServiceWithMocks()

	lo, hi := 50.0, 10.0
	_, _, err := svc.Search(context.Background(), 7, &dto.SearchRequest{
		PriceMin: &lo, PriceMax: &hi,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	locations.AssertNotCalled(t, "GetLocation", mock.Anything, mock.Anything)
}

func TestSuggestTagsRejectsBlankFragment(t *testing.T) {
	svc, _, _, tags := newSearchServiceWithMocks()

	_, err := svc.SuggestTags(context.Background(), "  ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	tags.AssertNotCalled(t, "Suggest", mock.Anything, mock.Anything, mock.Anything)
}
