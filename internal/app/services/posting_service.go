package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/qlin/dormtrade/internal/app/models"
	"github.com/qlin/dormtrade/internal/app/models/dto"
	"github.com/qlin/dormtrade/internal/app/repositories"
	"github.com/qlin/dormtrade/internal/pkg/apperrors"
	"github.com/qlin/dormtrade/internal/pkg/filestorage"
	"github.com/qlin/dormtrade/internal/pkg/logger"
	"github.com/qlin/dormtrade/internal/pkg/validation"
)

// PostingService handles item listings, their images and favorites
type PostingService struct {
	postingRepo *repositories.PostingRepository
	tagRepo     *repositories.TagRepository
	userRepo    *repositories.UserRepository
	storage     filestorage.FileStorage
}

// NewPostingService creates a new posting service instance
func NewPostingService(postingRepo *repositories.PostingRepository, tagRepo *repositories.TagRepository, userRepo *repositories.UserRepository, storage filestorage.FileStorage) *PostingService {
	return &PostingService{
		postingRepo: postingRepo,
		tagRepo:     tagRepo,
		userRepo:    userRepo,
		storage:     storage,
	}
}

// Create publishes a new listing for the owner
func (s *PostingService) Create(ctx context.Context, ownerID int64, req *dto.CreatePostingRequest) (*models.Posting, error) {
	scope := models.Scope(req.Scope)
	if !scope.Valid() {
		return nil, apperrors.ErrInvalidScope
	}
	if validation.IsBlank(req.Title) {
		return nil, apperrors.NewValidationError("title cannot be blank")
	}

	// A location-scoped listing from a user without a room would be
	// invisible to everyone, reject it up front.
	if scope != models.ScopeCampus {
		loc, err := s.userRepo.GetLocation(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, apperrors.NewValidationError("bind a dormitory room before using a location-based scope")
		}
	}

	posting := &models.Posting{
		OwnerID:   ownerID,
		Title:     req.Title,
		Content:   req.Content,
		Price:     req.Price,
		Quantity:  req.Quantity,
		Brand:     req.Brand,
		Condition: req.Condition,
		Status:    models.PostingStatusListed,
		Scope:     scope,
	}

	if req.TagName != nil && !validation.IsBlank(*req.TagName) {
		tagID, err := s.tagRepo.GetOrCreate(ctx, *req.TagName)
		if err != nil {
			return nil, err
		}
		posting.TagID = &tagID
	}

	if err := s.postingRepo.Create(ctx, nil, posting); err != nil {
		return nil, err
	}
	if posting.TagID != nil {
		if err := s.tagRepo.IncrementRef(ctx, nil, *posting.TagID); err != nil {
			logger.Warn().Err(err).Int64("tagId", *posting.TagID).Msg("Failed to bump tag ref count")
		}
	}

	logger.Info().Int64("postingId", posting.ID).Int64("ownerId", ownerID).Msg("Posting created")

	return s.postingRepo.GetByID(ctx, posting.ID)
}

// Get retrieves a posting with its images and the viewer's favorite flag.
// The publisher-declared scope is enforced here for direct reads too:
// non-owners outside the scope get NotFound, never a hidden listing.
func (s *PostingService) Get(ctx context.Context, viewerID int64, viewerIsAdmin bool, postingID int64) (*dto.PostingResponse, error) {
	posting, err := s.postingRepo.GetByID(ctx, postingID)
	if err != nil {
		return nil, err
	}

	if posting.OwnerID != viewerID && !viewerIsAdmin {
		viewerLoc, err := s.userRepo.GetLocation(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		if !models.ScopeAllows(posting.Scope, posting.OwnerLoc, viewerLoc) {
			return nil, apperrors.ErrPostingNotFound
		}
	}

	resp := dto.FromPosting(posting)

	images, err := s.postingRepo.GetImages(ctx, postingID)
	if err != nil {
		return nil, err
	}
	for _, img := range images {
		resp.Images = append(resp.Images, img.Path)
	}

	favorited, err := s.postingRepo.IsFavorited(ctx, viewerID, postingID)
	if err != nil {
		return nil, err
	}
	resp.Favorited = favorited

	return &resp, nil
}

// Update edits an owner's listing. A tag change adjusts both ref counters.
func (s *PostingService) Update(ctx context.Context, ownerID, postingID int64, req *dto.UpdatePostingRequest) (*models.Posting, error) {
	existing, err := s.postingRepo.GetByID(ctx, postingID)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != ownerID {
		return nil, apperrors.NewForbiddenError("only the owner can edit a posting")
	}

	var newTagID *int64
	if req.TagName != nil {
		if !validation.IsBlank(*req.TagName) {
			tagID, err := s.tagRepo.GetOrCreate(ctx, *req.TagName)
			if err != nil {
				return nil, err
			}
			newTagID = &tagID
		}
		// A blank tag name clears the tag; newTagID stays nil.
	}

	if err := s.postingRepo.Update(ctx, postingID, ownerID, req, newTagID); err != nil {
		return nil, err
	}

	if req.TagName != nil {
		if existing.TagID != nil && (newTagID == nil || *newTagID != *existing.TagID) {
			if err := s.tagRepo.DecrementRef(ctx, nil, *existing.TagID); err != nil {
				logger.Warn().Err(err).Msg("Failed to lower old tag ref count")
			}
		}
		if newTagID != nil && (existing.TagID == nil || *newTagID != *existing.TagID) {
			if err := s.tagRepo.IncrementRef(ctx, nil, *newTagID); err != nil {
				logger.Warn().Err(err).Msg("Failed to bump new tag ref count")
			}
		}
	}

	return s.postingRepo.GetByID(ctx, postingID)
}

// Delist takes an owner's listing off the catalog. Existing orders are not
// affected.
func (s *PostingService) Delist(ctx context.Context, ownerID, postingID int64) error {
	return s.postingRepo.SetStatus(ctx, postingID, ownerID, models.PostingStatusDelisted)
}

// Relist puts a delisted posting back on the catalog
func (s *PostingService) Relist(ctx context.Context, ownerID, postingID int64) error {
	return s.postingRepo.SetStatus(ctx, postingID, ownerID, models.PostingStatusListed)
}

// GetMine retrieves the owner's own postings, any status
func (s *PostingService) GetMine(ctx context.Context, ownerID int64, page, size int) ([]*models.Posting, dto.PaginationInfo, error) {
	return s.postingRepo.GetByOwner(ctx, ownerID, page, size)
}

// UploadImage stores an uploaded image and attaches it to the owner's
// posting. The first uploaded image becomes the cover.
func (s *PostingService) UploadImage(ctx context.Context, ownerID, postingID int64, fileHeader *multipart.FileHeader) (*models.Image, error) {
	if fileHeader == nil {
		return nil, apperrors.NewValidationError("no file uploaded")
	}
	if err := filestorage.ValidateImageExtension(fileHeader.Filename); err != nil {
		return nil, err
	}

	posting, err := s.postingRepo.GetByID(ctx, postingID)
	if err != nil {
		return nil, err
	}
	if posting.OwnerID != ownerID {
		return nil, apperrors.NewForbiddenError("only the owner can add images to a posting")
	}

	path, err := s.storage.SaveFileWithPath(fileHeader, "postings")
	if err != nil {
		return nil, fmt.Errorf("error storing image: %w", err)
	}

	image := &models.Image{
		PostingID:  postingID,
		UploaderID: ownerID,
		Path:       path,
		Category:   "posting",
	}
	if err := s.postingRepo.AddImage(ctx, image); err != nil {
		_ = s.storage.DeleteFile(path)
		return nil, err
	}

	if posting.CoverImageURL == nil {
		if err := s.postingRepo.SetCoverImage(ctx, postingID, ownerID, path); err != nil {
			logger.Warn().Err(err).Int64("postingId", postingID).Msg("Failed to set cover image")
		}
	}

	return image, nil
}

// DeleteImage detaches an image and removes the stored file
func (s *PostingService) DeleteImage(ctx context.Context, uploaderID, imageID int64) error {
	img, err := s.postingRepo.DeleteImage(ctx, imageID, uploaderID)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteFile(img.Path); err != nil {
		logger.Warn().Err(err).Str("path", img.Path).Msg("Failed to remove stored image file")
	}

	return nil
}

// Favorite bookmarks a posting; re-favoriting refreshes the bookmark's
// position in the list
func (s *PostingService) Favorite(ctx context.Context, userID, postingID int64) error {
	posting, err := s.postingRepo.GetByID(ctx, postingID)
	if err != nil {
		return err
	}
	if posting.Status != models.PostingStatusListed && posting.OwnerID != userID {
		return apperrors.ErrPostingDelisted
	}

	return s.postingRepo.UpsertFavorite(ctx, userID, postingID)
}

// Unfavorite removes a bookmark; removing a non-existent one is a no-op
func (s *PostingService) Unfavorite(ctx context.Context, userID, postingID int64) error {
	return s.postingRepo.DeleteFavorite(ctx, userID, postingID)
}

// GetFavorites retrieves the user's bookmarked postings
func (s *PostingService) GetFavorites(ctx context.Context, userID int64, page, size int) ([]*models.Posting, dto.PaginationInfo, error) {
	return s.postingRepo.GetFavorites(ctx, userID, page, size)
}
