package dto

import "github.com/qlin/dormtrade/internal/app/models"

// CreatePostingRequest represents a new item listing
type CreatePostingRequest struct {
	Title     string  `json:"title" binding:"required,max=64"`
	Content   string  `json:"content" binding:"required"`
	Price     float64 `json:"price" binding:"required,gt=0"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Brand     *string `json:"brand,omitempty"`
	Condition *string `json:"condition,omitempty"`
	TagName   *string `json:"tagName,omitempty"`
	Scope     string  `json:"scope" binding:"required,oneof=ROOM FLOOR BUILDING CAMPUS"`
}

// UpdatePostingRequest represents a listing edit; nil fields are untouched
type UpdatePostingRequest struct {
	Title     *string  `json:"title,omitempty" binding:"omitempty,max=64"`
	Content   *string  `json:"content,omitempty"`
	Price     *float64 `json:"price,omitempty" binding:"omitempty,gt=0"`
	Quantity  *int     `json:"quantity,omitempty" binding:"omitempty,min=0"`
	Brand     *string  `json:"brand,omitempty"`
	Condition *string  `json:"condition,omitempty"`
	TagName   *string  `json:"tagName,omitempty"`
	Scope     *string  `json:"scope,omitempty" binding:"omitempty,oneof=ROOM FLOOR BUILDING CAMPUS"`
}

// PostingResponse represents a listing with joined display data
type PostingResponse struct {
	ID            int64    `json:"id"`
	OwnerID       int64    `json:"ownerId"`
	OwnerName     string   `json:"ownerName"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Price         float64  `json:"price"`
	Quantity      int      `json:"quantity"`
	Brand         *string  `json:"brand,omitempty"`
	Condition     *string  `json:"condition,omitempty"`
	CoverImageURL *string  `json:"coverImageUrl,omitempty"`
	TagName       *string  `json:"tagName,omitempty"`
	Status        string   `json:"status"`
	Scope         string   `json:"scope"`
	Images        []string `json:"images,omitempty"`
	Favorited     bool     `json:"favorited"`
	CreatedAt     string   `json:"createdAt"`
}

// FromPosting converts a models.Posting to a PostingResponse
func FromPosting(p *models.Posting) PostingResponse {
	if p == nil {
		return PostingResponse{}
	}
	return PostingResponse{
		ID:            p.ID,
		OwnerID:       p.OwnerID,
		OwnerName:     p.OwnerName,
		Title:         p.Title,
		Content:       p.Content,
		Price:         p.Price,
		Quantity:      p.Quantity,
		Brand:         p.Brand,
		Condition:     p.Condition,
		CoverImageURL: p.CoverImageURL,
		TagName:       p.TagName,
		Status:        string(p.Status),
		Scope:         string(p.Scope),
		CreatedAt:     p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// FileUploadResponse represents a stored upload
type FileUploadResponse struct {
	URL string `json:"url"`
}
