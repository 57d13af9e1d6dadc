package dto

import "github.com/qlin/dormtrade/internal/app/models"

// CreateAnnouncementRequest represents an admin broadcast
type CreateAnnouncementRequest struct {
	Title   string `json:"title" binding:"required,max=64"`
	Content string `json:"content" binding:"required,max=2000"`
}

// NoticeResponse represents an inbox item or announcement
type NoticeResponse struct {
	ID             int64   `json:"id"`
	Type           string  `json:"type"`
	Title          *string `json:"title,omitempty"`
	Content        string  `json:"content"`
	RelatedOrderID *int64  `json:"relatedOrderId,omitempty"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"createdAt"`
}

// UnreadCountResponse carries the viewer's unread inbox counter
type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}

// FromNotice converts a models.Notice to a NoticeResponse
func FromNotice(n *models.Notice) NoticeResponse {
	if n == nil {
		return NoticeResponse{}
	}
	return NoticeResponse{
		ID:             n.ID,
		Type:           string(n.Type),
		Title:          n.Title,
		Content:        n.Content,
		RelatedOrderID: n.RelatedOrderID,
		Status:         string(n.Status),
		CreatedAt:      n.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
