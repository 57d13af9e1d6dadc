package dto

import "github.com/qlin/dormtrade/internal/app/models"

// CreateComplaintRequest files a dispute against the counterparty of an order
type CreateComplaintRequest struct {
	OrderID int64  `json:"orderId" binding:"required,min=1"`
	Content string `json:"content" binding:"required,max=1000"`
}

// ResolveComplaintRequest represents an admin decision on a complaint. An
// omitted status defaults to RESOLVED.
type ResolveComplaintRequest struct {
	Status string `json:"status" binding:"omitempty,oneof=PROCESSING RESOLVED REJECTED"`
	Result string `json:"result,omitempty" binding:"max=1000"`
}

// ComplaintResponse represents a complaint with joined display data
type ComplaintResponse struct {
	ID              int64   `json:"id"`
	OrderID         int64   `json:"orderId"`
	PostingTitle    string  `json:"postingTitle"`
	ComplainantID   int64   `json:"complainantId"`
	ComplainantName string  `json:"complainantName"`
	AccusedID       int64   `json:"accusedId"`
	AccusedName     string  `json:"accusedName"`
	Content         string  `json:"content"`
	Status          string  `json:"status"`
	Result          *string `json:"result,omitempty"`
	HandledBy       *int64  `json:"handledBy,omitempty"`
	HandledAt       *string `json:"handledAt,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

// FromComplaint converts a models.Complaint to a ComplaintResponse
func FromComplaint(c *models.Complaint) ComplaintResponse {
	if c == nil {
		return ComplaintResponse{}
	}
	resp := ComplaintResponse{
		ID:              c.ID,
		OrderID:         c.OrderID,
		PostingTitle:    c.PostingTitle,
		ComplainantID:   c.ComplainantID,
		ComplainantName: c.ComplainantName,
		AccusedID:       c.AccusedID,
		AccusedName:     c.AccusedName,
		Content:         c.Content,
		Status:          string(c.Status),
		Result:          c.Result,
		HandledBy:       c.HandledBy,
		CreatedAt:       c.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if c.HandledAt != nil {
		s := c.HandledAt.Format("2006-01-02T15:04:05Z07:00")
		resp.HandledAt = &s
	}
	return resp
}
