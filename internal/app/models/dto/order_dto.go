package dto

import "github.com/qlin/dormtrade/internal/app/models"

// CreateOrderRequest represents a purchase intent on a posting
type CreateOrderRequest struct {
	PostingID int64 `json:"postingId" binding:"required,min=1"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

// CancelOrderRequest carries the buyer's cancellation reason
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required,max=255"`
}

// OrderResponse represents an order with joined display data and the
// viewer's derived action flags
type OrderResponse struct {
	ID           int64               `json:"id"`
	PostingID    int64               `json:"postingId"`
	PostingTitle string              `json:"postingTitle"`
	PostingPrice float64             `json:"postingPrice"`
	BuyerID      int64               `json:"buyerId"`
	BuyerName    string              `json:"buyerName"`
	SellerID     int64               `json:"sellerId"`
	SellerName   string              `json:"sellerName"`
	Quantity     int                 `json:"quantity"`
	Status       string              `json:"status"`
	CancelReason *string             `json:"cancelReason,omitempty"`
	Actions      models.OrderActions `json:"actions"`
	CreatedAt    string              `json:"createdAt"`
	UpdatedAt    string              `json:"updatedAt"`
}

// FromOrder converts a models.Order to an OrderResponse with the action
// flags derived for the given viewer
func FromOrder(o *models.Order, viewerID int64) OrderResponse {
	if o == nil {
		return OrderResponse{}
	}
	return OrderResponse{
		ID:           o.ID,
		PostingID:    o.PostingID,
		PostingTitle: o.PostingTitle,
		PostingPrice: o.PostingPrice,
		BuyerID:      o.BuyerID,
		BuyerName:    o.BuyerName,
		SellerID:     o.SellerID,
		SellerName:   o.SellerName,
		Quantity:     o.Quantity,
		Status:       string(o.Status),
		CancelReason: o.CancelReason,
		Actions:      models.ActionsFor(o, viewerID),
		CreatedAt:    o.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:    o.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
