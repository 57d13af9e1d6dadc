package models

import (
	"time"
)

// OrderStatus represents the lifecycle state of an order. The lifecycle is
// linear with one escape path:
//
//	(none) -> PENDING_HANDOFF -> HANDED_OFF -> COMPLETED
//	PENDING_HANDOFF | HANDED_OFF -> CANCELED
//
// COMPLETED and CANCELED are terminal.
type OrderStatus string

const (
	OrderStatusPendingHandoff OrderStatus = "PENDING_HANDOFF"
	OrderStatusHandedOff      OrderStatus = "HANDED_OFF"
	OrderStatusCompleted      OrderStatus = "COMPLETED"
	OrderStatusCanceled       OrderStatus = "CANCELED"
)

// Terminal reports whether the status admits no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCanceled
}

// Order defines an order row. Seller is derived from the posting owner at
// creation time and never changes afterwards.
type Order struct {
	ID           int64       `json:"id" db:"id"`
	PostingID    int64       `json:"postingId" db:"posting_id"`
	BuyerID      int64       `json:"buyerId" db:"buyer_id"`
	SellerID     int64       `json:"sellerId" db:"seller_id"`
	Quantity     int         `json:"quantity" db:"quantity"`
	Status       OrderStatus `json:"status" db:"status"`
	CancelReason *string     `json:"cancelReason,omitempty" db:"cancel_reason"`
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time   `json:"updatedAt" db:"updated_at"`

	// Joined fields, no db tag
	PostingTitle string  `json:"postingTitle,omitempty"`
	PostingPrice float64 `json:"postingPrice,omitempty"`
	BuyerName    string  `json:"buyerName,omitempty"`
	SellerName   string  `json:"sellerName,omitempty"`
}

// OrderActions are the per-viewer action flags for an order. They are a pure
// derivation of (status, viewer relative to buyer/seller), recomputed on
// every view and never persisted.
type OrderActions struct {
	CanConfirm  bool `json:"canConfirm"`
	CanComplete bool `json:"canComplete"`
	CanCancel   bool `json:"canCancel"`
	CanComplain bool `json:"canComplain"`
}

// CanConfirm reports whether the viewer may confirm the handoff:
// seller only, from PENDING_HANDOFF.
func CanConfirm(o *Order, viewerID int64) bool {
	return o.Status == OrderStatusPendingHandoff && viewerID == o.SellerID
}

// CanComplete reports whether the viewer may complete the order:
// buyer only, from HANDED_OFF.
func CanComplete(o *Order, viewerID int64) bool {
	return o.Status == OrderStatusHandedOff && viewerID == o.BuyerID
}

// CanCancel reports whether the viewer may cancel the order:
// buyer only, from any non-terminal state.
func CanCancel(o *Order, viewerID int64) bool {
	return !o.Status.Terminal() && viewerID == o.BuyerID
}

// CanComplain reports whether the viewer may file a complaint on the order.
// The accused party of a complaint is always the seller, so only the buyer
// can file one; order state does not matter.
func CanComplain(o *Order, viewerID int64) bool {
	return viewerID == o.BuyerID
}

// ActionsFor derives all action flags for a viewer.
func ActionsFor(o *Order, viewerID int64) OrderActions {
	return OrderActions{
		CanConfirm:  CanConfirm(o, viewerID),
		CanComplete: CanComplete(o, viewerID),
		CanCancel:   CanCancel(o, viewerID),
		CanComplain: CanComplain(o, viewerID),
	}
}
