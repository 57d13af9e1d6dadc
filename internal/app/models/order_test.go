package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTerminal(t *testing.T) {
	assert.False(t, OrderStatusPendingHandoff.Terminal())
	assert.False(t, OrderStatusHandedOff.Terminal())
	assert.True(t, OrderStatusCompleted.Terminal())
	assert.True(t, OrderStatusCanceled.Terminal())
}

func TestActionsFor(t *testing.T) {
	const (
		buyerID    = int64(10)
		sellerID   = int64(20)
		strangerID = int64(30)
	)

	tests := []struct {
		name   string
		status OrderStatus
		viewer int64
		want   OrderActions
	}{
		{
			name:   "seller can only confirm while pending",
			status: OrderStatusPendingHandoff,
			viewer: sellerID,
			want:   OrderActions{CanConfirm: true},
		},
		{
			name:   "buyer can cancel or complain while pending",
			status: OrderStatusPendingHandoff,
			viewer: buyerID,
			want:   OrderActions{CanCancel: true, CanComplain: true},
		},
		{
			name:   "buyer can complete after handoff",
			status: OrderStatusHandedOff,
			viewer: buyerID,
			want:   OrderActions{CanComplete: true, CanCancel: true, CanComplain: true},
		},
		{
			name:   "seller has no transition after handoff",
			status: OrderStatusHandedOff,
			viewer: sellerID,
			want:   OrderActions{},
		},
		{
			name:   "buyer can still complain on a completed order",
			status: OrderStatusCompleted,
			viewer: buyerID,
			want:   OrderActions{CanComplain: true},
		},
		{
			name:   "canceled order admits nothing for the seller",
			status: OrderStatusCanceled,
			viewer: sellerID,
			want:   OrderActions{},
		},
		{
			name:   "third party gets no actions",
			status: OrderStatusPendingHandoff,
			viewer: strangerID,
			want:   OrderActions{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &Order{BuyerID: buyerID, SellerID: sellerID, Status: tt.status}
			assert.Equal(t, tt.want, ActionsFor(order, tt.viewer))
		})
	}
}

// Confirm and complete must never be available to the same viewer at the
// same time: confirm belongs to the seller in PENDING_HANDOFF, complete to
// the buyer in HANDED_OFF.
func TestActionsMutuallyExclusive(t *testing.T) {
	statuses := []OrderStatus{
		OrderStatusPendingHandoff, OrderStatusHandedOff,
		OrderStatusCompleted, OrderStatusCanceled,
	}
	viewers := []int64{10, 20, 30}

	for _, st := range statuses {
		for _, v := range viewers {
			order := &Order{BuyerID: 10, SellerID: 20, Status: st}
			a := ActionsFor(order, v)
			assert.False(t, a.CanConfirm && a.CanComplete,
				"status=%s viewer=%d", st, v)
		}
	}
}
