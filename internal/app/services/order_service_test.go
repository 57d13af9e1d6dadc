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

func newOrderServiceWithMocks() (*OrderService, *mockOrderStore, *mockPostingReader, *mockNoticeWriter) {
	orders := new(mockOrderStore)
	postings := new(mockPostingReader)
	notices := new(mockNoticeWriter)
	return NewOrderService(orders, postings, notices), orders, postings, notices
}

func TestOrderCreateRejectsSelfPurchase(t *testing.T) {
	svc, orders, postings, _ := newOrderServiceWithMocks()
	ctx := context.Background()

	postings.On("GetByID", ctx, int64(5)).Return(&models.Posting{
		ID: 5, OwnerID: 42, Status: models.PostingStatusListed,
	}, nil)

	_, err := svc.Create(ctx, 42, &dto.CreateOrderRequest{PostingID: 5, Quantity: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderCreateRejectsDelistedPosting(t *testing.T) {
	svc, orders, postings, _ := newOrderServiceWithMocks()
	ctx := context.Background()

	postings.On("GetByID", ctx, int64(5)).Return(&models.Posting{
		ID: 5, OwnerID: 42, Status: models.PostingStatusDelisted,
	}, nil)

	_, err := svc.Create(ctx, 7, &dto.CreateOrderRequest{PostingID: 5, Quantity: 1})
	assert.ErrorIs(t, err, apperrors.ErrPostingDelisted)
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderCreateDerivesSellerFromPosting(t *testing.T) {
	svc, orders, postings, _ := newOrderServiceWithMocks()
	ctx := context.Background()

	postings.On("GetByID", ctx, int64(5)).Return(&models.Posting{
		ID: 5, OwnerID: 42, Title: "desk lamp", Price: 15,
		Status: models.PostingStatusListed,
	}, nil)
	orders.On("Create", ctx, mock.MatchedBy(func(o *models.Order) bool {
		return o.SellerID == 42 && o.BuyerID == 7 && o.Quantity == 2 && o.PostingTitle == "desk lamp"
	})).Return(nil)

	order, err := svc.Create(ctx, 7, &dto.CreateOrderRequest{PostingID: 5, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(42), order.SellerID)
	orders.AssertExpectations(t)
}

func TestConfirmHandoffOnlyForSeller(t *testing.T) {
	svc, orders, _, _ := newOrderServiceWithMocks()
	ctx := context.Background()

	orders.On("GetByID", ctx, int64(9)).Return(&models.Order{
		ID: 9, BuyerID: 7, SellerID: 42, Status: models.OrderStatusPendingHandoff,
	}, nil)

	_, err := svc.ConfirmHandoff(ctx, 7, 9)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	orders.AssertNotCalled(t, "ConfirmHandoff", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmHandoffRejectsWrongState(t *testing.T) {
	svc, orders, _, _ := newOrderServiceWithMocks()
	ctx := context.Background()

	orders.On("GetByID", ctx, int64(9)).Return(&models.Order{
		ID: 9, BuyerID: 7, SellerID: 42, Status: models.OrderStatusHandedOff,
	}, nil)

	_, err := svc.ConfirmHandoff(ctx, 42, 9)
	assert.ErrorIs(t, err, apperrors.ErrInvalidOrderState)
}

func TestConfirmHandoffNotifiesBuyer(t *testing.T) {
	svc, orders, _, notices := newOrderServiceWithMocks()
	ctx := context.Background()

	pending := &models.Order{
		ID: 9, BuyerID: 7, SellerID: 42, PostingTitle: "desk lamp",
		Status: models.OrderStatusPendingHandoff,
	}
	orders.On("GetByID", ctx, int64(9)).Return(pending, nil).Once()
	orders.On("ConfirmHandoff", ctx, int64(9), int64(42)).Return(nil)
	notices.On("Create", ctx, mock.MatchedBy(func(n *models.Notice) bool {
		return n.ReceiverID != nil && *n.ReceiverID == 7 && n.Type == models.NoticeTypeSystem
	})).Return(nil)
	orders.On("GetByID", ctx, int64(9)).Return(&models.Order{
		ID: 9, BuyerID: 7, SellerID: 42, Status: models.OrderStatusHandedOff,
	}, nil)

	order, err := svc.ConfirmHandoff(ctx, 42, 9)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusHandedOff, order.Status)
	notices.AssertExpectations(t)
}

func TestCompleteOnlyForBuyerFromHandedOff(t *testing.T) {
	svc, orders, _, _ := newOrderServiceWithMocks()
	ctx := context.Background()

	orders.On("GetByID", ctx, int64(9)).Return(&models.Order{
		ID: 9, BuyerID: 7, SellerID: 42, Status: models.OrderStatusPendingHandoff,
	}, nil)

	_, err := svc.Complete(ctx, 42, 9)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.Complete(ctx, 7, 9)
	assert.ErrorIs(t, err, apperrors.ErrInvalidOrderState)
}

func TestCancelRequiresReason(t *testing.T) {
	svc, orders, _, _ := newOrderServiceWithMocks()

	_, err := svc.Cancel(context.Background(), 7, 9, "   ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	orders.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelRejectsTerminalOrder(t *testing.T) {
	svc, orders, _, _ := newOrderServiceWithMocks()
	ctx := context.Background()

	orders.On("GetByID", ctx, int64(9)).Return(&models.Order{
		ID: 9, BuyerID: 7, SellerID: 42, Status: models.OrderStatusCompleted,
	}, nil)

	_, err := svc.Cancel(ctx, 7, 9, "changed my mind")
	assert.ErrorIs(t, err, apperrors.ErrInvalidOrderState)
}

func TestGetHidesOrderFromThirdParties(t *testing.T) {
	svc, orders, _, _ := newOrderServiceWithMocks()
	ctx := context.Background()

	orders.On("GetByID", ctx, int64(9)).Return(&models.Order{
		ID: 9, BuyerID: 7, SellerID: 42, Status: models.OrderStatusPendingHandoff,
	}, nil)

	_, err := svc.Get(ctx, 99, false, 9)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	order, err := svc.Get(ctx, 99, true, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(9), order.ID)
}
