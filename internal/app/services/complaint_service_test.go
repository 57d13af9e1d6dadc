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

func newComplaintServiceWithMocks() (*ComplaintService, *mockComplaintStore, *mockOrderStore, *mockNoticeWriter) {
	complaints := new(mockComplaintStore)
	orders := new(mockOrderStore)
	notices := new(mockNoticeWriter)
	return NewComplaintService(complaints, orders, notices), complaints, orders, notices
}

func TestSubmitRejectsBlankContent(t *testing.T) {
	svc, complaints, _, _ := newComplaintServiceWithMocks()

	_, err := svc.Submit(context.Background(), 7, &dto.CreateComplaintRequest{
		OrderID: 9, Content: "  \t ",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	complaints.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitRejectsSelfComplaint(t *testing.T) {
	svc, _, orders, _ := newComplaintServiceWithMocks()
	ctx := context.Background()

	orders.On("GetByID", ctx, int64(9)).Return(&models.Order{
		ID: 9, BuyerID: 7, SellerID: 42, Status: models.OrderStatusCanceled,
	}, nil)

	// Rejected regardless of the order's state.
	_, err := svc.Submit(ctx, 42, &dto.CreateComplaintRequest{OrderID: 9, Content: "bad item"})
	assert.ErrorIs(t, err, apperrors.ErrSelfComplaint)
}

func TestSubmitRejectsThirdParty(t *testing.T) {
	svc, _, orders, _ := newComplaintServiceWithMocks()
	ctx := context.Background()

	orders.On("GetByID", ctx, int64(9)).Return(&models.Order{
		ID: 9, BuyerID: 7, SellerID: 42, Status: models.OrderStatusPendingHandoff,
	}, nil)

	_, err := svc.Submit(ctx, 99, &dto.CreateComplaintRequest{OrderID: 9, Content: "bad item"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestSubmitRejectsDuplicateOpenComplaint(t *testing.T) {
	svc, complaints, orders, _ := newComplaintServiceWithMocks()
	ctx := context.Background()

	orders.On("GetByID", ctx, int64(9)).Return(&models.Order{
		ID: 9, BuyerID: 7, SellerID: 42, Status: models.OrderStatusHandedOff,
	}, nil)
	complaints.On("HasOpenComplaint", ctx, int64(9), int64(7)).Return(true, nil)

	_, err := svc.Submit(ctx, 7, &dto.CreateComplaintRequest{OrderID: 9, Content: "still broken"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateOpenComplaint)
	complaints.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitDerivesAccusedFromSeller(t *testing.T) {
	svc, complaints, orders, notices := newComplaintServiceWithMocks()
	ctx := context.Background()

	orders.On("GetByID", ctx, int64(9)).Return(&models.Order{
		ID: 9, BuyerID: 7, SellerID: 42, Status: models.OrderStatusHandedOff,
	}, nil)
	complaints.On("HasOpenComplaint", ctx, int64(9), int64(7)).Return(false, nil)
	complaints.On("Create", ctx, mock.MatchedBy(func(c *models.Complaint) bool {
		return c.AccusedID == 42 && c.ComplainantID == 7 && c.OrderID == 9
	})).Return(nil)
	notices.On("CreateForAllAdmins", ctx, mock.AnythingOfType("string"),
		mock.AnythingOfType("*int64")).Return(nil)

	complaint, err := svc.Submit(ctx, 7, &dto.CreateComplaintRequest{OrderID: 9, Content: "never received"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), complaint.AccusedID)
	complaints.AssertExpectations(t)
	notices.AssertExpectations(t)
}

func TestGetByOrderHiddenFromThirdParties(t *testing.T) {
	svc, complaints, orders, _ := newComplaintServiceWithMocks()
	ctx := context.Background()

	orders.On("GetByID", ctx, int64(9)).Return(&models.Order{
		ID: 9, BuyerID: 7, SellerID: 42,
	}, nil)

	_, _, err := svc.GetByOrder(ctx, 99, false, 9, 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	complaints.AssertNotCalled(t, "GetByOrder",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	complaints.On("GetByOrder", ctx, int64(9), 1, 10).
		Return([]*models.Complaint{{ID: 3, OrderID: 9}}, dto.PaginationInfo{}, nil)

	listed, _, err := svc.GetByOrder(ctx, 42, false, 9, 1, 10)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestResolveRequiresResultTextForFinalDecision(t *testing.T) {
	svc, complaints, _, _ := newComplaintServiceWithMocks()

	_, err := svc.Resolve(context.Background(), 1, 3, &dto.ResolveComplaintRequest{
		Status: string(models.ComplaintStatusResolved), Result: "",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	complaints.AssertNotCalled(t, "Resolve",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveNotifiesComplainant(t *testing.T) {
	svc, complaints, _, notices := newComplaintServiceWithMocks()
	ctx := context.Background()

	complaints.On("Resolve", ctx, int64(3), models.ComplaintStatusResolved,
		mock.AnythingOfType("*string"), int64(1)).Return(nil)
	complaints.On("GetByID", ctx, int64(3)).Return(&models.Complaint{
		ID: 3, OrderID: 9, ComplainantID: 7, AccusedID: 42,
		Status: models.ComplaintStatusResolved, PostingTitle: "desk lamp",
	}, nil)
	notices.On("Create", ctx, mock.MatchedBy(func(n *models.Notice) bool {
		return n.ReceiverID != nil && *n.ReceiverID == 7
	})).Return(nil)

	complaint, err := svc.Resolve(ctx, 1, 3, &dto.ResolveComplaintRequest{
		Status: string(models.ComplaintStatusResolved), Result: "refund agreed",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusResolved, complaint.Status)
	notices.AssertExpectations(t)
}

func TestResolveDefaultsToResolved(t *testing.T) {
	svc, complaints, _, notices := newComplaintServiceWithMocks()
	ctx := context.Background()

	complaints.On("Resolve", ctx, int64(3), models.ComplaintStatusResolved,
		mock.AnythingOfType("*string"), int64(1)).Return(nil)
	complaints.On("GetByID", ctx, int64(3)).Return(&models.Complaint{
		ID: 3, OrderID: 9, ComplainantID: 7, AccusedID: 42,
		Status: models.ComplaintStatusResolved,
	}, nil)
	notices.On("Create", ctx, mock.Anything).Return(nil)

	// No status in the request decides RESOLVED.
	complaint, err := svc.Resolve(ctx, 1, 3, &dto.ResolveComplaintRequest{
		Result: "refund agreed",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusResolved, complaint.Status)
	complaints.AssertExpectations(t)
}

func TestResolveProcessingSkipsNotice(t *testing.T) {
	svc, complaints, _, notices := newComplaintServiceWithMocks()
	ctx := context.Background()

	complaints.On("MarkProcessing", ctx, int64(3), int64(1)).Return(nil)
	complaints.On("GetByID", ctx, int64(3)).Return(&models.Complaint{
		ID: 3, Status: models.ComplaintStatusProcessing,
	}, nil)

	_, err := svc.Resolve(ctx, 1, 3, &dto.ResolveComplaintRequest{
		Status: string(models.ComplaintStatusProcessing),
	})
	require.NoError(t, err)
	notices.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestComplaintGetHiddenFromThirdParties(t *testing.T) {
	svc, complaints, _, _ := newComplaintServiceWithMocks()
	ctx := context.Background()

	complaints.On("GetByID", ctx, int64(3)).Return(&models.Complaint{
		ID: 3, ComplainantID: 7, AccusedID: 42,
	}, nil)

	_, err := svc.Get(ctx, 99, false, 3)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	c, err := svc.Get(ctx, 42, false, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), c.ID)
}
