package services

import (
	"context"
	"fmt"

	"github.com/qlin/dormtrade/internal/app/models"
	"github.com/qlin/dormtrade/internal/app/models/dto"
	"github.com/qlin/dormtrade/internal/pkg/apperrors"
	"github.com/qlin/dormtrade/internal/pkg/logger"
	"github.com/qlin/dormtrade/internal/pkg/validation"
)

// orderStore is the slice of the order repository the service consumes
type orderStore interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	ConfirmHandoff(ctx context.Context, orderID, sellerID int64) error
	Complete(ctx context.Context, orderID, buyerID int64) error
	Cancel(ctx context.Context, orderID, buyerID int64, reason string) error
	GetByParticipant(ctx context.Context, userID int64, role string, page, size int) ([]*models.Order, dto.PaginationInfo, error)
}

// postingReader resolves postings for order placement
type postingReader interface {
	GetByID(ctx context.Context, id int64) (*models.Posting, error)
}

// noticeWriter queues in-app notices emitted by lifecycle transitions
type noticeWriter interface {
	Create(ctx context.Context, notice *models.Notice) error
}

// OrderService drives the order lifecycle. Every transition is first
// permission-checked against the fetched order, then applied through a
// compare-and-set update in the repository, so a stale read can never
// produce a double transition.
type OrderService struct {
	orders   orderStore
	postings postingReader
	notices  noticeWriter
}

// NewOrderService creates a new order service instance
func NewOrderService(orders orderStore, postings postingReader, notices noticeWriter) *OrderService {
	return &OrderService{
		orders:   orders,
		postings: postings,
		notices:  notices,
	}
}

// Create places an order on a listed posting. Buying your own listing is
// forbidden. The stock decrement, the order insert and the seller's handoff
// reminder land in one transaction.
func (s *OrderService) Create(ctx context.Context, buyerID int64, req *dto.CreateOrderRequest) (*models.Order, error) {
	posting, err := s.postings.GetByID(ctx, req.PostingID)
	if err != nil {
		return nil, err
	}

	if posting.OwnerID == buyerID {
		return nil, apperrors.NewForbiddenError("cannot purchase your own listing")
	}
	if posting.Status != models.PostingStatusListed {
		return nil, apperrors.ErrPostingDelisted
	}

	order := &models.Order{
		PostingID:    posting.ID,
		BuyerID:      buyerID,
		SellerID:     posting.OwnerID,
		Quantity:     req.Quantity,
		PostingTitle: posting.Title,
		PostingPrice: posting.Price,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("orderId", order.ID).
		Int64("postingId", posting.ID).
		Int64("buyerId", buyerID).
		Msg("Order placed")

	return order, nil
}

// Get retrieves an order. Only the parties and administrators may see it.
func (s *OrderService) Get(ctx context.Context, viewerID int64, viewerIsAdmin bool, orderID int64) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !viewerIsAdmin && viewerID != order.BuyerID && viewerID != order.SellerID {
		return nil, apperrors.NewForbiddenError("not a party to this order")
	}

	return order, nil
}

// GetMine retrieves the viewer's orders, as buyer, seller or either
func (s *OrderService) GetMine(ctx context.Context, viewerID int64, role string, page, size int) ([]*models.Order, dto.PaginationInfo, error) {
	return s.orders.GetByParticipant(ctx, viewerID, role, page, size)
}

// ConfirmHandoff is the seller confirming the item changed hands
func (s *OrderService) ConfirmHandoff(ctx context.Context, viewerID, orderID int64) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if viewerID != order.SellerID {
		return nil, apperrors.NewForbiddenError("only the seller can confirm the handoff")
	}
	if !models.CanConfirm(order, viewerID) {
		return nil, apperrors.ErrInvalidOrderState
	}

	if err := s.orders.ConfirmHandoff(ctx, orderID, viewerID); err != nil {
		return nil, err
	}

	s.notify(ctx, order.BuyerID, orderID,
		fmt.Sprintf("The seller confirmed the handoff for \"%s\". Complete the order once you have checked the item.", order.PostingTitle))

	return s.orders.GetByID(ctx, orderID)
}

// Complete is the buyer closing the order after receiving the item
func (s *OrderService) Complete(ctx context.Context, viewerID, orderID int64) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if viewerID != order.BuyerID {
		return nil, apperrors.NewForbiddenError("only the buyer can complete the order")
	}
	if !models.CanComplete(order, viewerID) {
		return nil, apperrors.ErrInvalidOrderState
	}

	if err := s.orders.Complete(ctx, orderID, viewerID); err != nil {
		return nil, err
	}

	s.notify(ctx, order.SellerID, orderID,
		fmt.Sprintf("The buyer completed the order for \"%s\".", order.PostingTitle))

	return s.orders.GetByID(ctx, orderID)
}

// Cancel is the buyer abandoning a non-terminal order with a reason. The
// reserved stock returns to the posting in the same transaction.
func (s *OrderService) Cancel(ctx context.Context, viewerID, orderID int64, reason string) (*models.Order, error) {
	if validation.IsBlank(reason) {
		return nil, apperrors.NewValidationError("a cancellation reason is required")
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if viewerID != order.BuyerID {
		return nil, apperrors.NewForbiddenError("only the buyer can cancel the order")
	}
	if !models.CanCancel(order, viewerID) {
		return nil, apperrors.ErrInvalidOrderState
	}

	if err := s.orders.Cancel(ctx, orderID, viewerID, reason); err != nil {
		return nil, err
	}

	s.notify(ctx, order.SellerID, orderID,
		fmt.Sprintf("The buyer canceled the order for \"%s\": %s", order.PostingTitle, reason))

	return s.orders.GetByID(ctx, orderID)
}

// notify queues a lifecycle notice. A failed notice never fails the
// transition that triggered it.
func (s *OrderService) notify(ctx context.Context, receiverID, orderID int64, content string) {
	notice := &models.Notice{
		Type:           models.NoticeTypeSystem,
		Content:        content,
		ReceiverID:     &receiverID,
		RelatedOrderID: &orderID,
	}
	if err := s.notices.Create(ctx, notice); err != nil {
		logger.Warn().Err(err).Int64("orderId", orderID).Msg("Failed to queue order notice")
	}
}
