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

// complaintStore is the slice of the complaint repository the service
// consumes
type complaintStore interface {
	Create(ctx context.Context, complaint *models.Complaint) error
	HasOpenComplaint(ctx context.Context, orderID, complainantID int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*models.Complaint, error)
	MarkProcessing(ctx context.Context, id, adminID int64) error
	Resolve(ctx context.Context, id int64, status models.ComplaintStatus, result *string, adminID int64) error
	GetByComplainant(ctx context.Context, userID int64, page, size int) ([]*models.Complaint, dto.PaginationInfo, error)
	GetByOrder(ctx context.Context, orderID int64, page, size int) ([]*models.Complaint, dto.PaginationInfo, error)
	GetAll(ctx context.Context, status *models.ComplaintStatus, page, size int) ([]*models.Complaint, dto.PaginationInfo, error)
}

// orderReader resolves orders for complaint submission
type orderReader interface {
	GetByID(ctx context.Context, id int64) (*models.Order, error)
}

// complaintNoticeWriter can additionally fan a notice out to every
// administrator, used to fill the review queue on submission
type complaintNoticeWriter interface {
	noticeWriter
	CreateForAllAdmins(ctx context.Context, content string, relatedOrderID *int64) error
}

// ComplaintService handles dispute filing and administrator resolution
type ComplaintService struct {
	complaints complaintStore
	orders     orderReader
	notices    complaintNoticeWriter
}

// NewComplaintService creates a new complaint service instance
func NewComplaintService(complaints complaintStore, orders orderReader, notices complaintNoticeWriter) *ComplaintService {
	return &ComplaintService{
		complaints: complaints,
		orders:     orders,
		notices:    notices,
	}
}

// Submit files a complaint on an order. The accused party is derived as the
// order's seller, so the seller cannot file one, and a complainant may have
// at most one open complaint per order.
func (s *ComplaintService) Submit(ctx context.Context, complainantID int64, req *dto.CreateComplaintRequest) (*models.Complaint, error) {
	if validation.IsBlank(req.Content) {
		return nil, apperrors.NewValidationError("complaint content cannot be blank")
	}

	order, err := s.orders.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	if complainantID == order.SellerID {
		return nil, apperrors.ErrSelfComplaint
	}
	if complainantID != order.BuyerID {
		return nil, apperrors.NewForbiddenError("only a party to the order can file a complaint")
	}

	open, err := s.complaints.HasOpenComplaint(ctx, req.OrderID, complainantID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, apperrors.ErrDuplicateOpenComplaint
	}

	complaint := &models.Complaint{
		OrderID:       req.OrderID,
		ComplainantID: complainantID,
		AccusedID:     order.SellerID,
		Content:       req.Content,
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("complaintId", complaint.ID).
		Int64("orderId", req.OrderID).
		Msg("Complaint filed")

	orderID := req.OrderID
	content := fmt.Sprintf("A new complaint was filed on order #%d and awaits review.", orderID)
	if err := s.notices.CreateForAllAdmins(ctx, content, &orderID); err != nil {
		logger.Warn().Err(err).Int64("complaintId", complaint.ID).Msg("Failed to queue admin review notices")
	}

	return complaint, nil
}

// Get retrieves a complaint. Visible to its parties and administrators.
func (s *ComplaintService) Get(ctx context.Context, viewerID int64, viewerIsAdmin bool, complaintID int64) (*models.Complaint, error) {
	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}

	if !viewerIsAdmin && viewerID != complaint.ComplainantID && viewerID != complaint.AccusedID {
		return nil, apperrors.NewForbiddenError("not a party to this complaint")
	}

	return complaint, nil
}

// GetByOrder retrieves the complaints filed on an order. Visible to the
// order's parties and administrators.
func (s *ComplaintService) GetByOrder(ctx context.Context, viewerID int64, viewerIsAdmin bool, orderID int64, page, size int) ([]*models.Complaint, dto.PaginationInfo, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	if !viewerIsAdmin && viewerID != order.BuyerID && viewerID != order.SellerID {
		return nil, dto.PaginationInfo{}, apperrors.NewForbiddenError("not a party to this order")
	}

	return s.complaints.GetByOrder(ctx, orderID, page, size)
}

// GetMine retrieves the viewer's own complaints
func (s *ComplaintService) GetMine(ctx context.Context, viewerID int64, page, size int) ([]*models.Complaint, dto.PaginationInfo, error) {
	return s.complaints.GetByComplainant(ctx, viewerID, page, size)
}

// GetAll retrieves all complaints for the admin screens
func (s *ComplaintService) GetAll(ctx context.Context, status *models.ComplaintStatus, page, size int) ([]*models.Complaint, dto.PaginationInfo, error) {
	return s.complaints.GetAll(ctx, status, page, size)
}

// Resolve applies an administrator decision. PROCESSING only moves a
// PENDING complaint and is a no-op past that; RESOLVED and REJECTED are
// final, require a result text, and notify the complainant. An omitted
// status defaults to RESOLVED.
func (s *ComplaintService) Resolve(ctx context.Context, adminID, complaintID int64, req *dto.ResolveComplaintRequest) (*models.Complaint, error) {
	status := models.ComplaintStatus(req.Status)
	if req.Status == "" {
		status = models.ComplaintStatusResolved
	}

	switch status {
	case models.ComplaintStatusProcessing:
		if err := s.complaints.MarkProcessing(ctx, complaintID, adminID); err != nil {
			return nil, err
		}

	case models.ComplaintStatusResolved, models.ComplaintStatusRejected:
		if validation.IsBlank(req.Result) {
			return nil, apperrors.NewValidationError("a result text is required for a final decision")
		}
		result := req.Result
		if err := s.complaints.Resolve(ctx, complaintID, status, &result, adminID); err != nil {
			return nil, err
		}

		complaint, err := s.complaints.GetByID(ctx, complaintID)
		if err != nil {
			return nil, err
		}

		verdict := "resolved"
		if status == models.ComplaintStatusRejected {
			verdict = "rejected"
		}
		receiverID := complaint.ComplainantID
		notice := &models.Notice{
			Type:           models.NoticeTypeSystem,
			Content:        fmt.Sprintf("Your complaint about \"%s\" was %s: %s", complaint.PostingTitle, verdict, result),
			ReceiverID:     &receiverID,
			RelatedOrderID: &complaint.OrderID,
		}
		if err := s.notices.Create(ctx, notice); err != nil {
			logger.Warn().Err(err).Int64("complaintId", complaintID).Msg("Failed to queue resolution notice")
		}

		return complaint, nil

	default:
		return nil, apperrors.NewValidationError("unknown complaint status")
	}

	return s.complaints.GetByID(ctx, complaintID)
}
