package services

import (
	"context"

	"github.com/qlin/dormtrade/internal/app/models"
	"github.com/qlin/dormtrade/internal/app/models/dto"
	"github.com/qlin/dormtrade/internal/pkg/apperrors"
	"github.com/qlin/dormtrade/internal/pkg/logger"
	"github.com/qlin/dormtrade/internal/pkg/validation"
)

// noticeStore is the slice of the notice repository the service consumes
type noticeStore interface {
	GetByReceiver(ctx context.Context, receiverID int64, status *models.NoticeStatus, page, size int) ([]*models.Notice, dto.PaginationInfo, error)
	GetAnnouncements(ctx context.Context, page, size int) ([]*models.Notice, dto.PaginationInfo, error)
	CreateAnnouncement(ctx context.Context, title, content string) (*models.Notice, error)
	DeleteAnnouncement(ctx context.Context, id int64) error
	CountUnread(ctx context.Context, receiverID int64) (int64, error)
	MarkRead(ctx context.Context, noticeID, receiverID int64) error
	MarkAllRead(ctx context.Context, receiverID int64) error
}

// NoticeService handles the per-user inbox and platform announcements
type NoticeService struct {
	notices noticeStore
}

// NewNoticeService creates a new notice service instance
func NewNoticeService(notices noticeStore) *NoticeService {
	return &NoticeService{notices: notices}
}

// GetInbox retrieves the viewer's notices, optionally filtered by read
// status
func (s *NoticeService) GetInbox(ctx context.Context, viewerID int64, status *models.NoticeStatus, page, size int) ([]*models.Notice, dto.PaginationInfo, error) {
	return s.notices.GetByReceiver(ctx, viewerID, status, page, size)
}

// CountUnread returns the viewer's unread counter
func (s *NoticeService) CountUnread(ctx context.Context, viewerID int64) (int64, error) {
	return s.notices.CountUnread(ctx, viewerID)
}

// MarkRead flags one of the viewer's notices as read. Marking an already
// read notice succeeds without effect.
func (s *NoticeService) MarkRead(ctx context.Context, viewerID, noticeID int64) error {
	return s.notices.MarkRead(ctx, noticeID, viewerID)
}

// MarkAllRead flags the viewer's whole inbox as read
func (s *NoticeService) MarkAllRead(ctx context.Context, viewerID int64) error {
	return s.notices.MarkAllRead(ctx, viewerID)
}

// GetAnnouncements retrieves the platform-wide announcements
func (s *NoticeService) GetAnnouncements(ctx context.Context, page, size int) ([]*models.Notice, dto.PaginationInfo, error) {
	return s.notices.GetAnnouncements(ctx, page, size)
}

// PublishAnnouncement creates a platform-wide announcement
func (s *NoticeService) PublishAnnouncement(ctx context.Context, adminID int64, req *dto.CreateAnnouncementRequest) (*models.Notice, error) {
	if validation.IsBlank(req.Title) || validation.IsBlank(req.Content) {
		return nil, apperrors.NewValidationError("announcement title and content cannot be blank")
	}

	notice, err := s.notices.CreateAnnouncement(ctx, req.Title, req.Content)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("noticeId", notice.ID).Int64("adminId", adminID).Msg("Announcement published")

	return notice, nil
}

// DeleteAnnouncement removes a platform-wide announcement. Regular inbox
// notices cannot be deleted through this path.
func (s *NoticeService) DeleteAnnouncement(ctx context.Context, adminID, noticeID int64) error {
	if err := s.notices.DeleteAnnouncement(ctx, noticeID); err != nil {
		return err
	}

	logger.Info().Int64("noticeId", noticeID).Int64("adminId", adminID).Msg("Announcement deleted")

	return nil
}
