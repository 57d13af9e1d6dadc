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

func TestPublishAnnouncementRejectsBlankFields(t *testing.T) {
	store := new(mockNoticeStore)
	svc := NewNoticeService(store)

	_, err := svc.PublishAnnouncement(context.Background(), 1, &dto.CreateAnnouncementRequest{
		Title: " ", Content: "body",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.PublishAnnouncement(context.Background(), 1, &dto.CreateAnnouncementRequest{
		Title: "title", Content: "",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	store.AssertNotCalled(t, "CreateAnnouncement", mock.Anything, mock.Anything, mock.Anything)
}

func TestPublishAnnouncementHasNoReceiver(t *testing.T) {
	store := new(mockNoticeStore)
	svc := NewNoticeService(store)
	ctx := context.Background()

	title := "Maintenance window"
	store.On("CreateAnnouncement", ctx, title, "Down at midnight").Return(&models.Notice{
		ID: 1, Type: models.NoticeTypeAnnouncement, Title: &title,
		Content: "Down at midnight", ReceiverID: nil,
	}, nil)

	notice, err := svc.PublishAnnouncement(ctx, 1, &dto.CreateAnnouncementRequest{
		Title: title, Content: "Down at midnight",
	})
	require.NoError(t, err)
	assert.Nil(t, notice.ReceiverID)
	assert.Equal(t, models.NoticeTypeAnnouncement, notice.Type)
}

func TestDeleteAnnouncementPropagatesNotFound(t *testing.T) {
	store := new(mockNoticeStore)
	svc := NewNoticeService(store)
	ctx := context.Background()

	// The store reports not-found both for missing rows and for per-user
	// notices, which are out of reach of the announcement delete.
	store.On("DeleteAnnouncement", ctx, int64(5)).Return(apperrors.ErrNoticeNotFound)

	err := svc.DeleteAnnouncement(ctx, 1, 5)
	assert.ErrorIs(t, err, apperrors.ErrNoticeNotFound)
	store.AssertExpectations(t)
}

func TestMarkReadScopedToReceiver(t *testing.T) {
	store := new(mockNoticeStore)
	svc := NewNoticeService(store)
	ctx := context.Background()

	store.On("MarkRead", ctx, int64(5), int64(7)).Return(nil)

	err := svc.MarkRead(ctx, 7, 5)
	require.NoError(t, err)
	store.AssertExpectations(t)
}
