package services

import (
	"context"

	"github.com/qlin/dormtrade/internal/app/models"
	"github.com/qlin/dormtrade/internal/app/models/dto"
	"github.com/qlin/dormtrade/internal/app/repositories"
	"github.com/stretchr/testify/mock"
)

type mockOrderStore struct {
	mock.Mock
}

func (m *mockOrderStore) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderStore) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *mockOrderStore) ConfirmHandoff(ctx context.Context, orderID, sellerID int64) error {
	args := m.Called(ctx, orderID, sellerID)
	return args.Error(0)
}

func (m *mockOrderStore) Complete(ctx context.Context, orderID, buyerID int64) error {
	args := m.Called(ctx, orderID, buyerID)
	return args.Error(0)
}

func (m *mockOrderStore) Cancel(ctx context.Context, orderID, buyerID int64, reason string) error {
	args := m.Called(ctx, orderID, buyerID, reason)
	return args.Error(0)
}

func (m *mockOrderStore) GetByParticipant(ctx context.Context, userID int64, role string, page, size int) ([]*models.Order, dto.PaginationInfo, error) {
	args := m.Called(ctx, userID, role, page, size)
	return args.Get(0).([]*models.Order), args.Get(1).(dto.PaginationInfo), args.Error(2)
}

type mockPostingReader struct {
	mock.Mock
}

func (m *mockPostingReader) GetByID(ctx context.Context, id int64) (*models.Posting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Posting), args.Error(1)
}

type mockPostingSearcher struct {
	mock.Mock
}

func (m *mockPostingSearcher) Search(ctx context.Context, viewer *models.Location, params repositories.SearchParams) ([]*models.Posting, dto.PaginationInfo, error) {
	args := m.Called(ctx, viewer, params)
	return args.Get(0).([]*models.Posting), args.Get(1).(dto.PaginationInfo), args.Error(2)
}

type mockLocationReader struct {
	mock.Mock
}

func (m *mockLocationReader) GetLocation(ctx context.Context, userID int64) (*models.Location, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Location), args.Error(1)
}

type mockTagReader struct {
	mock.Mock
}

func (m *mockTagReader) GetPopular(ctx context.Context, limit int) ([]*models.Tag, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*models.Tag), args.Error(1)
}

func (m *mockTagReader) Suggest(ctx context.Context, fragment string, limit int) ([]*models.Tag, error) {
	args := m.Called(ctx, fragment, limit)
	return args.Get(0).([]*models.Tag), args.Error(1)
}

type mockNoticeWriter struct {
	mock.Mock
}

func (m *mockNoticeWriter) Create(ctx context.Context, notice *models.Notice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}

func (m *mockNoticeWriter) CreateForAllAdmins(ctx context.Context, content string, relatedOrderID *int64) error {
	args := m.Called(ctx, content, relatedOrderID)
	return args.Error(0)
}

type mockComplaintStore struct {
	mock.Mock
}

func (m *mockComplaintStore) Create(ctx context.Context, complaint *models.Complaint) error {
	args := m.Called(ctx, complaint)
	return args.Error(0)
}

func (m *mockComplaintStore) HasOpenComplaint(ctx context.Context, orderID, complainantID int64) (bool, error) {
	args := m.Called(ctx, orderID, complainantID)
	return args.Bool(0), args.Error(1)
}

func (m *mockComplaintStore) GetByID(ctx context.Context, id int64) (*models.Complaint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *mockComplaintStore) MarkProcessing(ctx context.Context, id, adminID int64) error {
	args := m.Called(ctx, id, adminID)
	return args.Error(0)
}

func (m *mockComplaintStore) Resolve(ctx context.Context, id int64, status models.ComplaintStatus, result *string, adminID int64) error {
	args := m.Called(ctx, id, status, result, adminID)
	return args.Error(0)
}

func (m *mockComplaintStore) GetByComplainant(ctx context.Context, userID int64, page, size int) ([]*models.Complaint, dto.PaginationInfo, error) {
	args := m.Called(ctx, userID, page, size)
	return args.Get(0).([]*models.Complaint), args.Get(1).(dto.PaginationInfo), args.Error(2)
}

func (m *mockComplaintStore) GetByOrder(ctx context.Context, orderID int64, page, size int) ([]*models.Complaint, dto.PaginationInfo, error) {
	args := m.Called(ctx, orderID, page, size)
	return args.Get(0).([]*models.Complaint), args.Get(1).(dto.PaginationInfo), args.Error(2)
}

func (m *mockComplaintStore) GetAll(ctx context.Context, status *models.ComplaintStatus, page, size int) ([]*models.Complaint, dto.PaginationInfo, error) {
	args := m.Called(ctx, status, page, size)
	return args.Get(0).([]*models.Complaint), args.Get(1).(dto.PaginationInfo), args.Error(2)
}

type mockNoticeStore struct {
	mock.Mock
}

func (m *mockNoticeStore) GetByReceiver(ctx context.Context, receiverID int64, status *models.NoticeStatus, page, size int) ([]*models.Notice, dto.PaginationInfo, error) {
	args := m.Called(ctx, receiverID, status, page, size)
	return args.Get(0).([]*models.Notice), args.Get(1).(dto.PaginationInfo), args.Error(2)
}

func (m *mockNoticeStore) GetAnnouncements(ctx context.Context, page, size int) ([]*models.Notice, dto.PaginationInfo, error) {
	args := m.Called(ctx, page, size)
	return args.Get(0).([]*models.Notice), args.Get(1).(dto.PaginationInfo), args.Error(2)
}

func (m *mockNoticeStore) CreateAnnouncement(ctx context.Context, title, content string) (*models.Notice, error) {
	args := m.Called(ctx, title, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notice), args.Error(1)
}

func (m *mockNoticeStore) DeleteAnnouncement(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockNoticeStore) CountUnread(ctx context.Context, receiverID int64) (int64, error) {
	args := m.Called(ctx, receiverID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNoticeStore) MarkRead(ctx context.Context, noticeID, receiverID int64) error {
	args := m.Called(ctx, noticeID, receiverID)
	return args.Error(0)
}

func (m *mockNoticeStore) MarkAllRead(ctx context.Context, receiverID int64) error {
	args := m.Called(ctx, receiverID)
	return args.Error(0)
}
