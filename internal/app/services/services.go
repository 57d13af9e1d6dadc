package services

import (
	"github.com/qlin/dormtrade/internal/app/repositories"
	"github.com/qlin/dormtrade/internal/pkg/auth"
	"github.com/qlin/dormtrade/internal/pkg/filestorage"
)

// Services holds all the business-rule service instances
type Services struct {
	AuthService      *AuthService
	UserService      *UserService
	PostingService   *PostingService
	SearchService    *SearchService
	OrderService     *OrderService
	ComplaintService *ComplaintService
	NoticeService    *NoticeService
	StatsService     *StatsService
}

// NewServices wires all services onto the repository layer
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, storage filestorage.FileStorage, adminCode string) *Services {
	return &Services{
		AuthService:      NewAuthService(repos.UserRepository, repos.RoomRepository, jwtService, adminCode),
		UserService:      NewUserService(repos.UserRepository, repos.RoomRepository),
		PostingService:   NewPostingService(repos.PostingRepository, repos.TagRepository, repos.UserRepository, storage),
		SearchService:    NewSearchService(repos.SearchRepository, repos.UserRepository, repos.TagRepository),
		OrderService:     NewOrderService(repos.OrderRepository, repos.PostingRepository, repos.NoticeRepository),
		ComplaintService: NewComplaintService(repos.ComplaintRepository, repos.OrderRepository, repos.NoticeRepository),
		NoticeService:    NewNoticeService(repos.NoticeRepository),
		StatsService:     NewStatsService(repos.StatsRepository),
	}
}
