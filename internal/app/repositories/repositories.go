package repositories

import (
	"github.com/qlin/dormtrade/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository      *UserRepository
	RoomRepository      *RoomRepository
	PostingRepository   *PostingRepository
	TagRepository       *TagRepository
	SearchRepository    *SearchRepository
	OrderRepository     *OrderRepository
	ComplaintRepository *ComplaintRepository
	NoticeRepository    *NoticeRepository
	StatsRepository     *StatsRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	pool := database.Pool
	return &Repositories{
		UserRepository:      NewUserRepository(pool),
		RoomRepository:      NewRoomRepository(pool),
		PostingRepository:   NewPostingRepository(pool),
		TagRepository:       NewTagRepository(pool),
		SearchRepository:    NewSearchRepository(pool),
		OrderRepository:     NewOrderRepository(database),
		ComplaintRepository: NewComplaintRepository(pool),
		NoticeRepository:    NewNoticeRepository(pool),
		StatsRepository:     NewStatsRepository(pool),
	}
}
