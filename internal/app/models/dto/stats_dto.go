package dto

// PlatformStatsResponse aggregates platform-wide counters for the admin
// dashboard
type PlatformStatsResponse struct {
	TotalUsers      int64 `json:"totalUsers"`
	ActiveUsers     int64 `json:"activeUsers"`
	BannedUsers     int64 `json:"bannedUsers"`
	TotalPostings   int64 `json:"totalPostings"`
	ListedPostings  int64 `json:"listedPostings"`
	TotalOrders     int64 `json:"totalOrders"`
	CompletedOrders int64 `json:"completedOrders"`
	CanceledOrders  int64 `json:"canceledOrders"`
	OpenComplaints  int64 `json:"openComplaints"`
}

// UserStatsResponse aggregates a single user's trading activity
type UserStatsResponse struct {
	PostingCount    int64 `json:"postingCount"`
	BoughtCount     int64 `json:"boughtCount"`
	SoldCount       int64 `json:"soldCount"`
	FavoriteCount   int64 `json:"favoriteCount"`
	ComplaintsFiled int64 `json:"complaintsFiled"`
}

// LocationStatsEntry aggregates trading activity for one dormitory bucket.
// Floor and RoomNo stay nil for the coarser groupings.
type LocationStatsEntry struct {
	Building        string  `json:"building"`
	Floor           *int    `json:"floor,omitempty"`
	RoomNo          *string `json:"roomNo,omitempty"`
	Residents       int64   `json:"residents"`
	ListedPostings  int64   `json:"listedPostings"`
	CompletedOrders int64   `json:"completedOrders"`
}

// DailyOrderStat counts completed orders for one calendar day
type DailyOrderStat struct {
	Date            string `json:"date"`
	CompletedOrders int64  `json:"completedOrders"`
}
