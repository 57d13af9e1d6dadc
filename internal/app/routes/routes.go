package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/qlin/dormtrade/internal/app/controllers"
	"github.com/qlin/dormtrade/internal/app/models/dto"
	"github.com/qlin/dormtrade/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	postingController *controllers.PostingController,
	searchController *controllers.SearchController,
	orderController *controllers.OrderController,
	complaintController *controllers.ComplaintController,
	noticeController *controllers.NoticeController,
	statsController *controllers.StatsController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.SuccessResponse{Message: "ok"})
	})

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		users := authenticated.Group("/users")
		{
			users.GET("/me", userController.GetMe)
			users.PATCH("/me", userController.UpdateMe)
			users.PUT("/me/password", userController.ChangePassword)
			users.GET("/me/stats", statsController.GetMyStats)
		}

		authenticated.GET("/rooms", userController.GetRooms)

		postings := authenticated.Group("/postings")
		{
			postings.POST("", postingController.Create)
			postings.GET("/mine", postingController.GetMine)
			postings.GET("/:id", postingController.Get)
			postings.PATCH("/:id", postingController.Update)
			postings.POST("/:id/delist", postingController.Delist)
			postings.POST("/:id/relist", postingController.Relist)
			postings.POST("/:id/images", postingController.UploadImage)
			postings.POST("/:id/favorite", postingController.Favorite)
			postings.DELETE("/:id/favorite", postingController.Unfavorite)
		}

		authenticated.DELETE("/images/:id", postingController.DeleteImage)
		authenticated.GET("/favorites", postingController.GetFavorites)

		authenticated.GET("/search", searchController.Search)
		authenticated.GET("/tags/popular", searchController.GetPopularTags)
		authenticated.GET("/tags/suggest", searchController.SuggestTags)

		orders := authenticated.Group("/orders")
		{
			orders.POST("", orderController.Create)
			orders.GET("/mine", orderController.GetMine)
			orders.GET("/:id", orderController.Get)
			orders.POST("/:id/handoff", orderController.ConfirmHandoff)
			orders.POST("/:id/complete", orderController.Complete)
			orders.POST("/:id/cancel", orderController.Cancel)
			orders.GET("/:id/complaints", complaintController.GetByOrder)
		}

		complaints := authenticated.Group("/complaints")
		{
			complaints.POST("", complaintController.Submit)
			complaints.GET("/mine", complaintController.GetMine)
			complaints.GET("/:id", complaintController.Get)
		}

		notices := authenticated.Group("/notices")
		{
			notices.GET("", noticeController.GetInbox)
			notices.GET("/unread", noticeController.CountUnread)
			notices.POST("/read-all", noticeController.MarkAllRead)
			notices.POST("/:id/read", noticeController.MarkRead)
		}

		authenticated.GET("/announcements", noticeController.GetAnnouncements)

		// --- Administrator routes ---
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.AdminRequired())
		{
			admin.GET("/users", userController.GetUsers)
			admin.PUT("/users/:id/status", userController.SetUserStatus)
			admin.GET("/complaints", complaintController.GetAll)
			admin.POST("/complaints/:id/resolve", complaintController.Resolve)
			admin.POST("/announcements", noticeController.PublishAnnouncement)
			admin.DELETE("/announcements/:id", noticeController.DeleteAnnouncement)
			admin.GET("/stats", statsController.GetPlatformStats)
			admin.GET("/stats/locations", statsController.GetLocationStats)
			admin.GET("/stats/daily-orders", statsController.GetDailyOrders)
		}
	}
}
