package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/meera-jk/ReWear/controllers"
	"github.com/meera-jk/ReWear/middleware"
)

// initAdminRoutes initializes all admin-related routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		// Listing moderation
		admin.GET("/items", controllers.ListItemsForReview)
		admin.POST("/items/:id/approve", controllers.ApproveItem)
		admin.POST("/items/:id/reject", controllers.RejectItem)

		// User management
		admin.GET("/users", controllers.GetUsers)
		admin.PATCH("/users/:id/suspend", controllers.SuspendUser)
		admin.PATCH("/users/:id/reinstate", controllers.ReinstateUser)
		admin.PATCH("/users/:id/ban", controllers.BanUser)

		// Points administration
		admin.POST("/points/bonus", controllers.AwardBonusPoints)

		// Reports
		admin.GET("/reports/swaps/export", controllers.DownloadSwapReportExcel)
	}
}
