package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/meera-jk/ReWear/controllers"
	"github.com/meera-jk/ReWear/middleware"
)

// initUserRoutes initializes all user-related routes
func initUserRoutes(router *gin.RouterGroup) {
	// Public routes (no authentication required)
	router.POST("/register", controllers.RegisterUser)
	router.POST("/login", controllers.LoginUser)
	router.POST("/logout", controllers.LogoutUser)

	// Marketplace browsing
	router.GET("/items", controllers.GetItems)
	router.GET("/items/:id", controllers.GetItemDetails)

	// Protected routes (require authentication)
	protected := router.Group("/user")
	protected.Use(middleware.AuthMiddleware())
	{
		// Profile
		protected.GET("/profile", controllers.GetProfile)
		protected.PUT("/profile", controllers.UpdateProfile)

		// Listings
		protected.POST("/items", controllers.CreateItem)
		protected.GET("/items", controllers.ListMyItems)
		protected.PUT("/items/:id", controllers.UpdateItem)
		protected.PATCH("/items/:id/unavailable", controllers.MarkItemUnavailable)

		// Swaps
		protected.POST("/swaps/calculate", controllers.CalculateSwapCost)
		protected.POST("/swaps", controllers.CreateSwapRequest)
		protected.GET("/swaps", controllers.ListSwapRequests)
		protected.POST("/swaps/:id/accept", controllers.AcceptSwapRequest)
		protected.POST("/swaps/:id/reject", controllers.RejectSwapRequest)
		protected.POST("/swaps/:id/cancel", controllers.CancelSwapRequest)
		protected.GET("/swaps/:id/receipt", controllers.DownloadSwapReceipt)

		// Points
		protected.GET("/points", controllers.GetPointsBalance)
		protected.GET("/points/history", controllers.GetPointsHistory)
	}
}
