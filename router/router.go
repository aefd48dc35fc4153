package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/econursery/nursery-app/controllers"
	"github.com/econursery/nursery-app/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Uploaded catalog images.
	r.Static("/uploads", "public/uploads")

	userCtrl := controllers.NewUserController(db)
	plantCtrl := controllers.NewPlantController(db)
	ingredientCtrl := controllers.NewIngredientController(db)
	cartCtrl := controllers.NewCartController(db)
	orderCtrl := controllers.NewOrderController(db)
	wishlistCtrl := controllers.NewWishlistController(db)
	reviewCtrl := controllers.NewReviewController(db)
	adminCtrl := controllers.NewAdminController(db)
	notificationCtrl := controllers.NewNotificationController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Catalog browsing needs no account.
	r.GET("/plants", plantCtrl.GetAllPlants)
	r.GET("/plants/:plant_id", plantCtrl.GetPlantByID)
	r.GET("/plants/:plant_id/reviews", reviewCtrl.GetPlantReviews)
	r.GET("/ingredients", ingredientCtrl.GetAllIngredients)
	r.GET("/ingredients/:ingredient_id", ingredientCtrl.GetIngredientByID)

	// Anyone holding a tracking number may check the order status.
	r.GET("/track-order", orderCtrl.TrackOrder)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/profile", userCtrl.GetProfile)
		auth.PATCH("/profile", userCtrl.UpdateProfile)

		auth.GET("/cart", cartCtrl.GetCart)
		auth.POST("/cart", cartCtrl.AddToCart)
		auth.PATCH("/cart/:cart_id", cartCtrl.UpdateCartItem)
		auth.DELETE("/cart/:cart_id", cartCtrl.RemoveFromCart)

		auth.GET("/checkout", orderCtrl.CheckoutPreview)
		auth.POST("/orders", orderCtrl.PlaceOrder)
		auth.GET("/orders", orderCtrl.GetMyOrders)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		auth.POST("/orders/:order_id/cancel", orderCtrl.CancelOrder)

		auth.GET("/wishlist", wishlistCtrl.GetWishlist)
		auth.POST("/wishlist", wishlistCtrl.AddToWishlist)
		auth.DELETE("/wishlist/:wishlist_id", wishlistCtrl.RemoveFromWishlist)
		auth.POST("/wishlist/:wishlist_id/move-to-cart", wishlistCtrl.MoveToCart)

		auth.POST("/plants/:plant_id/reviews", reviewCtrl.AddReview)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.AdminOnly())
	{
		admin.GET("/dashboard/stats", adminCtrl.GetDashboardStats)
		admin.GET("/users", userCtrl.GetAllUsers)

		admin.POST("/plants", plantCtrl.CreatePlant)
		admin.PATCH("/plants/:plant_id", plantCtrl.UpdatePlant)
		admin.DELETE("/plants/:plant_id", plantCtrl.DeletePlant)

		admin.POST("/ingredients", ingredientCtrl.CreateIngredient)
		admin.PATCH("/ingredients/:ingredient_id", ingredientCtrl.UpdateIngredient)
		admin.DELETE("/ingredients/:ingredient_id", ingredientCtrl.DeleteIngredient)

		admin.GET("/orders", adminCtrl.GetAllOrders)
		admin.PATCH("/orders/:order_id/status", adminCtrl.UpdateOrderStatus)

		admin.GET("/notifications", notificationCtrl.GetAllNotifications)
		admin.DELETE("/notifications/:notif_id", notificationCtrl.DeleteNotification)
	}

	// Live back-office events.
	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware())
	{
		ws.GET("/admin", controllers.StoreEventsHandler)
	}

	return r
}
