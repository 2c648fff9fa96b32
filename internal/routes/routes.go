package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jcgamayo/pcbulacan-golang/internal/handlers"
	"github.com/jcgamayo/pcbulacan-golang/internal/middleware"
)

// CORSMiddleware tells the browser the storefront frontend may call us.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "http://localhost:5173")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// Preflight OPTIONS requests get an empty 204
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()
	router.Use(CORSMiddleware())

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		v1.POST("/register", h.Register)
		v1.POST("/login", h.Login)

		// --- Password Reset (Public) ---
		v1.POST("/password/send-code", h.SendResetCode)
		v1.POST("/password/verify-code", h.VerifyResetCode)
		v1.POST("/password/reset", h.ResetPassword)

		// --- Public Catalog Routes ---
		v1.GET("/products", h.GetProducts)
		v1.GET("/products/suggestions", h.GetProductSuggestions)
		v1.GET("/products/:slug", h.GetProductBySlug)
		v1.GET("/categories", h.GetCategories)
		v1.GET("/deals", h.GetDeals)

		// --- Shipping Preview & Chatbot (Public) ---
		v1.POST("/shipping/calculate", h.CalculateShipping)
		v1.POST("/chat", h.Chat)

		// --- Protected Routes (Login Required) ---
		auth := v1.Group("/")
		auth.Use(middleware.AuthMiddleware(h.DB))
		{
			// Profile
			auth.GET("/profile/me", h.GetProfile)
			auth.PUT("/profile/me", h.UpdateProfile)
			auth.POST("/profile/change-password", h.ChangePassword)

			// Address Book
			auth.GET("/addresses", h.GetMyAddresses)
			auth.POST("/addresses", h.CreateAddress)
			auth.PUT("/addresses/:id", h.UpdateAddress)
			auth.DELETE("/addresses/:id", h.DeleteAddress)

			// Cart
			auth.GET("/cart", h.GetCart)
			auth.POST("/cart/items", h.AddToCart)
			auth.PUT("/cart/items/:product_id", h.UpdateCartItem)
			auth.DELETE("/cart/items/:product_id", h.DeleteCartItem)
			auth.POST("/cart/clear", h.ClearCart)

			// Checkout & Orders
			auth.POST("/checkout", h.Checkout)
			auth.GET("/orders", h.GetMyOrders)
			auth.GET("/orders/:id", h.GetOrderDetails)
			auth.POST("/orders/:id/cancel", h.CancelOrder)
			auth.POST("/orders/:id/received", h.ConfirmReceived)
			auth.GET("/orders/:id/receipt", h.DownloadReceipt)
			auth.POST("/orders/ratings", h.SubmitProductRatings)

			// Notifications
			auth.GET("/notifications", h.GetMyNotifications)
			auth.GET("/notifications/unread-count", h.GetUnreadCount)
			auth.POST("/notifications/:id/read", h.MarkNotificationRead)
			auth.POST("/notifications/read-all", h.MarkAllNotificationsRead)
		}

		// --- Staff-Only Routes ---
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(h.DB))
		admin.Use(middleware.StaffMiddleware())
		{
			// Catalog Management
			admin.GET("/products", h.GetAdminProducts)
			admin.POST("/products", h.CreateProduct)
			admin.POST("/products/:id/stock", h.AddProductStock)
			admin.PUT("/products/:id", h.UpdateProduct)
			admin.DELETE("/products/:id", h.DeleteProduct)
			admin.POST("/categories", h.CreateCategory)
			admin.PUT("/categories/:id", h.UpdateCategory)
			admin.DELETE("/categories/:id", h.DeleteCategory)

			// Deal Management
			admin.GET("/deals", h.GetAllDeals)
			admin.POST("/deals", h.CreateDeal)
			admin.PUT("/deals/:id", h.UpdateDeal)
			admin.PATCH("/deals/:id/toggle", h.ToggleDealStatus)
			admin.DELETE("/deals/:id", h.DeleteDeal)
			admin.POST("/deals/reconcile-usage", h.ReconcileDealUsageHandler)

			// Order Management
			admin.GET("/orders", h.GetAllOrders)
			admin.GET("/orders/:id", h.GetAdminOrderDetails)
			admin.PUT("/orders/:id/status", h.UpdateOrderStatus)

			// Delivery Rates
			admin.GET("/delivery-fees", h.GetDeliveryFees)
			admin.POST("/delivery-fees", h.CreateDeliveryFee)
			admin.PUT("/delivery-fees/:id", h.UpdateDeliveryFee)
			admin.PATCH("/delivery-fees/:id/toggle", h.ToggleDeliveryFeeAvailability)
			admin.DELETE("/delivery-fees/:id", h.DeleteDeliveryFee)

			// Dashboard & Analytics
			admin.GET("/dashboard/metrics", h.GetDashboardMetrics)
			admin.GET("/dashboard/sales-overview", h.GetSalesOverview)
			admin.GET("/dashboard/sales-by-category", h.GetSalesByCategory)
			admin.GET("/dashboard/recent-orders", h.GetRecentOrders)
			admin.GET("/dashboard/top-products", h.GetTopProducts)
			admin.GET("/analytics", h.GetSalesAnalytics)
			admin.GET("/analytics/export.pdf", h.ExportSalesReportPDF)
		}
	}

	return router
}
