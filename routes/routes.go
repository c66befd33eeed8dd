package routes

import (
	"breakage-exchange-api/controllers"
	"breakage-exchange-api/middleware"
	"breakage-exchange-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/register", controllers.Register)
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Breakage/Exchange API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Auth management
			protected.POST("/logout", controllers.Logout)

			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Product catalog (read for everyone, writes admin only)
			products := protected.Group("/products")
			{
				products.GET("", controllers.GetProducts)
				products.GET("/:id", controllers.GetProduct)
				products.POST("", middleware.RequireRole(models.RoleAdmin), controllers.CreateProduct)
				products.PUT("/:id", middleware.RequireRole(models.RoleAdmin), controllers.UpdateProduct)
				products.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteProduct)
			}

			// Breakage/exchange submissions
			submissions := protected.Group("/submissions")
			{
				submissions.GET("", controllers.GetSubmissions)
				submissions.GET("/:id", controllers.GetSubmission)
				submissions.POST("", controllers.CreateSubmission)
				submissions.PUT("/:id", controllers.UpdateSubmission)
				submissions.DELETE("/:id", controllers.DeleteSubmission)

				// Items (owner, while pending)
				submissions.POST("/:id/items", controllers.AddItem)
				submissions.PUT("/:id/items/:item_id", controllers.UpdateItem)
				submissions.DELETE("/:id/items/:item_id", controllers.DeleteItem)

				// Photos
				submissions.POST("/:id/items/:item_id/photos", controllers.UploadPhoto)
			}

			protected.GET("/photos/:photo_id/file", controllers.GetPhotoFile)
			protected.DELETE("/photos/:photo_id", controllers.DeletePhoto)

			// Dashboard
			protected.GET("/dashboard/stats", controllers.GetDashboardStats)

			// Admin area
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/submissions", controllers.AdminListSubmissions)
				admin.POST("/submissions/:id/approve", controllers.ApproveSubmission)
				admin.POST("/submissions/:id/reject", controllers.RejectSubmission)

				admin.GET("/users", controllers.AdminListUsers)
				admin.POST("/users", controllers.AdminCreateUser)
				admin.PUT("/users/:id", controllers.AdminUpdateUser)
				admin.DELETE("/users/:id", controllers.AdminDeleteUser)

				admin.GET("/export/csv", controllers.ExportCSV)
				admin.GET("/export/photos", controllers.ExportPhotos)

				admin.GET("/logs", controllers.AdminListAuditLogs)
			}
		}
	}
}
