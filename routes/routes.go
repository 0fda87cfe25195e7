package routes

import (
	"backend/controllers"
	"backend/handlers"
	"backend/middleware"

	"github.com/gin-gonic/gin"
)

func InitializeRoutes(router *gin.Engine) {
	router.POST("/login", controllers.Login)
	router.POST("/logout", controllers.Logout)
	router.POST("/forgot-password", controllers.ForgotPassword)
	router.POST("/reset-password", controllers.ResetPassword)

	// Operators and managers share the day-to-day selling surface.
	ops := router.Group("/ops")
	ops.Use(middleware.AuthMiddleware("operator", "manager"))
	{
		ops.GET("/dashboard", controllers.GetDashboard)
		ops.GET("/briefing", controllers.GetBriefing)
		ops.GET("/forecast", controllers.GetForecast)

		ops.GET("/batches", controllers.GetBatches)
		ops.GET("/batches/:id", controllers.GetBatch)

		ops.GET("/sales", controllers.GetSales)
		ops.POST("/sales", controllers.ProcessSale)

		ops.GET("/customers", handlers.GetCustomers)
		ops.GET("/customers/:id", handlers.GetCustomer)
		ops.GET("/customers/:id/history", handlers.GetCustomerHistory)
		ops.POST("/customers", handlers.CreateCustomer)
		ops.PUT("/customers/:id", handlers.UpdateCustomer)
		ops.POST("/customers/:id/avatar", handlers.UploadCustomerAvatar)

		ops.GET("/expenses", controllers.GetExpenses)
		ops.POST("/expenses", controllers.CreateExpense)

		ops.GET("/shift", controllers.GetShift)
		ops.POST("/shift/open", controllers.OpenShift)
		ops.POST("/shift/count", controllers.BeginCount)
		ops.POST("/shift/count/submit", controllers.SubmitCount)
		ops.POST("/shift/close", controllers.CloseShift)
		ops.POST("/shift/end", controllers.EndShift)

		ops.GET("/missions", controllers.GetMissions)
		ops.POST("/missions/evaluate", controllers.EvaluateMissions)
		ops.POST("/missions/:id/claim", controllers.ClaimMission)
	}

	// Destructive and administrative operations are manager-only.
	manager := router.Group("/manager")
	manager.Use(middleware.AuthMiddleware("manager"))
	{
		manager.POST("/register", controllers.Register)

		manager.POST("/batches", controllers.CreateBatch)
		manager.PUT("/batches/:id", controllers.UpdateBatch)
		manager.POST("/batches/:id/adjustments", controllers.RecordAdjustment)
		manager.POST("/batches/:id/expenses", controllers.AddBatchExpense)
		manager.DELETE("/batches/:id/expenses/:expenseId", controllers.RemoveBatchExpense)
		manager.DELETE("/batches/:id", controllers.DeleteBatch)

		manager.DELETE("/customers/:id", handlers.DeleteCustomer)
		manager.DELETE("/expenses/:id", controllers.DeleteExpense)

		manager.POST("/shift/reopen", controllers.ReopenShift)

		manager.POST("/missions", controllers.CreateMission)

		manager.GET("/backup/export", controllers.ExportBackup)
		manager.POST("/backup/import", controllers.ImportBackup)
		manager.POST("/backup/email", controllers.EmailBackup)
	}
}
