package routes

import (
	"github.com/Kumaravel655/loan-backend/controllers"
	"github.com/Kumaravel655/loan-backend/metrics"
	"github.com/Kumaravel655/loan-backend/middlewares"
	"github.com/Kumaravel655/loan-backend/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Loan ledger API is running"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api", middlewares.AuthMiddleware())
	{
		// master_admin and staff only
		admin := middlewares.RequireRole(models.RoleMasterAdmin, models.RoleStaff)

		users := api.Group("/users", admin)
		{
			users.GET("/", controllers.GetAllUsers)
			users.GET("/:id", controllers.GetUserByID)
			users.POST("/", controllers.CreateUser)
			users.PUT("/:id", controllers.UpdateUser)
			users.DELETE("/:id", controllers.DeleteUser)
		}

		customers := api.Group("/customers")
		{
			customers.GET("/", controllers.GetAllCustomer)
			customers.GET("/:id", controllers.GetCustomerByID)
			customers.POST("/", admin, controllers.CreateCustomer)
			customers.PUT("/:id", admin, controllers.UpdateCustomer)
			customers.DELETE("/:id", admin, controllers.DeleteCustomer)
			customers.POST("/:id/documents", admin, controllers.UploadCustomerDocument)
		}

		loanTypes := api.Group("/loan-types")
		{
			loanTypes.GET("/", controllers.GetAllLoanTypes)
			loanTypes.GET("/:id", controllers.GetLoanTypeByID)
			loanTypes.POST("/", admin, controllers.CreateLoanType)
			loanTypes.PUT("/:id", admin, controllers.UpdateLoanType)
			loanTypes.DELETE("/:id", admin, controllers.DeleteLoanType)
		}

		loans := api.Group("/loans")
		{
			loans.GET("/", controllers.GetAllLoans)
			loans.GET("/preview", controllers.PreviewSchedule)
			loans.GET("/:id", controllers.GetLoanByID)
			loans.POST("/", admin, controllers.CreateLoan)
			loans.DELETE("/:id", admin, controllers.DeleteLoan)
			loans.POST("/:id/regenerate", admin, controllers.RegenerateSchedule)
		}

		schedules := api.Group("/loan-schedules")
		{
			schedules.GET("/", controllers.GetAllSchedules)
			schedules.GET("/:loan_id", controllers.GetSchedulesByLoan)
			schedules.PUT("/item/:id", admin, controllers.UpdateScheduleItem)
			schedules.DELETE("/item/:id", admin, controllers.DeleteScheduleItem)
			schedules.POST("/item/:id/assign", admin, controllers.AssignScheduleItem)
		}

		// collection agents record payments here
		dues := api.Group("/loan-dues")
		{
			dues.GET("/", controllers.GetAllDues)
			dues.GET("/:id", controllers.GetDueByID)
			dues.POST("/:id/pay", controllers.PayDue)
			dues.POST("/:id/skip", controllers.SkipDue)
		}

		collections := api.Group("/daily-collections")
		{
			collections.GET("/", controllers.GetAllDailyCollections)
			collections.GET("/:id", controllers.GetDailyCollectionByID)
			collections.POST("/compute", controllers.ComputeDailyCollection)
			collections.POST("/", admin, controllers.CreateDailyCollection)
			collections.PUT("/:id", admin, controllers.UpdateDailyCollection)
			collections.DELETE("/:id", admin, controllers.DeleteDailyCollection)
		}

		attendance := api.Group("/attendance")
		{
			attendance.POST("/check-in", controllers.CheckIn)
			attendance.POST("/check-out", controllers.CheckOut)
			attendance.GET("/", admin, controllers.GetAllAttendance)
			attendance.GET("/:id", admin, controllers.GetAttendanceByID)
			attendance.POST("/", admin, controllers.CreateAttendance)
			attendance.PUT("/:id", admin, controllers.UpdateAttendance)
			attendance.DELETE("/:id", admin, controllers.DeleteAttendance)
		}

		notifications := api.Group("/notifications")
		{
			notifications.GET("/", controllers.GetAllNotifications)
			notifications.GET("/:id", controllers.GetNotificationByID)
			notifications.POST("/:id/read", controllers.MarkNotificationRead)
			notifications.POST("/", admin, controllers.CreateNotification)
			notifications.PUT("/:id", admin, controllers.UpdateNotification)
			notifications.DELETE("/:id", admin, controllers.DeleteNotification)
		}

		reports := api.Group("/reports", admin)
		{
			reports.GET("/loan-summary", controllers.LoanSummary)
		}
	}
}
