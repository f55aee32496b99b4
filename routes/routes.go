package routes

import (
	"os"
	"strings"

	"salonflow-backend/config"
	"salonflow-backend/controllers"
	"salonflow-backend/services"
	"salonflow-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	bookings := controllers.NewReservationController(
		services.NewBookingService(config.DB, config.Logger))

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
		}

		// Service routes
		svc := api.Group("/services")
		{
			svc.POST("", controllers.CreateService)
			svc.GET("", controllers.GetServices)
			svc.GET("/:id", controllers.GetService)
			svc.PUT("/:id", controllers.UpdateService)
			svc.DELETE("/:id", controllers.DeleteService)
		}

		// Staff routes, including per-weekday working hours
		staff := api.Group("/staff")
		{
			staff.POST("", controllers.CreateStaff)
			staff.GET("", controllers.GetStaff)
			staff.GET("/:id", controllers.GetStaffMember)
			staff.PUT("/:id", controllers.UpdateStaff)
			staff.DELETE("/:id", controllers.DeleteStaff)
			staff.GET("/:id/hours", controllers.GetWorkingHours)
			staff.PUT("/:id/hours", controllers.UpdateWorkingHours)
		}

		// Reservation routes
		reservations := api.Group("/reservations")
		{
			reservations.POST("", bookings.Create)
			reservations.GET("", bookings.List)
			reservations.GET("/availability", bookings.Availability)
			reservations.POST("/bulk-status", bookings.BulkSetStatus)
			reservations.POST("/bulk-delete", bookings.BulkDelete)
			reservations.GET("/:id", bookings.Get)
			reservations.PUT("/:id", bookings.Update)
			reservations.PATCH("/:id/status", bookings.SetStatus)
			reservations.DELETE("/:id", bookings.Delete)
		}

		// Reminder template routes
		reminders := api.Group("/reminder-templates")
		{
			reminders.POST("", controllers.CreateReminderTemplate)
			reminders.GET("", controllers.GetReminderTemplates)
			reminders.GET("/:id", controllers.GetReminderTemplate)
			reminders.PUT("/:id", controllers.UpdateReminderTemplate)
			reminders.DELETE("/:id", controllers.DeleteReminderTemplate)
		}

		// Reports routes
		reportController := controllers.ReportController{}
		api.GET("/reports", reportController.GetReportAnalytics)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)

		// Settings routes
		profile := api.Group("/profile")
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("", controllers.UpdateProfile)
			profile.PUT("/notifications", controllers.UpdateNotificationSettings)
		}
	}

	return r
}

func allowedOrigins() []string {
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		return strings.Split(env, ",")
	}
	return []string{"http://localhost:3000"}
}
