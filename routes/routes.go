package routes

import (
	"os"
	"strings"

	"rentacar-backend/config"
	"rentacar-backend/controllers"
	"rentacar-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

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
		// Vehicle routes
		vehicles := api.Group("/vehicles")
		{
			vehicles.POST("", controllers.CreateVehicle)
			vehicles.GET("", controllers.GetVehicles)
			vehicles.GET("/:id", controllers.GetVehicle)
			vehicles.PUT("/:id", controllers.UpdateVehicle)
			vehicles.DELETE("/:id", controllers.DeleteVehicle)
		}

		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
		}

		// Reservation routes
		reservations := api.Group("/reservations")
		{
			reservations.POST("", controllers.CreateReservation)
			reservations.GET("", controllers.GetReservations)
			reservations.GET("/:id", controllers.GetReservation)
			reservations.PUT("/:id", controllers.UpdateReservation)
			reservations.DELETE("/:id", controllers.DeleteReservation)
		}

		// Rental routes
		rentals := api.Group("/rentals")
		{
			rentals.POST("", controllers.CreateRental)
			rentals.GET("", controllers.GetRentals)
			rentals.GET("/:id", controllers.GetRental)
			rentals.PUT("/:id", controllers.UpdateRental)
			rentals.DELETE("/:id", controllers.DeleteRental)

			rentals.POST("/:id/return", controllers.ReturnRental)
			rentals.POST("/:id/complete", controllers.CompleteRental)
			rentals.POST("/:id/cancel", controllers.CancelRental)

			rentals.POST("/:id/payments", controllers.CreatePayment)
			rentals.GET("/:id/payments", controllers.GetPayments)
		}

		// Payment routes
		payments := api.Group("/payments")
		{
			payments.PUT("/:id", controllers.UpdatePayment)
			payments.DELETE("/:id", controllers.DeletePayment)
		}

		//Reports routes
		reportController := controllers.ReportController{}
		api.GET("/reports", reportController.GetReportAnalytics)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)

		// Settings routes
		profile := api.Group("/profile")
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("", controllers.UpdateProfile)
			profile.PUT("/password", controllers.ChangePassword)
			profile.PUT("/notifications", controllers.UpdateNotificationSettings)
		}
	}

	return r
}
