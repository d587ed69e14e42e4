package main

import (
	"fmt"
	"log"
	"os"

	"rentacar-backend/config"
	"rentacar-backend/models"
	"rentacar-backend/routes"
	"rentacar-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Vehicle{},
		&models.Reservation{},
		&models.Rental{},
		&models.Payment{},
		&models.NotificationLog{},
	)
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Schedulers are constructed and injected explicitly, never global
	overdue := services.NewOverdueService(config.DB)
	overdue.StartScheduler()
	defer overdue.Stop()

	backup := services.NewBackupService(config.DB)
	backup.StartScheduler()
	defer backup.Stop()

	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
