package main

import (
	"log"
	"os"

	"salonflow-backend/config"
	"salonflow-backend/models"
	"salonflow-backend/routes"
	"salonflow-backend/services"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.InitLogger()
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Salon{},
		&models.User{},
		&models.Customer{},
		&models.Service{},
		&models.Staff{},
		&models.StaffWorkingHours{},
		&models.Reservation{},
		&models.ReservationItem{},
		&models.ReminderTemplate{},
		&models.ReminderLog{},
	)
}

func main() {
	defer config.Logger.Sync()

	reminders := services.NewReminderService(config.DB, config.Logger)
	if _, err := reminders.StartScheduler(); err != nil {
		config.Logger.Fatal("failed to start reminder scheduler", zap.Error(err))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := routes.SetupRouter()
	config.Logger.Info("server listening", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		config.Logger.Fatal("server exited", zap.Error(err))
	}
}
