package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/casafernando/comanda-backend/config"
	"github.com/casafernando/comanda-backend/middlewares"
	"github.com/casafernando/comanda-backend/models"
	"github.com/casafernando/comanda-backend/notify"
	"github.com/casafernando/comanda-backend/router"
	"github.com/casafernando/comanda-backend/services"
	"github.com/casafernando/comanda-backend/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}
	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	hub := notify.NewHub()

	// Nudge connected staff while attention requests sit unhandled
	monitor := services.NewAttentionMonitor(db, hub)
	monitor.Start()
	defer monitor.Stop()

	// 50 requests per second per IP
	rateLimiter := middlewares.NewRateLimiter(50, 1)

	r := router.SetupRouter(db, hub)
	r.Use(rateLimiter.RateLimit())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.Customer{},
		&models.MenuCategory{},
		&models.Dish{},
		&models.Order{},
		&models.OrderItem{},
		&models.AttentionRequest{},
		&models.OrderCounter{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
