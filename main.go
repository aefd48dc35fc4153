package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/econursery/nursery-app/config"
	"github.com/econursery/nursery-app/database"
	"github.com/econursery/nursery-app/middlewares"
	"github.com/econursery/nursery-app/models"
	"github.com/econursery/nursery-app/router"
	"github.com/econursery/nursery-app/services"
	"github.com/econursery/nursery-app/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}
	utils.InitLogger()
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Plant{},
		&models.Ingredient{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Wishlist{},
		&models.Review{},
		&models.Notification{},
	)
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("database init failed: %v", err)
	}
	utils.InitDB(db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := autoMigrate(db); err != nil {
		utils.ErrorLogger.Fatalf("migration failed: %v", err)
	}

	if os.Getenv("SEED_DATA") == "true" {
		if err := database.Seed(db); err != nil {
			utils.ErrorLogger.Fatalf("seeding failed: %v", err)
		}
	}

	monitor := services.NewStockMonitor(db)
	monitor.Start()
	defer monitor.Stop()

	r := router.SetupRouter(db)
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.ErrorLogger.Fatalf("trusted proxies: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	utils.InfoLogger.Printf("nursery app listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatalf("server stopped: %v", err)
	}
}
