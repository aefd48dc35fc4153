package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/econursery/nursery-app/utils"
)

// InitDB opens the database selected by DB_DRIVER. MySQL is the
// production default; sqlite is used for local development.
func InitDB() (*gorm.DB, error) {
	driver := os.Getenv("DB_DRIVER")

	if driver == "sqlite" {
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "nursery.db"
		}
		db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
		if err != nil {
			utils.ErrorLogger.Printf("failed to open sqlite database: %v", err)
			return nil, err
		}
		utils.InfoLogger.Printf("connected to sqlite database at %s", path)
		return db, nil
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASS"),
		getEnv("DB_HOST", "127.0.0.1"),
		getEnv("DB_PORT", "3306"),
		os.Getenv("DB_NAME"),
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		utils.ErrorLogger.Printf("failed to connect to mysql database: %v", err)
		return nil, err
	}

	utils.InfoLogger.Println("connected to mysql database")
	return db, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
