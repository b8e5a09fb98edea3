package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/binhminh2409/WebXeDapApi/internal/modules/comments"
	"github.com/binhminh2409/WebXeDapApi/internal/modules/orders"
	"github.com/binhminh2409/WebXeDapApi/internal/modules/payments"
	"github.com/binhminh2409/WebXeDapApi/internal/modules/products"
	"github.com/binhminh2409/WebXeDapApi/internal/modules/users"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&users.User{},
		&products.Category{},
		&products.Brand{},
		&products.Product{},
		&products.Stock{},
		&comments.Comment{},
		&orders.Order{},
		&orders.OrderItem{},
		&payments.Payment{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate tables: %v", err)
	}

	log.Println("✓ all tables migrated successfully")
}
