package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/binhminh2409/WebXeDapApi/internal/modules/products"
)

// Seeds a small demo catalog. Safe to re-run; existing rows are reused.
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

	categories := []products.Category{
		{Name: "Mountain Bikes", Collection: "trail"},
		{Name: "Road Bikes", Collection: "race"},
		{Name: "City Bikes", Collection: "urban"},
		{Name: "Accessories", Collection: "gear"},
	}
	for i := range categories {
		if err := db.Where("name = ?", categories[i].Name).FirstOrCreate(&categories[i]).Error; err != nil {
			log.Fatalf("Failed to seed category %s: %v", categories[i].Name, err)
		}
	}

	brands := []products.Brand{
		{Name: "Giant"},
		{Name: "Trek"},
		{Name: "Specialized"},
	}
	for i := range brands {
		if err := db.Where("name = ?", brands[i].Name).FirstOrCreate(&brands[i]).Error; err != nil {
			log.Fatalf("Failed to seed brand %s: %v", brands[i].Name, err)
		}
	}

	items := []struct {
		name     string
		price    string
		category int
		brand    int
		qty      int
	}{
		{"Talon 29", "749.00", 0, 0, 12},
		{"Marlin 7", "899.99", 0, 1, 8},
		{"Allez Sprint", "1499.00", 1, 2, 5},
		{"Domane AL 2", "1099.50", 1, 1, 6},
		{"Escape 3", "529.00", 2, 0, 20},
	}

	for _, it := range items {
		p := products.Product{
			Name:         it.name,
			Price:        decimal.RequireFromString(it.price),
			Quantity:     it.qty,
			Status:       products.StatusAvailable,
			CategoryID:   categories[it.category].ID,
			CategoryName: categories[it.category].Name,
			BrandID:      brands[it.brand].ID,
			BrandName:    brands[it.brand].Name,
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("name = ?", p.Name).FirstOrCreate(&p).Error; err != nil {
				return err
			}
			return tx.Where("product_id = ?", p.ID).
				FirstOrCreate(&products.Stock{ProductID: p.ID, Quantity: it.qty}).Error
		})
		if err != nil {
			log.Fatalf("Failed to seed product %s: %v", it.name, err)
		}
	}

	fmt.Println("✓ catalog seeded successfully")
}
