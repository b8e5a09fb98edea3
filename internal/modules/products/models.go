package products

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusAvailable    = "available"
	StatusOutOfStock   = "out_of_stock"
	StatusDiscontinued = "discontinued"
)

type Category struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(128);not null;uniqueIndex:ux_categories_name" json:"name"`
	Description string `gorm:"type:varchar(255)" json:"description"`
	// Grouping label used for curated collection pages.
	Collection string    `gorm:"type:varchar(128)" json:"collection"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (Category) TableName() string { return "categories" }

type Brand struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(128);not null;uniqueIndex:ux_brands_name" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Brand) TableName() string { return "brands" }

type Product struct {
	ID       uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string          `gorm:"type:varchar(255);not null;index:ix_products_name" json:"name"`
	ImageKey string          `gorm:"type:varchar(255)" json:"image_key"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	// Discounted price; zero means no discount is running.
	PriceHasDecreased decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"price_has_decreased"`
	Description       string          `gorm:"type:text" json:"description"`
	Quantity          int             `gorm:"not null;default:0" json:"quantity"`
	Color             string          `gorm:"type:varchar(64)" json:"color"`
	Size              string          `gorm:"type:varchar(32)" json:"size"`
	Status            string          `gorm:"type:varchar(32);not null" json:"status"`

	CategoryID   uint   `gorm:"not null;index:ix_products_category_id" json:"category_id"`
	CategoryName string `gorm:"type:varchar(128);not null" json:"category_name"`
	BrandID      uint   `gorm:"not null;index:ix_products_brand_id" json:"brand_id"`
	BrandName    string `gorm:"type:varchar(128);not null" json:"brand_name"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Product) TableName() string { return "products" }

type Stock struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint      `gorm:"not null;uniqueIndex:ux_stocks_product_id" json:"product_id"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Stock) TableName() string { return "stocks" }
