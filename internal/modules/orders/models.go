package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID uint `gorm:"primaryKey;autoIncrement"`
	// Business reference number; immutable once assigned, joins to order items.
	No     string `gorm:"type:varchar(32);not null;uniqueIndex:ux_orders_no"`
	UserID uint   `gorm:"not null;index:ix_orders_user_id"`

	ShipName    string `gorm:"type:varchar(128);not null"`
	ShipAddress string `gorm:"type:varchar(255);not null"`
	ShipEmail   string `gorm:"type:varchar(255);not null"`
	ShipPhone   string `gorm:"type:varchar(32);not null"`

	Status Status `gorm:"type:varchar(32);not null"`
	// Correlation token handed to external callers.
	Guid string `gorm:"type:char(36);not null"`

	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
	PaidAt    *time.Time `gorm:""`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID uint `gorm:"primaryKey;autoIncrement"`
	// Joined to the order by business reference, not by internal id.
	OrderNo     string          `gorm:"type:varchar(32);not null;index:ix_order_items_order_no"`
	ProductID   uint            `gorm:"not null;index:ix_order_items_product_id"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

func (OrderItem) TableName() string { return "order_items" }
