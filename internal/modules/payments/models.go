package payments

import (
	"time"

	"github.com/shopspring/decimal"
)

type Payment struct {
	ID     uint `gorm:"primaryKey;autoIncrement"`
	UserID uint `gorm:"not null;index:ix_payments_user_id"`
	// One payment per order; the unique index is the store-level backstop for
	// concurrent create requests racing past the in-transaction check.
	OrderID    uint            `gorm:"not null;uniqueIndex:ux_payments_order_id"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status     Status          `gorm:"type:varchar(32);not null"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`
}

func (Payment) TableName() string { return "payments" }
