package payments

import (
	"time"

	"github.com/shopspring/decimal"
)

// DTO is the external representation of a payment.
type DTO struct {
	ID         uint            `json:"id"`
	UserID     uint            `json:"user_id"`
	OrderID    uint            `json:"order_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func toDTO(p Payment) DTO {
	return DTO{
		ID:         p.ID,
		UserID:     p.UserID,
		OrderID:    p.OrderID,
		TotalPrice: p.TotalPrice,
		Status:     string(p.Status),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func toDTOs(items []Payment) []DTO {
	out := make([]DTO, 0, len(items))
	for _, p := range items {
		out = append(out, toDTO(p))
	}
	return out
}
