package orders

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/binhminh2409/WebXeDapApi/internal/modules/products"
)

type Service struct {
	db   *gorm.DB
	repo *Repo
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, repo: NewRepo(db)}
}

func (s *Service) Repo() *Repo { return s.repo }

type CartLine struct {
	ProductID uint
	Quantity  int
}

type PlaceInput struct {
	UserID      uint
	ShipName    string
	ShipAddress string
	ShipEmail   string
	ShipPhone   string
	Cart        []CartLine
}

// Place creates the order and its line items in one transaction, pricing each
// line from the current catalog price and deducting stock under row locks.
func (s *Service) Place(ctx context.Context, in PlaceInput) (Order, []OrderItem, error) {
	if in.UserID == 0 || in.ShipName == "" || in.ShipAddress == "" {
		return Order{}, nil, ErrBadRequest
	}
	if len(in.Cart) == 0 {
		return Order{}, nil, ErrCartEmpty
	}

	var (
		order Order
		items []OrderItem
	)

	err := withTxRetry(ctx, s.db, 3, func(tx *gorm.DB) error {
		items = items[:0]

		now := time.Now()
		no := newOrderNo()

		stock := make([]StockLine, 0, len(in.Cart))
		for _, line := range in.Cart {
			qty := line.Quantity
			if qty < 1 {
				qty = 1
			}

			var p products.Product
			if err := tx.WithContext(ctx).First(&p, "id = ?", line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return products.ErrNotFound
				}
				return err
			}

			unit := p.Price
			if p.PriceHasDecreased.IsPositive() {
				unit = p.PriceHasDecreased
			}

			items = append(items, OrderItem{
				OrderNo:     no,
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    qty,
				UnitPrice:   unit,
				LineTotal:   unit.Mul(decimal.NewFromInt(int64(qty))),
				CreatedAt:   now,
			})
			stock = append(stock, StockLine{ProductID: p.ID, Qty: qty})
		}

		if err := DeductStockInTx(ctx, tx, stock); err != nil {
			return err
		}

		order = Order{
			No:          no,
			UserID:      in.UserID,
			ShipName:    in.ShipName,
			ShipAddress: in.ShipAddress,
			ShipEmail:   in.ShipEmail,
			ShipPhone:   in.ShipPhone,
			Status:      StatusCreated,
			Guid:        uuid.NewString(),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.WithContext(ctx).Create(&order).Error; err != nil {
			return err
		}

		for i := range items {
			if err := tx.WithContext(ctx).Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Order{}, nil, err
	}
	return order, items, nil
}

func newOrderNo() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "ORD-" + strings.ToUpper(raw[:12])
}
