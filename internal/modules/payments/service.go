package payments

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/binhminh2409/WebXeDapApi/internal/modules/orders"
	"github.com/binhminh2409/WebXeDapApi/internal/modules/users"
)

// Service drives the payment lifecycle against its order: create, confirm,
// status override, reads. It holds no state of its own; everything lives in
// the database and every write sequence runs in a single transaction.
type Service struct {
	db        *gorm.DB
	orderRepo *orders.Repo
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, orderRepo: orders.NewRepo(db)}
}

type CreateInput struct {
	UserID     uint
	OrderID    uint
	TotalPrice decimal.Decimal
}

// Create validates the claimed amount against the order's computed total and
// creates the payment, flipping the order to processing in the same
// transaction. A payment that already exists for the order is returned
// unchanged, without re-validating the (possibly stale) request; that makes
// the call safe to retry.
func (s *Service) Create(ctx context.Context, in CreateInput) (DTO, error) {
	if in.UserID == 0 || in.OrderID == 0 || !in.TotalPrice.IsPositive() {
		return DTO{}, ErrBadRequest
	}

	var out Payment

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The order row lock serializes check-then-create per order.
		var ord orders.Order
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&ord, "id = ?", in.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return orders.ErrNotFound
			}
			return err
		}

		// Idempotent path: the existing payment wins as-is.
		var existing Payment
		e := tx.WithContext(ctx).First(&existing, "order_id = ?", ord.ID).Error
		if e == nil {
			out = existing
			return nil
		}
		if !errors.Is(e, gorm.ErrRecordNotFound) {
			return e
		}

		var usr users.User
		if err := tx.WithContext(ctx).First(&usr, "id = ?", in.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return users.ErrNotFound
			}
			return err
		}

		total, err := lineTotalInTx(ctx, tx, ord.No)
		if err != nil {
			return err
		}

		// The one invariant that matters most: no payment is ever created
		// whose amount disagrees with the order's computed total.
		if !in.TotalPrice.Equal(total) {
			return ErrAmountMismatch
		}

		if ord.Status != orders.StatusCreated {
			return ErrOrderNotPayable
		}

		now := time.Now()
		p := Payment{
			UserID:     usr.ID,
			OrderID:    ord.ID,
			TotalPrice: total,
			Status:     StatusProcessing,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := tx.WithContext(ctx).Create(&p).Error; err != nil {
			if isDuplicateKey(err) {
				// A concurrent creator won the unique index on order_id;
				// return its payment instead of propagating the conflict.
				if err2 := tx.WithContext(ctx).First(&existing, "order_id = ?", ord.ID).Error; err2 == nil {
					out = existing
					return nil
				}
				return err
			}
			return err
		}

		// Joint transition: payment and order move together or not at all.
		if err := s.orderRepo.UpdateStatus(ctx, tx, ord.ID, ord.Status, orders.StatusProcessing); err != nil {
			return err
		}

		out = p
		return nil
	})
	if err != nil {
		return DTO{}, err
	}
	return toDTO(out), nil
}

// Confirm moves the linked order to paid and the payment to confirmed in one
// transaction. Confirming an already confirmed payment is a no-op that
// returns the terminal state.
func (s *Service) Confirm(ctx context.Context, paymentID uint) (DTO, error) {
	var out Payment

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p Payment
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&p, "id = ?", paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}

		if p.Status == StatusConfirmed {
			out = p
			return nil
		}
		if p.Status != StatusProcessing {
			return ErrNotConfirmable
		}

		var ord orders.Order
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&ord, "id = ?", p.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return orders.ErrNotFound
			}
			return err
		}

		if err := s.orderRepo.UpdateStatus(ctx, tx, ord.ID, ord.Status, orders.StatusPaid); err != nil {
			return err
		}

		now := time.Now()
		if err := tx.WithContext(ctx).Model(&Payment{}).
			Where("id = ?", p.ID).
			Updates(map[string]any{
				"status":     StatusConfirmed,
				"updated_at": now,
			}).Error; err != nil {
			return err
		}

		p.Status = StatusConfirmed
		p.UpdatedAt = now
		out = p
		return nil
	})
	if err != nil {
		return DTO{}, err
	}
	return toDTO(out), nil
}

// UpdateStatus is the administrative override: it parses the status name and
// persists it on the payment alone. The linked order is intentionally left
// untouched; callers that need order/payment synchronization use Confirm.
func (s *Service) UpdateStatus(ctx context.Context, paymentID uint, statusName string) (DTO, error) {
	st, err := ParseStatus(statusName)
	if err != nil {
		return DTO{}, err
	}

	var out Payment

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p Payment
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&p, "id = ?", paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}

		now := time.Now()
		if err := tx.WithContext(ctx).Model(&Payment{}).
			Where("id = ?", p.ID).
			Updates(map[string]any{
				"status":     st,
				"updated_at": now,
			}).Error; err != nil {
			return err
		}

		p.Status = st
		p.UpdatedAt = now
		out = p
		return nil
	})
	if err != nil {
		return DTO{}, err
	}
	return toDTO(out), nil
}

func (s *Service) FindAll(ctx context.Context) ([]DTO, error) {
	var items []Payment
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return toDTOs(items), nil
}

func (s *Service) FindByUser(ctx context.Context, userID uint) ([]DTO, error) {
	var items []Payment
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return toDTOs(items), nil
}

// lineTotalInTx resolves the order's computed total by its reference number,
// inside the caller's transaction.
func lineTotalInTx(ctx context.Context, tx *gorm.DB, orderNo string) (decimal.Decimal, error) {
	type row struct {
		Count int64           `gorm:"column:cnt"`
		Total decimal.Decimal `gorm:"column:total"`
	}
	var out row
	err := tx.WithContext(ctx).
		Model(&orders.OrderItem{}).
		Select("COUNT(*) AS cnt, COALESCE(SUM(line_total), 0) AS total").
		Where("order_no = ?", orderNo).
		Scan(&out).Error
	if err != nil {
		return decimal.Zero, err
	}
	if out.Count == 0 {
		return decimal.Zero, orders.ErrLinesNotFound
	}
	return out.Total, nil
}

func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	// sqlite (tests) reports constraint violations as plain errors.
	return err != nil && errors.Is(err, gorm.ErrDuplicatedKey)
}
