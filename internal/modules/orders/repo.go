package orders

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// DB returns the underlying database connection for direct queries.
func (r *Repo) DB() *gorm.DB { return r.db }

func (r *Repo) GetByID(ctx context.Context, id uint) (Order, error) {
	var o Order
	err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Order{}, ErrNotFound
	}
	return o, err
}

func (r *Repo) GetByNo(ctx context.Context, no string) (Order, error) {
	var o Order
	err := r.db.WithContext(ctx).First(&o, "no = ?", no).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Order{}, ErrNotFound
	}
	return o, err
}

// TotalByNo materializes the order's computed total from its line items.
// An order with no lines is reported as ErrLinesNotFound, never as zero.
func (r *Repo) TotalByNo(ctx context.Context, no string) (decimal.Decimal, error) {
	type row struct {
		Count int64           `gorm:"column:cnt"`
		Total decimal.Decimal `gorm:"column:total"`
	}
	var out row
	err := r.db.WithContext(ctx).
		Model(&OrderItem{}).
		Select("COUNT(*) AS cnt, COALESCE(SUM(line_total), 0) AS total").
		Where("order_no = ?", no).
		Scan(&out).Error
	if err != nil {
		return decimal.Zero, err
	}
	if out.Count == 0 {
		return decimal.Zero, ErrLinesNotFound
	}
	return out.Total, nil
}

// UpdateStatus moves the order forward with a status-guarded write; the guard
// keeps concurrent writers from replaying or skipping a transition.
func (r *Repo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, from, to Status) error {
	if !CanTransition(from, to) {
		return ErrInvalidTransition
	}
	if tx == nil {
		tx = r.db
	}

	now := time.Now()
	updates := map[string]any{
		"status":     to,
		"updated_at": now,
	}
	if to == StatusPaid {
		updates["paid_at"] = &now
	}

	res := tx.WithContext(ctx).
		Model(&Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvalidTransition
	}
	return nil
}

type ListByUserParams struct {
	UserID   uint
	Page     int
	PageSize int
	Status   string // optional filter
}

type ListByUserResult struct {
	Items []Order
	Total int64
}

func (r *Repo) ListByUser(ctx context.Context, in ListByUserParams) (ListByUserResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 20
	}

	q := r.db.WithContext(ctx).Model(&Order{}).Where("user_id = ?", in.UserID)
	if in.Status != "" {
		q = q.Where("status = ?", in.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return ListByUserResult{}, err
	}

	var items []Order
	if err := q.
		Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&items).Error; err != nil {
		return ListByUserResult{}, err
	}

	return ListByUserResult{Items: items, Total: total}, nil
}

func (r *Repo) GetWithItems(ctx context.Context, id uint) (Order, []OrderItem, error) {
	o, err := r.GetByID(ctx, id)
	if err != nil {
		return Order{}, nil, err
	}
	var items []OrderItem
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&items, "order_no = ?", o.No).Error; err != nil {
		return Order{}, nil, err
	}
	return o, items, nil
}
