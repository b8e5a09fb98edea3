package products

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) List(ctx context.Context, limit, offset int) ([]Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 24
	}
	var items []Product
	err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, err
}

func (r *Repo) Get(ctx context.Context, id uint) (Product, error) {
	var p Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Product{}, ErrNotFound
	}
	return p, err
}

// SearchKey matches the keyword against product, brand and category names.
// One row per product name; the oldest row wins, mirroring how listing pages
// collapse color/size duplicates.
func (r *Repo) SearchKey(ctx context.Context, keyword string) ([]Product, error) {
	kw := "%" + strings.TrimSpace(keyword) + "%"
	var items []Product
	err := r.db.WithContext(ctx).
		Where("name LIKE ? OR brand_name LIKE ? OR category_name LIKE ?", kw, kw, kw).
		Order("name ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return dedupeByName(items), nil
}

func (r *Repo) ByBrand(ctx context.Context, keyword string) ([]Product, error) {
	kw := "%" + strings.ToLower(strings.TrimSpace(keyword)) + "%"
	var items []Product
	err := r.db.WithContext(ctx).
		Where("LOWER(brand_name) LIKE ?", kw).
		Order("name ASC, id ASC").
		Find(&items).Error
	return items, err
}

func (r *Repo) ByCategory(ctx context.Context, keyword string, limit int) ([]Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 8
	}
	kw := "%" + strings.ToLower(strings.TrimSpace(keyword)) + "%"
	var items []Product
	err := r.db.WithContext(ctx).
		Where("LOWER(category_name) LIKE ?", kw).
		Order("name ASC, id ASC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *Repo) ByCollection(ctx context.Context, collection string) ([]Product, error) {
	var cat Category
	err := r.db.WithContext(ctx).First(&cat, "collection = ?", collection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}

	var items []Product
	err = r.db.WithContext(ctx).
		Where("category_id = ?", cat.ID).
		Order("name ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return dedupeByName(items), nil
}

type PriceRangeParams struct {
	Category string
	Min      decimal.Decimal
	Max      decimal.Decimal
	Brand    string // optional
}

func (r *Repo) ByPriceRange(ctx context.Context, in PriceRangeParams) ([]Product, error) {
	q := r.db.WithContext(ctx).
		Where("category_name = ?", in.Category).
		Where("price >= ? AND price <= ?", in.Min, in.Max)
	if b := strings.TrimSpace(in.Brand); b != "" {
		q = q.Where("LOWER(brand_name) = ?", strings.ToLower(b))
	}

	var items []Product
	if err := q.Order("name ASC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return dedupeByName(items), nil
}

func (r *Repo) Discounted(ctx context.Context) ([]Product, error) {
	var items []Product
	err := r.db.WithContext(ctx).
		Where("price_has_decreased > 0").
		Order("updated_at DESC").
		Find(&items).Error
	return items, err
}

func dedupeByName(items []Product) []Product {
	seen := make(map[string]struct{}, len(items))
	out := make([]Product, 0, len(items))
	for _, p := range items {
		if _, ok := seen[p.Name]; ok {
			continue
		}
		seen[p.Name] = struct{}{}
		out = append(out, p)
	}
	return out
}
