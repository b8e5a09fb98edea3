package products

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/binhminh2409/WebXeDapApi/internal/storage"
)

const imageCategory = "Product"

type Service struct {
	db    *gorm.DB
	repo  *Repo
	store storage.Storage
}

func NewService(db *gorm.DB, store storage.Storage) *Service {
	return &Service{db: db, repo: NewRepo(db), store: store}
}

type CreateInput struct {
	Name              string
	Price             decimal.Decimal
	PriceHasDecreased decimal.Decimal
	Description       string
	Quantity          int
	Color             string
	Size              string
	CategoryID        uint
	BrandID           uint

	Image         io.Reader
	ImageFilename string
	ImageType     string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Product, error) {
	if in.Image == nil {
		return Product{}, ErrImageRequired
	}

	var cat Category
	if err := s.db.WithContext(ctx).First(&cat, "id = ?", in.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Product{}, ErrCategoryNotFound
		}
		return Product{}, err
	}
	var brand Brand
	if err := s.db.WithContext(ctx).First(&brand, "id = ?", in.BrandID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Product{}, ErrBrandNotFound
		}
		return Product{}, err
	}

	put, err := s.store.Put(ctx, in.Image, storage.PutInput{
		Category:    imageCategory,
		Filename:    in.ImageFilename,
		ContentType: in.ImageType,
	})
	if err != nil {
		return Product{}, err
	}

	now := time.Now()
	p := Product{
		Name:              in.Name,
		ImageKey:          put.Key,
		Price:             in.Price,
		PriceHasDecreased: in.PriceHasDecreased,
		Description:       in.Description,
		Quantity:          in.Quantity,
		Color:             in.Color,
		Size:              in.Size,
		Status:            StatusAvailable,
		CategoryID:        cat.ID,
		CategoryName:      cat.Name,
		BrandID:           brand.ID,
		BrandName:         brand.Name,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		stock := Stock{ProductID: p.ID, Quantity: in.Quantity, UpdatedAt: now}
		return tx.Create(&stock).Error
	})
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

type UpdateInput struct {
	Name              *string
	Price             *decimal.Decimal
	PriceHasDecreased *decimal.Decimal
	Description       *string
	Quantity          *int
	Color             *string
	Size              *string
	Status            *string

	Image         io.Reader
	ImageFilename string
	ImageType     string
}

func (s *Service) Update(ctx context.Context, id uint, in UpdateInput) (Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}

	updates := map[string]any{"updated_at": time.Now()}
	if in.Name != nil && *in.Name != "" {
		updates["name"] = *in.Name
	}
	if in.Price != nil && in.Price.IsPositive() {
		updates["price"] = *in.Price
	}
	if in.PriceHasDecreased != nil && !in.PriceHasDecreased.IsNegative() {
		updates["price_has_decreased"] = *in.PriceHasDecreased
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Quantity != nil && *in.Quantity >= 0 {
		updates["quantity"] = *in.Quantity
	}
	if in.Color != nil {
		updates["color"] = *in.Color
	}
	if in.Size != nil {
		updates["size"] = *in.Size
	}
	if in.Status != nil && *in.Status != "" {
		updates["status"] = *in.Status
	}

	if in.Image != nil {
		put, err := s.store.Put(ctx, in.Image, storage.PutInput{
			Category:    imageCategory,
			Filename:    in.ImageFilename,
			ContentType: in.ImageType,
		})
		if err != nil {
			return Product{}, err
		}
		updates["image_key"] = put.Key
	}

	if err := s.db.WithContext(ctx).Model(&Product{}).
		Where("id = ?", p.ID).
		Updates(updates).Error; err != nil {
		return Product{}, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&Product{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Delete(&Stock{}, "product_id = ?", id).Error
	})
}

// ImageBytes loads the stored image for a product by its storage key.
func (s *Service) ImageBytes(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrImageNotFound
	}
	b, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, ErrImageNotFound
	}
	return b, nil
}

func (s *Service) Repo() *Repo { return s.repo }
