package comments

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/binhminh2409/WebXeDapApi/internal/modules/products"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

type CreateInput struct {
	UserID      uint
	ProductID   uint
	Description string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Comment, error) {
	if in.UserID == 0 || in.ProductID == 0 || strings.TrimSpace(in.Description) == "" {
		return Comment{}, ErrBadRequest
	}

	var p products.Product
	if err := s.db.WithContext(ctx).First(&p, "id = ?", in.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Comment{}, ErrProductNotFound
		}
		return Comment{}, err
	}

	c := Comment{
		UserID:      in.UserID,
		ProductID:   in.ProductID,
		Description: strings.TrimSpace(in.Description),
	}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return Comment{}, err
	}
	return c, nil
}

func (s *Service) ListByProduct(ctx context.Context, productID uint) ([]Comment, error) {
	var items []Comment
	err := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (s *Service) ListAll(ctx context.Context) ([]Comment, error) {
	var items []Comment
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (s *Service) ListByUser(ctx context.Context, userID uint) ([]Comment, error) {
	var items []Comment
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}
