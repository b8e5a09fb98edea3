package products

import "errors"

var (
	ErrNotFound         = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrBrandNotFound    = errors.New("brand not found")
	ErrImageRequired    = errors.New("image is required")
	ErrImageNotFound    = errors.New("image not found")
)
