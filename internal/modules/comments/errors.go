package comments

import "errors"

var (
	ErrBadRequest      = errors.New("invalid comment request")
	ErrProductNotFound = errors.New("product not found")
)
