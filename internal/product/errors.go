package product

import "errors"

var (
	ErrInvalid   = errors.New("invalid product")
	ErrNotFound  = errors.New("product not found")
	ErrDuplicate = errors.New("product already exists")
)
