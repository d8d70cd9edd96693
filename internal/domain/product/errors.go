package product

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrProductNameExists = errors.New("product with this name already exists")
)
