package technology

import "errors"

var (
	ErrTechnologyNotFound   = errors.New("technology not found")
	ErrTechnologyNameExists = errors.New("technology with this name already exists")
)
