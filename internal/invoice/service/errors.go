package service

import "errors"

var (
	ErrNoInventory      = errors.New("inventory api not configured")
	ErrMissingSalePrice = errors.New("sale price required for a new product")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrNoMatch          = errors.New("update requested without a matched product")
)
