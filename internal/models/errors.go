package models

import "errors"

// Custom errors
var (
	ErrNotFound       = errors.New("record not found")
	ErrInvalidID      = errors.New("invalid ID format")
	ErrSymbolRequired = errors.New("symbol is required")
	ErrInvalidSheet   = errors.New("sheet payload must be a JSON array")
)
