package service

import "errors"

// ErrValidation marks request errors the caller can fix.
var ErrValidation = errors.New("validation failed")
