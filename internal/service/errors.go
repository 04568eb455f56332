package service

import "errors"

// ErrValidation wraps client input problems
var ErrValidation = errors.New("validation failed")
