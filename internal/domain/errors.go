package domain

import "errors"

var (
	ErrNotFound  = errors.New("record not found")
	ErrForbidden = errors.New("operation not permitted")
)
