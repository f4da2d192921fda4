package repositories

import "errors"

var (
	ErrNotFound   = errors.New("repository not found")
	ErrConflict   = errors.New("repository already exists")
	ErrNotAllowed = errors.New("operation not allowed")
	ErrInvalid    = errors.New("invalid repository")
	ErrStorage    = errors.New("repository storage failure")
)
