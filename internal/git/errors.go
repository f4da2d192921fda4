package git

import "errors"

var (
	ErrRepositoryNotFound      = errors.New("repository not found")
	ErrCloneFailed             = errors.New("failed to clone repository")
	ErrPullFailed              = errors.New("failed to pull repository")
	ErrNonFastForward          = errors.New("non fast-forward update")
	ErrInvalidRepository       = errors.New("invalid repository")
	ErrAuthenticationFailed    = errors.New("authentication failed")
	ErrRepositoryAlreadyExists = errors.New("repository already exists")
	ErrTimeout                 = errors.New("operation timeout")
	ErrOperationCancelled      = errors.New("operation cancelled")
)
