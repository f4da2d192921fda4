package scheduler

import "errors"

var (
	ErrSchedulerStopped = errors.New("scheduler is not running")
	ErrInvalidInterval  = errors.New("invalid sync interval")
	ErrInvalidMode      = errors.New("invalid schedule mode")
	ErrStore            = errors.New("failed to load repositories")
)
