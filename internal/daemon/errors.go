package daemon

import "errors"

var (
	ErrUnknownAction  = errors.New("unknown service action")
	ErrAlreadyRunning = errors.New("application already running")
	ErrControl        = errors.New("service control failed")
)
