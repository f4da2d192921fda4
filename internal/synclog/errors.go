package synclog

import "errors"

var (
	ErrOpen  = errors.New("failed to open sync log")
	ErrWrite = errors.New("failed to write sync log")
	ErrRead  = errors.New("failed to read sync log")
)
