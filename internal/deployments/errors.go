package deployments

import "errors"

var (
	ErrNotFound     = errors.New("deployment type not found")
	ErrNotSpecified = errors.New("repository has no deployment type")
)
