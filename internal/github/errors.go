package github

import "errors"

var (
	ErrInvalidURL  = errors.New("invalid GitHub URL")
	ErrNotFound    = errors.New("GitHub repository not found")
	ErrUnavailable = errors.New("GitHub API request failed")
)
