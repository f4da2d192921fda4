package syncer

import "errors"

var (
	ErrNotFound       = errors.New("working copy not found")
	ErrSyncInProgress = errors.New("sync already in progress")
	ErrCloneFailed    = errors.New("clone failed")
	ErrPullFailed     = errors.New("pull failed")
	ErrAuthFailed     = errors.New("authentication failed")
	ErrTimeout        = errors.New("sync timed out")
	ErrStoreFailed    = errors.New("failed to record sync")
	ErrWorkingCopy    = errors.New("working copy unavailable")
)
