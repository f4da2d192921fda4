package git

import (
	"time"
)

// Repository represents a cloned Git repository.
type Repository struct {
	Path string // Path to the working copy
	URL  string // Original repository URL
}

// WorkingCopyStatus represents the state of a working copy.
type WorkingCopyStatus struct {
	Branch   string // Current branch, or the short commit hash when detached
	Dirty    bool   // Any modified, created or deleted file
	Modified int
	Created  int // Staged additions and untracked files
	Deleted  int
}

// Commit summarizes a commit.
type Commit struct {
	Hash    string
	Message string
	Author  string
	When    time.Time
}
