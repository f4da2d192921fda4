package syncer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pullgit/pullgit/internal/git"
	"go.uber.org/zap"
)

// VersionControl performs the clone, pull and inspection of working copies.
type VersionControl interface {
	Clone(ctx context.Context, req git.CloneRequest) (*git.Repository, error)
	Pull(ctx context.Context, req git.PullRequest) error
	Status(ctx context.Context, path string) (*git.WorkingCopyStatus, error)
	LatestCommit(ctx context.Context, path string) (*git.Commit, error)
}

// CredentialSource provides the stored credential for private repositories.
type CredentialSource interface {
	DefaultCredential() *git.Credential
}

// RepositoryStore persists the time of the last completed sync.
type RepositoryStore interface {
	MarkSynced(ctx context.Context, url string, at time.Time) error
}

// Journal receives one line per sync attempt.
type Journal interface {
	Append(message string, fields ...zap.Field)
}

// Clock returns the current time.
type Clock func() time.Time

type Outcome string

const (
	OutcomeCloned Outcome = "cloned"
	OutcomePulled Outcome = "pulled"
	OutcomeFailed Outcome = "failed"
)

type FailureReason string

const (
	ReasonNone          FailureReason = ""
	ReasonClone         FailureReason = "clone"
	ReasonPull          FailureReason = "pull"
	ReasonAuth          FailureReason = "auth"
	ReasonTimeout       FailureReason = "timeout"
	ReasonStore         FailureReason = "store"
	ReasonBusy          FailureReason = "busy"
	ReasonAlreadyExists FailureReason = "already_exists"
	ReasonFilesystem    FailureReason = "filesystem"
)

// Result describes one sync attempt.
type Result struct {
	ID   uuid.UUID
	URL  string
	Name string
	Path string

	Outcome Outcome
	Reason  FailureReason
	Err     error

	StartedAt  time.Time
	FinishedAt time.Time
}

// Succeeded reports whether the working copy was cloned or pulled.
func (r Result) Succeeded() bool {
	return r.Outcome != OutcomeFailed
}

// Status is a read-only snapshot of a working copy.
type Status struct {
	URL      string
	Name     string
	Path     string
	Branch   string
	Dirty    bool
	Modified int
	Created  int
	Deleted  int

	LatestCommit *git.Commit // nil on an empty history
	LastSync     *time.Time
}
