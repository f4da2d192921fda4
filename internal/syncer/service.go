package syncer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pullgit/pullgit/internal/git"
	"github.com/pullgit/pullgit/internal/repositories"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 4

type Option func(*Service)

// WithClock replaces time.Now as the source of lastSync timestamps.
func WithClock(now Clock) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service decides between clone and pull for a repository and records the outcome.
type Service struct {
	config Config
	paths  PathBuilder

	vcs         VersionControl
	credentials CredentialSource
	store       RepositoryStore
	journal     Journal
	now         Clock

	mu   sync.Mutex
	busy map[string]struct{}

	logger *zap.Logger
}

func NewService(
	config Config,
	vcs VersionControl,
	credentials CredentialSource,
	store RepositoryStore,
	journal Journal,
	logger *zap.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		config: config,
		paths:  NewPathBuilder(config.ReposDir),

		vcs:         vcs,
		credentials: credentials,
		store:       store,
		journal:     journal,
		now:         time.Now,

		busy: make(map[string]struct{}),

		logger: logger,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Path returns the working copy directory of a repository.
func (s *Service) Path(repo repositories.Repository) string {
	return s.paths.BuildPath(repo.Name)
}

// SyncRepository clones the repository when its working copy is absent and pulls it otherwise.
// The returned error is non-nil exactly when the outcome is OutcomeFailed.
func (s *Service) SyncRepository(ctx context.Context, repo repositories.Repository) (Result, error) {
	result := Result{
		ID:        uuid.New(),
		URL:       repo.URL,
		Name:      repo.Name,
		Path:      s.Path(repo),
		StartedAt: s.now(),
	}
	logger := s.logger.With(
		zap.String("sync_id", result.ID.String()),
		zap.String("url", repo.URL),
		zap.String("path", result.Path),
	)

	if !s.acquire(repo.URL) {
		logger.Warn("sync skipped, previous sync still running")
		return s.fail(repo, result, ReasonBusy, fmt.Errorf("%w: %s", ErrSyncInProgress, displayName(repo)))
	}
	defer s.release(repo.URL)

	syncsInFlight.Inc()
	defer syncsInFlight.Dec()

	opCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	var credential *git.Credential
	if repo.IsPrivate {
		credential = s.credentials.DefaultCredential()
	}

	_, statErr := os.Stat(result.Path)
	switch {
	case statErr == nil:
		result.Outcome = OutcomePulled
		logger.Debug("working copy present, pulling")
		if err := s.vcs.Pull(opCtx, git.PullRequest{Path: result.Path, Credential: credential}); err != nil {
			reason, wrapped := classify(opCtx, ReasonPull, err)
			return s.fail(repo, result, reason, wrapped)
		}
	case errors.Is(statErr, fs.ErrNotExist):
		result.Outcome = OutcomeCloned
		logger.Debug("working copy absent, cloning", zap.Bool("authenticated", credential != nil))
		req := git.CloneRequest{URL: repo.URL, Directory: result.Path, Credential: credential}
		if _, err := s.vcs.Clone(opCtx, req); err != nil {
			reason, wrapped := classify(opCtx, ReasonClone, err)
			return s.fail(repo, result, reason, wrapped)
		}
	default:
		return s.fail(repo, result, ReasonFilesystem, fmt.Errorf("%w: %w", ErrWorkingCopy, statErr))
	}

	syncDuration.WithLabelValues(string(result.Outcome)).Observe(time.Since(result.StartedAt).Seconds())

	// lastSync moves only once the working copy is in place.
	syncedAt := s.now()
	if err := s.store.MarkSynced(ctx, repo.URL, syncedAt); err != nil {
		return s.fail(repo, result, ReasonStore, fmt.Errorf("%w: %w", ErrStoreFailed, err))
	}

	result.FinishedAt = syncedAt
	syncsTotal.WithLabelValues(string(result.Outcome), string(ReasonNone)).Inc()

	if result.Outcome == OutcomeCloned {
		s.journal.Append("Cloned: "+displayName(repo), zap.String("sync_id", result.ID.String()))
	} else {
		s.journal.Append("Synced: "+displayName(repo), zap.String("sync_id", result.ID.String()))
	}

	return result, nil
}

// SyncAll syncs every repository with bounded parallelism. A failure is recorded
// in its result and never stops the rest of the batch. Results keep the input order.
func (s *Service) SyncAll(ctx context.Context, repos []repositories.Repository) []Result {
	batchID := uuid.New()
	s.logger.Info("batch sync started",
		zap.String("batch_id", batchID.String()),
		zap.Int("repositories", len(repos)))

	results := make([]Result, len(repos))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(lo.Ternary(s.config.Concurrency > 0, s.config.Concurrency, defaultConcurrency))

	for i, repo := range repos {
		group.Go(func() error {
			results[i], _ = s.SyncRepository(groupCtx, repo)
			return nil
		})
	}
	_ = group.Wait()

	failed := lo.CountBy(results, func(r Result) bool { return !r.Succeeded() })
	s.logger.Info("batch sync finished",
		zap.String("batch_id", batchID.String()),
		zap.Int("succeeded", len(results)-failed),
		zap.Int("failed", failed))

	return results
}

// Status inspects the working copy of a repository.
func (s *Service) Status(ctx context.Context, repo repositories.Repository) (*Status, error) {
	path := s.Path(repo)

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	} else if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWorkingCopy, err)
	}

	wc, err := s.vcs.Status(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWorkingCopy, err)
	}

	commit, err := s.vcs.LatestCommit(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWorkingCopy, err)
	}

	return &Status{
		URL:      repo.URL,
		Name:     repo.Name,
		Path:     path,
		Branch:   wc.Branch,
		Dirty:    wc.Dirty,
		Modified: wc.Modified,
		Created:  wc.Created,
		Deleted:  wc.Deleted,

		LatestCommit: commit,
		LastSync:     repo.LastSync,
	}, nil
}

// InProgress reports whether a sync is running for url.
func (s *Service) InProgress(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.busy[url]
	return ok
}

func (s *Service) fail(repo repositories.Repository, result Result, reason FailureReason, err error) (Result, error) {
	result.Outcome = OutcomeFailed
	result.Reason = reason
	result.Err = err
	result.FinishedAt = s.now()

	syncsTotal.WithLabelValues(string(OutcomeFailed), string(reason)).Inc()

	s.journal.Append(
		fmt.Sprintf("Error syncing %s: %s", displayName(repo), err.Error()),
		zap.String("sync_id", result.ID.String()),
		zap.String("reason", string(reason)),
	)

	return result, err
}

func (s *Service) acquire(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.busy[url]; ok {
		return false
	}
	s.busy[url] = struct{}{}
	return true
}

func (s *Service) release(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.busy, url)
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.config.Timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, s.config.Timeout)
}

func classify(ctx context.Context, op FailureReason, err error) (FailureReason, error) {
	switch {
	case errors.Is(err, git.ErrTimeout), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return ReasonTimeout, fmt.Errorf("%w: %w", ErrTimeout, err)
	case errors.Is(err, git.ErrAuthenticationFailed):
		return ReasonAuth, fmt.Errorf("%w: %w", ErrAuthFailed, err)
	case errors.Is(err, git.ErrRepositoryAlreadyExists):
		return ReasonAlreadyExists, fmt.Errorf("%w: %w", ErrCloneFailed, err)
	case op == ReasonClone:
		return ReasonClone, fmt.Errorf("%w: %w", ErrCloneFailed, err)
	}

	return ReasonPull, fmt.Errorf("%w: %w", ErrPullFailed, err)
}

func displayName(repo repositories.Repository) string {
	return lo.CoalesceOrEmpty(repo.FullName, repo.Name, repo.URL)
}
