package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/transport"
	"go.uber.org/zap"
)

const shortHashLen = 7

type Service struct {
	config Config
	logger *zap.Logger
}

// NewService creates a new GitService.
func NewService(config Config, logger *zap.Logger) *Service {
	return &Service{
		config: config,
		logger: logger,
	}
}

// DefaultCredential returns the configured HTTPS credential, or nil when no token is set.
func (s *Service) DefaultCredential() *Credential {
	if s.config.Auth.HTTPS.DefaultToken == "" {
		return nil
	}

	username := s.config.Auth.HTTPS.DefaultUsername
	if username == "" {
		username = "x-access-token"
	}

	return &Credential{
		Username: username,
		Token:    s.config.Auth.HTTPS.DefaultToken,
	}
}

// Clone clones a repository into a directory that must not exist yet.
func (s *Service) Clone(ctx context.Context, req CloneRequest) (*Repository, error) {
	s.logger.Info("cloning repository",
		zap.String("url", req.URL),
		zap.String("directory", req.Directory),
		zap.Bool("authenticated", req.Credential != nil))

	if _, statErr := os.Stat(req.Directory); statErr == nil {
		return nil, fmt.Errorf("%w: directory %s already exists", ErrRepositoryAlreadyExists, req.Directory)
	}

	cloneOptions := &git.CloneOptions{
		URL:   req.URL,
		Auth:  req.Credential.authMethod(),
		Depth: s.config.Depth,
	}

	_, err := git.PlainCloneContext(ctx, req.Directory, cloneOptions)
	if err != nil {
		// A leftover directory would turn the next attempt into a pull.
		if rmErr := os.RemoveAll(req.Directory); rmErr != nil {
			s.logger.Warn("failed to remove partial clone", zap.String("directory", req.Directory), zap.Error(rmErr))
		}

		s.logger.Error("failed to clone repository", zap.String("url", req.URL), zap.Error(err))
		return nil, classify(ctx, ErrCloneFailed, err)
	}

	s.logger.Info("repository cloned successfully",
		zap.String("url", req.URL),
		zap.String("directory", req.Directory))

	return &Repository{
		Path: req.Directory,
		URL:  req.URL,
	}, nil
}

// Pull fast-forwards the working copy to its remote tracking branch.
func (s *Service) Pull(ctx context.Context, req PullRequest) error {
	s.logger.Info("pulling repository",
		zap.String("path", req.Path))

	repo, err := git.PlainOpen(req.Path)
	if err != nil {
		s.logger.Error("failed to open repository", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrRepositoryNotFound, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		s.logger.Error("failed to get worktree", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	pullOptions := &git.PullOptions{
		RemoteName: git.DefaultRemoteName,
		Auth:       req.Credential.authMethod(),
	}

	err = worktree.PullContext(ctx, pullOptions)
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		s.logger.Info("repository already up to date", zap.String("path", req.Path))
		return nil
	}
	if err != nil {
		s.logger.Error("failed to pull repository", zap.String("path", req.Path), zap.Error(err))
		return classify(ctx, ErrPullFailed, err)
	}

	s.logger.Info("repository pulled successfully",
		zap.String("path", req.Path))

	return nil
}

// Status inspects the working copy at repoPath.
func (s *Service) Status(_ context.Context, repoPath string) (*WorkingCopyStatus, error) {
	s.logger.Debug("getting working copy status",
		zap.String("path", repoPath))

	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		s.logger.Error("failed to open repository", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrRepositoryNotFound, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		s.logger.Error("failed to get worktree", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	status, err := worktree.Status()
	if err != nil {
		s.logger.Error("failed to get status", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	branch, err := currentBranch(repo)
	if err != nil {
		s.logger.Error("failed to resolve HEAD", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	result := &WorkingCopyStatus{
		Branch: branch,
		Dirty:  !status.IsClean(),
	}

	for _, file := range status {
		switch {
		case file.Worktree == git.Untracked, file.Staging == git.Added:
			result.Created++
		case file.Worktree == git.Deleted, file.Staging == git.Deleted:
			result.Deleted++
		case file.Worktree != git.Unmodified, file.Staging != git.Unmodified:
			result.Modified++
		}
	}

	return result, nil
}

// LatestCommit returns the commit HEAD points to, or nil for an empty history.
func (s *Service) LatestCommit(_ context.Context, repoPath string) (*Commit, error) {
	s.logger.Debug("getting latest commit",
		zap.String("path", repoPath))

	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		s.logger.Error("failed to open repository", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrRepositoryNotFound, err)
	}

	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil //nolint:nilnil //empty history
	}
	if err != nil {
		s.logger.Error("failed to get HEAD", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		s.logger.Error("failed to get commit object", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	message, _, _ := strings.Cut(strings.TrimSpace(commit.Message), "\n")

	return &Commit{
		Hash:    commit.Hash.String(),
		Message: message,
		Author:  commit.Author.Name,
		When:    commit.Author.When,
	}, nil
}

func currentBranch(repo *git.Repository) (string, error) {
	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		// Unborn branch: HEAD is symbolic and its target has no commits yet.
		ref, refErr := repo.Reference(plumbing.HEAD, false)
		if refErr != nil {
			return "", fmt.Errorf("failed to read HEAD: %w", refErr)
		}
		return ref.Target().Short(), nil
	}
	if err != nil {
		return "", err
	}

	if head.Name().IsBranch() {
		return head.Name().Short(), nil
	}

	return head.Hash().String()[:shortHashLen], nil
}

// classify maps go-git and context failures onto this package's sentinels, keeping base.
func classify(ctx context.Context, base, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %w: %w", base, ErrTimeout, err)
	case errors.Is(err, context.Canceled), errors.Is(ctx.Err(), context.Canceled):
		return fmt.Errorf("%w: %w: %w", base, ErrOperationCancelled, err)
	case errors.Is(err, transport.ErrAuthenticationRequired),
		errors.Is(err, transport.ErrAuthorizationFailed):
		return fmt.Errorf("%w: %w: %w", base, ErrAuthenticationFailed, err)
	case errors.Is(err, transport.ErrRepositoryNotFound):
		return fmt.Errorf("%w: %w: %w", base, ErrRepositoryNotFound, err)
	case errors.Is(err, git.ErrNonFastForwardUpdate):
		return fmt.Errorf("%w: %w: %w", base, ErrNonFastForward, err)
	}

	return fmt.Errorf("%w: %w", base, err)
}
