package scheduler

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/pullgit/pullgit/internal/git"
	"github.com/pullgit/pullgit/internal/repositories"
	"github.com/pullgit/pullgit/internal/syncer"
	"go.uber.org/zap"
)

type fakeRepos struct {
	mu       sync.Mutex
	repos    map[string]repositories.Repository
	settings repositories.Settings
}

func newFakeRepos(repos ...repositories.Repository) *fakeRepos {
	f := &fakeRepos{
		repos:    make(map[string]repositories.Repository),
		settings: repositories.Settings{AutoSync: true, DefaultSyncInterval: 300},
	}
	for _, r := range repos {
		f.repos[r.URL] = r
	}
	return f
}

func (f *fakeRepos) List(_ context.Context) ([]repositories.Repository, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	list := make([]repositories.Repository, 0, len(f.repos))
	for _, r := range f.repos {
		list = append(list, r)
	}
	return list, nil
}

func (f *fakeRepos) Get(_ context.Context, url string) (*repositories.Repository, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.repos[url]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repositories.ErrNotFound, url)
	}
	return &r, nil
}

func (f *fakeRepos) Settings(_ context.Context) (repositories.Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.settings, nil
}

func (f *fakeRepos) MarkSynced(_ context.Context, url string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.repos[url]
	if !ok {
		return repositories.ErrNotFound
	}
	if r.LastSync == nil || at.After(*r.LastSync) {
		r.LastSync = &at
	}
	f.repos[url] = r
	return nil
}

func (f *fakeRepos) remove(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.repos, url)
}

type fakeExecutor struct {
	mu    sync.Mutex
	calls []string
	err   error
	panic bool
}

func (f *fakeExecutor) SyncRepository(_ context.Context, repo repositories.Repository) (syncer.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, repo.URL)
	err, shouldPanic := f.err, f.panic
	f.mu.Unlock()

	if shouldPanic {
		panic("executor exploded")
	}
	if err != nil {
		return syncer.Result{URL: repo.URL, Outcome: syncer.OutcomeFailed, Err: err}, err
	}
	return syncer.Result{URL: repo.URL, Outcome: syncer.OutcomePulled}, nil
}

func (f *fakeExecutor) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.calls)
}

// fakeVCS creates the target directory on clone and never touches the network.
type fakeVCS struct {
	mu      sync.Mutex
	clones  int
	pulls   int
	pullErr error
}

func (f *fakeVCS) Clone(_ context.Context, req git.CloneRequest) (*git.Repository, error) {
	f.mu.Lock()
	f.clones++
	f.mu.Unlock()

	if err := os.MkdirAll(req.Directory, 0o750); err != nil {
		return nil, err
	}
	return &git.Repository{Path: req.Directory, URL: req.URL}, nil
}

func (f *fakeVCS) Pull(_ context.Context, _ git.PullRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.pulls++
	return f.pullErr
}

func (f *fakeVCS) Status(_ context.Context, _ string) (*git.WorkingCopyStatus, error) {
	return &git.WorkingCopyStatus{}, nil
}

func (f *fakeVCS) LatestCommit(_ context.Context, _ string) (*git.Commit, error) {
	return nil, nil //nolint:nilnil //empty history
}

type noCredentials struct{}

func (noCredentials) DefaultCredential() *git.Credential {
	return nil
}

type fakeJournal struct {
	mu    sync.Mutex
	lines []string
}

func (f *fakeJournal) Append(message string, _ ...zap.Field) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lines = append(f.lines, message)
}

func (f *fakeJournal) all() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return slices.Clone(f.lines)
}

func (f *fakeJournal) containsPrefix(prefix string) bool {
	return slices.ContainsFunc(f.all(), func(line string) bool {
		return strings.HasPrefix(line, prefix)
	})
}
