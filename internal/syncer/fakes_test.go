package syncer

import (
	"context"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/pullgit/pullgit/internal/git"
	"go.uber.org/zap"
)

type fakeVCS struct {
	mu sync.Mutex

	clones      []string
	pulls       []string
	credentials []*git.Credential

	cloneErr error
	pullErr  error
	started  chan struct{} // receives one value when an operation begins
	block    chan struct{} // operations wait for it to close, or for the context

	status *git.WorkingCopyStatus
	commit *git.Commit
}

func (f *fakeVCS) begin(ctx context.Context, calls *[]string, path string, credential *git.Credential) error {
	f.mu.Lock()
	*calls = append(*calls, path)
	f.credentials = append(f.credentials, credential)
	started, block := f.started, f.block
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if block == nil {
		return nil
	}

	select {
	case <-block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeVCS) Clone(ctx context.Context, req git.CloneRequest) (*git.Repository, error) {
	if err := f.begin(ctx, &f.clones, req.Directory, req.Credential); err != nil {
		return nil, err
	}
	if f.cloneErr != nil {
		return nil, f.cloneErr
	}
	if err := os.MkdirAll(req.Directory, 0o750); err != nil {
		return nil, err
	}

	return &git.Repository{Path: req.Directory, URL: req.URL}, nil
}

func (f *fakeVCS) Pull(ctx context.Context, req git.PullRequest) error {
	if err := f.begin(ctx, &f.pulls, req.Path, req.Credential); err != nil {
		return err
	}

	return f.pullErr
}

func (f *fakeVCS) Status(_ context.Context, _ string) (*git.WorkingCopyStatus, error) {
	return f.status, nil
}

func (f *fakeVCS) LatestCommit(_ context.Context, _ string) (*git.Commit, error) {
	return f.commit, nil
}

func (f *fakeVCS) calls() ([]string, []string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return slices.Clone(f.clones), slices.Clone(f.pulls)
}

type fakeCredentials struct {
	credential *git.Credential
}

func (f fakeCredentials) DefaultCredential() *git.Credential {
	return f.credential
}

type fakeStore struct {
	mu     sync.Mutex
	synced map[string][]time.Time
	err    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{synced: make(map[string][]time.Time)}
}

func (f *fakeStore) MarkSynced(_ context.Context, url string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	f.synced[url] = append(f.synced[url], at)
	return nil
}

func (f *fakeStore) syncedAt(url string) []time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	return slices.Clone(f.synced[url])
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
