package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-core-fx/fiberfx/handler"
	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pullgit/pullgit/internal/deployments"
	"github.com/pullgit/pullgit/internal/git"
	"github.com/pullgit/pullgit/internal/github"
	"github.com/pullgit/pullgit/internal/repositories"
	"github.com/pullgit/pullgit/internal/scheduler"
	deploymentsHandler "github.com/pullgit/pullgit/internal/server/handlers/deployments"
	repositoriesHandler "github.com/pullgit/pullgit/internal/server/handlers/repositories"
	schedulerHandler "github.com/pullgit/pullgit/internal/server/handlers/scheduler"
	"github.com/pullgit/pullgit/internal/syncer"
	"github.com/pullgit/pullgit/internal/synclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fixture struct {
	app       *fiber.App
	scheduler *scheduler.Service
	reposDir  string
}

func newFixture(t *testing.T, githubAPI http.HandlerFunc) *fixture {
	t.Helper()

	logger := zaptest.NewLogger(t)

	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	deploymentsSvc := deployments.NewService(logger)
	v := validator.New()
	require.NoError(t, repositories.RegisterValidations(v))
	require.NoError(t, deployments.RegisterValidations(v, deploymentsSvc))

	reposSvc := repositories.NewService(
		repositories.NewStore(db),
		repositories.Config{DefaultAutoSync: true, DefaultSyncInterval: 300},
		v,
		logger,
	)

	journal, err := synclog.New(synclog.Config{Path: filepath.Join(t.TempDir(), "logs", "sync.log")}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = journal.Close() })

	reposDir := t.TempDir()
	gitSvc := git.NewService(git.Config{}, logger)
	syncSvc := syncer.NewService(
		syncer.Config{ReposDir: reposDir, Timeout: time.Minute, Concurrency: 2},
		gitSvc, gitSvc, reposSvc, journal, logger,
	)
	schedulerSvc := scheduler.NewService(scheduler.Config{Mode: scheduler.ModeInterval}, reposSvc, syncSvc, journal, logger)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = schedulerSvc.Stop(ctx)
	})

	if githubAPI == nil {
		githubAPI = func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}
	api := httptest.NewServer(githubAPI)
	t.Cleanup(api.Close)
	githubClient, err := github.NewClient(github.Config{BaseURL: api.URL}, logger)
	require.NoError(t, err)

	app := fiber.New()
	v1 := app.Group("/api/v1")
	for _, h := range []handler.Handler{
		repositoriesHandler.NewHandler(reposSvc, syncSvc, schedulerSvc, deploymentsSvc, githubClient, v, logger),
		schedulerHandler.NewHandler(schedulerSvc, reposSvc, journal, v, logger),
		deploymentsHandler.NewHandler(deploymentsSvc, logger),
	} {
		h.Register(v1)
	}

	return &fixture{
		app:       app,
		scheduler: schedulerSvc,
		reposDir:  reposDir,
	}
}

func (f *fixture) do(t *testing.T, method, path string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return v
}

// newOrigin creates a repository with one commit and returns its file URL and a commit helper.
func newOrigin(t *testing.T) (string, func(file, message string)) {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "origin")
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	commit := func(file, message string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(message), 0o600))
		wt, wtErr := repo.Worktree()
		require.NoError(t, wtErr)
		_, wtErr = wt.Add(file)
		require.NoError(t, wtErr)
		_, wtErr = wt.Commit(message, &gogit.CommitOptions{
			Author: &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()},
		})
		require.NoError(t, wtErr)
	}
	commit("README.md", "initial commit")

	return "file://" + dir, commit
}

func TestRepositories_AddSyncAndInspect(t *testing.T) {
	f := newFixture(t, nil)
	originURL, commit := newOrigin(t)

	code, body := f.do(t, http.MethodPost, "/repositories", map[string]any{
		"url":           originURL,
		"name":          "app",
		"full_name":     "acme/app",
		"is_private":    false,
		"sync_interval": 0,
	})
	require.Equal(t, http.StatusCreated, code, string(body))
	created := decode[repositoriesHandler.RepositoryResponse](t, body)
	assert.Equal(t, "app", created.Name)
	assert.False(t, created.AutoSync)
	assert.False(t, created.Scheduled)
	assert.Nil(t, created.LastSync)

	code, body = f.do(t, http.MethodGet, "/status", nil)
	require.Equal(t, http.StatusOK, code, string(body))
	statuses := decode[[]repositoriesHandler.StatusResponse](t, body)
	require.Len(t, statuses, 1)
	assert.False(t, statuses[0].Cloned)
	assert.Equal(t, "not cloned yet", statuses[0].Message)
	assert.Equal(t, filepath.Join(f.reposDir, "app"), statuses[0].Path)

	code, body = f.do(t, http.MethodPost, "/repositories/app/sync", nil)
	require.Equal(t, http.StatusOK, code, string(body))
	assert.Equal(t, "cloned", decode[repositoriesHandler.SyncResponse](t, body).Outcome)

	commit("CHANGELOG.md", "second commit")

	code, body = f.do(t, http.MethodPost, "/sync?name=acme/app", nil)
	require.Equal(t, http.StatusOK, code, string(body))
	results := decode[[]repositoriesHandler.SyncResponse](t, body)
	require.Len(t, results, 1)
	assert.Equal(t, "pulled", results[0].Outcome)

	code, body = f.do(t, http.MethodGet, "/repositories/acme%2Fapp/status", nil)
	require.Equal(t, http.StatusOK, code, string(body))
	status := decode[repositoriesHandler.StatusResponse](t, body)
	assert.True(t, status.Cloned)
	assert.False(t, status.Dirty)
	require.NotNil(t, status.LatestCommit)
	assert.Equal(t, "second commit", status.LatestCommit.Message)
	require.NotNil(t, status.LastSync)

	code, body = f.do(t, http.MethodGet, "/scheduler/log?lines=2", nil)
	require.Equal(t, http.StatusOK, code, string(body))
	lines := decode[schedulerHandler.LogResponse](t, body).Lines
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], " Cloned: acme/app"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], " Synced: acme/app"), lines[1])
}

func TestRepositories_SyncFailureMapsToBadGateway(t *testing.T) {
	f := newFixture(t, nil)

	code, body := f.do(t, http.MethodPost, "/repositories", map[string]any{
		"url":        "file://" + filepath.Join(t.TempDir(), "missing"),
		"name":       "ghost",
		"full_name":  "acme/ghost",
		"is_private": false,
	})
	require.Equal(t, http.StatusCreated, code, string(body))

	code, body = f.do(t, http.MethodPost, "/repositories/ghost/sync", nil)
	assert.Equal(t, http.StatusBadGateway, code, string(body))

	// Batch syncs report failures per repository instead of failing the request.
	code, body = f.do(t, http.MethodPost, "/sync", nil)
	require.Equal(t, http.StatusOK, code, string(body))
	results := decode[[]repositoriesHandler.SyncResponse](t, body)
	require.Len(t, results, 1)
	assert.Equal(t, "failed", results[0].Outcome)
	assert.Equal(t, "clone", results[0].Reason)

	code, body = f.do(t, http.MethodGet, "/repositories/ghost", nil)
	require.Equal(t, http.StatusOK, code, string(body))
	assert.Nil(t, decode[repositoriesHandler.RepositoryResponse](t, body).LastSync)
}

func TestRepositories_AddResolvesMetadataFromGitHub(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/site", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name": "site", "full_name": "acme/site", "owner": {"login": "acme"}, "private": true}`))
	})

	code, body := f.do(t, http.MethodPost, "/repositories", map[string]any{
		"url": "https://github.com/acme/site.git",
	})
	require.Equal(t, http.StatusCreated, code, string(body))

	repo := decode[repositoriesHandler.RepositoryResponse](t, body)
	assert.Equal(t, "site", repo.Name)
	assert.Equal(t, "acme/site", repo.FullName)
	assert.True(t, repo.IsPrivate)
	assert.Equal(t, 300, repo.SyncInterval)
	assert.True(t, repo.AutoSync)
}

func TestRepositories_AddFallsBackToURLWhenGitHubUnavailable(t *testing.T) {
	f := newFixture(t, nil)

	code, body := f.do(t, http.MethodPost, "/repositories", map[string]any{
		"url": "https://github.com/acme/site",
	})
	require.Equal(t, http.StatusCreated, code, string(body))

	repo := decode[repositoriesHandler.RepositoryResponse](t, body)
	assert.Equal(t, "site", repo.Name)
	assert.Equal(t, "acme/site", repo.FullName)
	assert.False(t, repo.IsPrivate)
}

func TestRepositories_AddRejectsInvalidInput(t *testing.T) {
	f := newFixture(t, nil)
	originURL, _ := newOrigin(t)

	valid := map[string]any{"url": originURL, "name": "app", "full_name": "acme/app", "is_private": false}

	code, body := f.do(t, http.MethodPost, "/repositories", valid)
	require.Equal(t, http.StatusCreated, code, string(body))

	code, _ = f.do(t, http.MethodPost, "/repositories", valid)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = f.do(t, http.MethodPost, "/repositories", map[string]any{
		"url": originURL + "-other", "name": "other", "full_name": "acme/other", "is_private": false,
		"deployment_type": "cobol_mainframe",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = f.do(t, http.MethodPost, "/repositories", map[string]any{
		"url": "not a url", "name": "x", "full_name": "acme/x", "is_private": false,
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = f.do(t, http.MethodPost, "/repositories", map[string]any{
		"url": "https://gitlab.com/acme/app",
	})
	assert.Equal(t, http.StatusBadRequest, code, "non-GitHub repositories need explicit names")

	code, _ = f.do(t, http.MethodGet, "/repositories/missing", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRepositories_JobsFollowUpdatesAndRemoval(t *testing.T) {
	f := newFixture(t, nil)
	originURL, _ := newOrigin(t)

	code, body := f.do(t, http.MethodPost, "/scheduler/start", nil)
	require.Equal(t, http.StatusOK, code, string(body))
	assert.True(t, decode[schedulerHandler.SchedulerResponse](t, body).Running)

	code, body = f.do(t, http.MethodPost, "/repositories", map[string]any{
		"url": originURL, "name": "app", "full_name": "acme/app", "is_private": false, "sync_interval": 600,
	})
	require.Equal(t, http.StatusCreated, code, string(body))
	assert.True(t, decode[repositoriesHandler.RepositoryResponse](t, body).Scheduled)

	code, body = f.do(t, http.MethodGet, "/scheduler", nil)
	require.Equal(t, http.StatusOK, code, string(body))
	state := decode[schedulerHandler.SchedulerResponse](t, body)
	require.Len(t, state.Jobs, 1)
	assert.Equal(t, originURL, state.Jobs[0].URL)
	assert.Equal(t, 600, state.Jobs[0].IntervalSeconds)
	assert.Equal(t, "@every 10m0s", state.Jobs[0].Spec)
	require.NotNil(t, state.Jobs[0].Next)

	code, body = f.do(t, http.MethodPatch, "/repositories/app", map[string]any{"sync_interval": 900})
	require.Equal(t, http.StatusOK, code, string(body))
	jobs := f.scheduler.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, 15*time.Minute, jobs[0].Interval)

	code, body = f.do(t, http.MethodPatch, "/repositories/app", map[string]any{"auto_sync": false})
	require.Equal(t, http.StatusOK, code, string(body))
	assert.False(t, decode[repositoriesHandler.RepositoryResponse](t, body).Scheduled)
	assert.Empty(t, f.scheduler.Jobs())

	code, body = f.do(t, http.MethodPatch, "/repositories/app", map[string]any{"auto_sync": true})
	require.Equal(t, http.StatusOK, code, string(body))
	assert.True(t, f.scheduler.HasJob(originURL))

	code, _ = f.do(t, http.MethodDelete, "/repositories/app", nil)
	require.Equal(t, http.StatusNoContent, code)
	assert.False(t, f.scheduler.HasJob(originURL))

	code, _ = f.do(t, http.MethodGet, "/repositories/app", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestSettings_ToggleAutoSyncStartsAndStopsScheduler(t *testing.T) {
	f := newFixture(t, nil)

	code, body := f.do(t, http.MethodGet, "/settings", nil)
	require.Equal(t, http.StatusOK, code, string(body))
	settings := decode[schedulerHandler.SettingsResponse](t, body)
	assert.True(t, settings.AutoSync)
	assert.Equal(t, 300, settings.DefaultSyncInterval)

	code, body = f.do(t, http.MethodPost, "/scheduler/start", nil)
	require.Equal(t, http.StatusOK, code, string(body))
	require.True(t, f.scheduler.IsRunning())

	code, body = f.do(t, http.MethodPatch, "/settings", map[string]any{"auto_sync": false})
	require.Equal(t, http.StatusOK, code, string(body))
	assert.False(t, decode[schedulerHandler.SettingsResponse](t, body).AutoSync)
	assert.False(t, f.scheduler.IsRunning())

	// Starting is a no-op while auto-sync is disabled globally.
	code, body = f.do(t, http.MethodPost, "/scheduler/start", nil)
	require.Equal(t, http.StatusOK, code, string(body))
	assert.False(t, decode[schedulerHandler.SchedulerResponse](t, body).Running)

	code, body = f.do(t, http.MethodPatch, "/settings", map[string]any{"auto_sync": true, "default_sync_interval": 120})
	require.Equal(t, http.StatusOK, code, string(body))
	settings = decode[schedulerHandler.SettingsResponse](t, body)
	assert.True(t, settings.AutoSync)
	assert.Equal(t, 120, settings.DefaultSyncInterval)
	assert.True(t, f.scheduler.IsRunning())

	code, _ = f.do(t, http.MethodPatch, "/settings", map[string]any{"default_sync_interval": -1})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = f.do(t, http.MethodPost, "/scheduler/stop", nil)
	require.Equal(t, http.StatusOK, code, string(body))
	assert.False(t, decode[schedulerHandler.SchedulerResponse](t, body).Running)
}

func TestDeployments_CatalogAndPlan(t *testing.T) {
	f := newFixture(t, nil)
	originURL, _ := newOrigin(t)

	code, body := f.do(t, http.MethodGet, "/deployments", nil)
	require.Equal(t, http.StatusOK, code, string(body))
	types := decode[[]deploymentsHandler.TypeResponse](t, body)
	require.Len(t, types, 5)
	assert.Equal(t, "nodejs_nginx", types[0].ID)

	code, _ = f.do(t, http.MethodGet, "/deployments/unknown", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, body = f.do(t, http.MethodPost, "/repositories", map[string]any{
		"url": originURL, "name": "app", "full_name": "acme/app", "is_private": false,
		"deployment_type": "nodejs_nginx",
	})
	require.Equal(t, http.StatusCreated, code, string(body))

	code, body = f.do(t, http.MethodGet, "/repositories/app/deployment", nil)
	require.Equal(t, http.StatusOK, code, string(body))
	plan := decode[repositoriesHandler.DeploymentResponse](t, body)
	path := filepath.Join(f.reposDir, "app")
	assert.Equal(t, "nodejs_nginx", plan.Type.ID)
	assert.Equal(t, path, plan.Path)
	assert.Equal(t, "bash nodejs-nginx-setup.sh app "+path, plan.Command)

	code, body = f.do(t, http.MethodPatch, "/repositories/app", map[string]any{"deployment_type": ""})
	require.Equal(t, http.StatusOK, code, string(body))

	code, _ = f.do(t, http.MethodGet, "/repositories/app/deployment", nil)
	assert.Equal(t, http.StatusNotFound, code)
}
