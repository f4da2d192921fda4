package scheduler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/pullgit/pullgit/internal/repositories"
	"github.com/pullgit/pullgit/internal/syncer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func appRepo() repositories.Repository {
	return repositories.Repository{
		URL:                 "https://github.com/acme/app",
		Name:                "app",
		FullName:            "acme/app",
		SyncIntervalSeconds: 300,
		AutoSync:            true,
	}
}

func repoN(i int) repositories.Repository {
	return repositories.Repository{
		URL:                 fmt.Sprintf("https://github.com/acme/app%d", i),
		Name:                fmt.Sprintf("app%d", i),
		FullName:            fmt.Sprintf("acme/app%d", i),
		SyncIntervalSeconds: 60 * (i + 1),
		AutoSync:            true,
	}
}

func newTestScheduler(t *testing.T, config Config, repos *fakeRepos, executor Executor, journal *fakeJournal) *Service {
	t.Helper()

	s := NewService(config, repos, executor, journal, zaptest.NewLogger(t))
	t.Cleanup(func() { _ = s.Stop(context.Background()) })

	return s
}

func TestCronSpec(t *testing.T) {
	cases := []struct {
		seconds int
		spec    string
	}{
		{1, "*/1 * * * *"},
		{59, "*/1 * * * *"},
		{60, "*/1 * * * *"},
		{119, "*/1 * * * *"},
		{300, "*/5 * * * *"},
		{3599, "*/59 * * * *"},
		{3600, "0 */1 * * *"},
		{7199, "0 */1 * * *"},
		{7200, "0 */2 * * *"},
		{86400, "0 */24 * * *"},
	}

	for _, tc := range cases {
		spec, err := CronSpec(tc.seconds)
		require.NoError(t, err, tc.seconds)
		assert.Equal(t, tc.spec, spec, tc.seconds)
	}

	for _, invalid := range []int{0, -1} {
		_, err := CronSpec(invalid)
		require.ErrorIs(t, err, ErrInvalidInterval)
	}
}

func TestSchedule_Modes(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	exact, spec, err := Schedule(ModeInterval, 301)
	require.NoError(t, err)
	assert.Equal(t, "@every 5m1s", spec)
	assert.True(t, exact.Next(t0).Equal(t0.Add(301*time.Second)))

	bucketed, spec, err := Schedule(ModeCron, 301)
	require.NoError(t, err)
	assert.Equal(t, "*/5 * * * *", spec)
	assert.True(t, bucketed.Next(t0).Equal(t0.Add(5*time.Minute)))

	_, _, err = Schedule(ModeInterval, 0)
	require.ErrorIs(t, err, ErrInvalidInterval)

	_, _, err = Schedule("hourly", 60)
	require.ErrorIs(t, err, ErrInvalidMode)
}

func TestStart_SchedulesOneJobPerEligibleRepository(t *testing.T) {
	manual := repoN(1)
	manual.SyncIntervalSeconds = 0
	paused := repoN(2)
	paused.AutoSync = false

	repos := newFakeRepos(appRepo(), repoN(0), manual, paused)
	journal := &fakeJournal{}
	s := newTestScheduler(t, Config{Mode: ModeInterval}, repos, &fakeExecutor{}, journal)

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()), "start is idempotent")

	assert.True(t, s.IsRunning())

	jobs := s.Jobs()
	require.Len(t, jobs, 2)
	assert.Equal(t, "https://github.com/acme/app", jobs[0].URL)
	assert.Equal(t, 5*time.Minute, jobs[0].Interval)
	assert.False(t, jobs[0].Next.IsZero())
	assert.Equal(t, repoN(0).URL, jobs[1].URL)

	assert.Contains(t, journal.all(), "Scheduled acme/app - every 300 seconds")
	assert.Contains(t, journal.all(), "Scheduler started with 2 active repository(ies)")
}

func TestStart_AutoSyncDisabled(t *testing.T) {
	repos := newFakeRepos(appRepo())
	repos.settings.AutoSync = false
	journal := &fakeJournal{}
	s := newTestScheduler(t, Config{}, repos, &fakeExecutor{}, journal)

	require.NoError(t, s.Start(context.Background()))

	assert.False(t, s.IsRunning())
	assert.Empty(t, s.Jobs())
	assert.Equal(t, []string{"Auto-sync is disabled"}, journal.all())
}

func TestScheduleRepository_ReplacesExistingJob(t *testing.T) {
	repos := newFakeRepos()
	journal := &fakeJournal{}
	s := newTestScheduler(t, Config{}, repos, &fakeExecutor{}, journal)
	require.NoError(t, s.Start(context.Background()))

	require.NoError(t, s.ScheduleRepository(appRepo()))
	require.NoError(t, s.ScheduleRepository(appRepo()))

	assert.Len(t, s.Jobs(), 1)
	assert.Contains(t, journal.all(), "Stopped scheduling for: https://github.com/acme/app")
}

func TestScheduleRepository_RequiresRunningScheduler(t *testing.T) {
	s := newTestScheduler(t, Config{}, newFakeRepos(), &fakeExecutor{}, &fakeJournal{})

	err := s.ScheduleRepository(appRepo())
	require.ErrorIs(t, err, ErrSchedulerStopped)
	assert.Empty(t, s.Jobs())
}

func TestScheduleRepository_RejectsManualInterval(t *testing.T) {
	journal := &fakeJournal{}
	s := newTestScheduler(t, Config{}, newFakeRepos(), &fakeExecutor{}, journal)
	require.NoError(t, s.Start(context.Background()))

	repo := appRepo()
	repo.SyncIntervalSeconds = 0

	require.ErrorIs(t, s.ScheduleRepository(repo), ErrInvalidInterval)
	assert.Empty(t, s.Jobs())
	assert.True(t, journal.containsPrefix("Failed to schedule acme/app"))
}

func TestStopRepository_WithoutJobIsNoop(t *testing.T) {
	repos := newFakeRepos(appRepo())
	journal := &fakeJournal{}
	s := newTestScheduler(t, Config{}, repos, &fakeExecutor{}, journal)
	require.NoError(t, s.Start(context.Background()))
	before := journal.all()

	s.StopRepository("https://github.com/acme/unknown")

	assert.Len(t, s.Jobs(), 1)
	assert.Equal(t, before, journal.all())
}

func TestRestartRepository(t *testing.T) {
	repos := newFakeRepos(appRepo())
	s := newTestScheduler(t, Config{}, repos, &fakeExecutor{}, &fakeJournal{})
	require.NoError(t, s.Start(context.Background()))

	faster := appRepo()
	faster.SyncIntervalSeconds = 60
	require.NoError(t, s.RestartRepository(faster))

	jobs := s.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, time.Minute, jobs[0].Interval)

	paused := faster
	paused.AutoSync = false
	require.NoError(t, s.RestartRepository(paused))
	assert.Empty(t, s.Jobs())
}

func TestStop_LeavesNoJobs(t *testing.T) {
	repos := newFakeRepos()
	for i := range 5 {
		r := repoN(i)
		repos.repos[r.URL] = r
	}
	journal := &fakeJournal{}
	s := newTestScheduler(t, Config{Mode: ModeCron}, repos, &fakeExecutor{}, journal)
	require.NoError(t, s.Start(context.Background()))
	require.Len(t, s.Jobs(), 5)

	require.NoError(t, s.Stop(context.Background()))

	assert.Empty(t, s.Jobs())
	assert.False(t, s.IsRunning())
	assert.Contains(t, journal.all(), "Scheduler stopped")

	require.NoError(t, s.Start(context.Background()), "a stopped scheduler can start again")
	assert.Len(t, s.Jobs(), 5)
}

type syncFixture struct {
	repos     *fakeRepos
	vcs       *fakeVCS
	journal   *fakeJournal
	scheduler *Service
	executor  *syncer.Service
	now       time.Time
}

func newSyncFixture(t *testing.T) *syncFixture {
	t.Helper()

	f := &syncFixture{
		repos:   newFakeRepos(appRepo()),
		vcs:     &fakeVCS{},
		journal: &fakeJournal{},
	}
	logger := zaptest.NewLogger(t)
	f.executor = syncer.NewService(
		syncer.Config{ReposDir: t.TempDir(), Timeout: time.Minute},
		f.vcs,
		noCredentials{},
		f.repos,
		f.journal,
		logger,
		syncer.WithClock(func() time.Time { return f.now }),
	)
	f.scheduler = newTestScheduler(t, Config{Mode: ModeInterval}, f.repos, f.executor, f.journal)

	return f
}

func (f *syncFixture) lastSync(t *testing.T) *time.Time {
	t.Helper()

	repo, err := f.repos.Get(context.Background(), appRepo().URL)
	require.NoError(t, err)
	return repo.LastSync
}

func TestScenario_FirstFireClones(t *testing.T) {
	f := newSyncFixture(t)
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, f.scheduler.Start(context.Background()))
	f.scheduler.mu.Lock()
	schedule := f.scheduler.jobs[appRepo().URL].schedule
	f.scheduler.mu.Unlock()

	// Exactly one fire falls into the first 301 seconds.
	first := schedule.Next(t0)
	assert.True(t, first.Equal(t0.Add(300*time.Second)), first)
	assert.True(t, schedule.Next(first).After(t0.Add(301*time.Second)))

	f.now = first
	f.scheduler.fire(appRepo().URL)

	assert.Equal(t, 1, f.vcs.clones)
	assert.Zero(t, f.vcs.pulls)
	assert.DirExists(t, f.executor.Path(appRepo()))
	assert.Contains(t, f.journal.all(), "Cloned: acme/app")

	lastSync := f.lastSync(t)
	require.NotNil(t, lastSync)
	assert.False(t, lastSync.Before(t0.Add(300*time.Second)))
}

func TestScenario_FireWithWorkingCopyPulls(t *testing.T) {
	f := newSyncFixture(t)
	require.NoError(t, os.MkdirAll(f.executor.Path(appRepo()), 0o750))
	require.NoError(t, f.scheduler.Start(context.Background()))

	f.now = time.Date(2026, 3, 1, 10, 5, 0, 0, time.UTC)
	f.scheduler.fire(appRepo().URL)

	assert.Zero(t, f.vcs.clones)
	assert.Equal(t, 1, f.vcs.pulls)
	assert.Contains(t, f.journal.all(), "Synced: acme/app")

	first := f.lastSync(t)
	require.NotNil(t, first)
	assert.True(t, first.Equal(f.now))

	f.now = f.now.Add(5 * time.Minute)
	f.scheduler.fire(appRepo().URL)
	assert.True(t, f.lastSync(t).After(*first), "every successful fire advances lastSync")
}

func TestScenario_FailedPullKeepsSchedule(t *testing.T) {
	f := newSyncFixture(t)
	require.NoError(t, os.MkdirAll(f.executor.Path(appRepo()), 0o750))
	f.vcs.pullErr = errors.New("remote unreachable")
	require.NoError(t, f.scheduler.Start(context.Background()))

	f.now = time.Date(2026, 3, 1, 10, 5, 0, 0, time.UTC)
	f.scheduler.fire(appRepo().URL)

	assert.Nil(t, f.lastSync(t))
	assert.True(t, f.journal.containsPrefix("Error syncing acme/app: "))
	assert.True(t, f.scheduler.IsRunning())
	assert.Len(t, f.scheduler.Jobs(), 1)
}

func TestFire_DropsJobOfRemovedRepository(t *testing.T) {
	repos := newFakeRepos(appRepo())
	executor := &fakeExecutor{}
	s := newTestScheduler(t, Config{}, repos, executor, &fakeJournal{})
	require.NoError(t, s.Start(context.Background()))

	repos.remove(appRepo().URL)
	s.fire(appRepo().URL)

	assert.Empty(t, s.Jobs())
	assert.Zero(t, executor.count())
}

func TestFires_ContinueAfterFailures(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for real fires")
	}

	repo := appRepo()
	repo.SyncIntervalSeconds = 1
	executor := &fakeExecutor{err: syncer.ErrPullFailed}
	s := newTestScheduler(t, Config{Mode: ModeInterval}, newFakeRepos(repo), executor, &fakeJournal{})
	require.NoError(t, s.Start(context.Background()))

	require.Eventually(t, func() bool { return executor.count() >= 2 }, 5*time.Second, 20*time.Millisecond)
	assert.True(t, s.IsRunning())
}

func TestFires_SurvivePanics(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for real fires")
	}

	repo := appRepo()
	repo.SyncIntervalSeconds = 1
	executor := &fakeExecutor{panic: true}
	s := newTestScheduler(t, Config{Mode: ModeInterval}, newFakeRepos(repo), executor, &fakeJournal{})
	require.NoError(t, s.Start(context.Background()))

	require.Eventually(t, func() bool { return executor.count() >= 2 }, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, s.Stop(context.Background()))
	assert.Empty(t, s.Jobs())
}
