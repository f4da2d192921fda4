package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/pullgit/pullgit/internal/repositories"
	"github.com/pullgit/pullgit/internal/syncer"
	"github.com/robfig/cron/v3"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// RepositorySource provides the repositories and the global auto-sync switch.
type RepositorySource interface {
	List(ctx context.Context) ([]repositories.Repository, error)
	Get(ctx context.Context, url string) (*repositories.Repository, error)
	Settings(ctx context.Context) (repositories.Settings, error)
}

// Executor runs one sync attempt.
type Executor interface {
	SyncRepository(ctx context.Context, repo repositories.Repository) (syncer.Result, error)
}

// Journal receives one line per scheduling transition.
type Journal interface {
	Append(message string, fields ...zap.Field)
}

// Job is a snapshot of a live sync job.
type Job struct {
	URL      string
	Interval time.Duration
	Spec     string
	Next     time.Time
	Prev     time.Time
}

type job struct {
	id       cron.EntryID
	interval time.Duration
	spec     string
	schedule cron.Schedule
}

// Service keeps at most one recurring sync job per repository URL.
type Service struct {
	config   Config
	repos    RepositorySource
	executor Executor
	journal  Journal

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
	jobs    map[string]job

	logger *zap.Logger
}

func NewService(config Config, repos RepositorySource, executor Executor, journal Journal, logger *zap.Logger) *Service {
	cronLog := newCronLogger(logger)

	return &Service{
		config:   config,
		repos:    repos,
		executor: executor,
		journal:  journal,

		cron: cron.New(
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		jobs: make(map[string]job),

		logger: logger,
	}
}

// Start schedules every eligible repository unless auto-sync is disabled globally.
// Calling it again reschedules without duplicating jobs.
func (s *Service) Start(ctx context.Context) error {
	settings, err := s.repos.Settings(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStore, err)
	}

	if !settings.AutoSync {
		s.journal.Append("Auto-sync is disabled")
		return nil
	}

	repos, err := s.repos.List(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStore, err)
	}

	s.mu.Lock()
	if !s.running {
		s.cron.Start()
		s.running = true
	}
	s.mu.Unlock()

	var errs []error
	for _, repo := range lo.Filter(repos, func(r repositories.Repository, _ int) bool { return r.Schedulable() }) {
		if scheduleErr := s.ScheduleRepository(repo); scheduleErr != nil {
			errs = append(errs, scheduleErr)
		}
	}

	if count := s.count(); count > 0 {
		s.journal.Append(fmt.Sprintf("Scheduler started with %d active repository(ies)", count))
	}

	return errors.Join(errs...)
}

// ScheduleRepository registers a job for repo, replacing any existing job for its URL.
func (s *Service) ScheduleRepository(repo repositories.Repository) error {
	schedule, spec, err := Schedule(s.config.Mode, repo.SyncIntervalSeconds)
	if err != nil {
		s.journal.Append(fmt.Sprintf("Failed to schedule %s: %s", repo.FullName, err.Error()),
			zap.String("url", repo.URL))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return fmt.Errorf("%w: cannot schedule %s", ErrSchedulerStopped, repo.URL)
	}

	s.removeLocked(repo.URL)

	url := repo.URL
	id := s.cron.Schedule(schedule, cron.FuncJob(func() { s.fire(url) }))
	s.jobs[url] = job{
		id:       id,
		interval: repo.SyncInterval(),
		spec:     spec,
		schedule: schedule,
	}
	scheduledJobs.Set(float64(len(s.jobs)))

	s.journal.Append(
		fmt.Sprintf("Scheduled %s - every %d seconds", repo.FullName, repo.SyncIntervalSeconds),
		zap.String("url", url),
		zap.String("spec", spec),
	)

	return nil
}

// StopRepository cancels the job for url. It is a no-op when there is none.
func (s *Service) StopRepository(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(url)
}

// RestartRepository drops the job for repo and reschedules it if it is still eligible.
func (s *Service) RestartRepository(repo repositories.Repository) error {
	s.StopRepository(repo.URL)

	if !repo.Schedulable() || !s.IsRunning() {
		return nil
	}

	return s.ScheduleRepository(repo)
}

// Stop cancels every job. Fires already running are not interrupted; Stop waits
// for them until ctx is done.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	for url, j := range s.jobs {
		s.cron.Remove(j.id)
		delete(s.jobs, url)
	}
	scheduledJobs.Set(0)

	wasRunning := s.running
	s.running = false
	stopped := s.cron.Stop()
	s.mu.Unlock()

	if wasRunning {
		s.journal.Append("Scheduler stopped")
	}

	select {
	case <-stopped.Done():
		return nil
	case <-ctx.Done():
		s.logger.Warn("sync still running after scheduler stop")
		return fmt.Errorf("failed to wait for running syncs: %w", ctx.Err())
	}
}

// IsRunning reports whether the scheduler has been started and not stopped since.
func (s *Service) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// HasJob reports whether url has a live job.
func (s *Service) HasJob(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.jobs[url]
	return ok
}

// Jobs lists the live jobs ordered by URL.
func (s *Service) Jobs() []Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := make([]Job, 0, len(s.jobs))
	for url, j := range s.jobs {
		entry := s.cron.Entry(j.id)
		jobs = append(jobs, Job{
			URL:      url,
			Interval: j.interval,
			Spec:     j.spec,
			Next:     entry.Next,
			Prev:     entry.Prev,
		})
	}

	sort.Slice(jobs, func(i, k int) bool { return jobs[i].URL < jobs[k].URL })

	return jobs
}

func (s *Service) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.jobs)
}

func (s *Service) removeLocked(url string) {
	j, ok := s.jobs[url]
	if !ok {
		return
	}

	s.cron.Remove(j.id)
	delete(s.jobs, url)
	scheduledJobs.Set(float64(len(s.jobs)))

	s.journal.Append("Stopped scheduling for: "+url, zap.String("url", url))
}

// fire runs one scheduled sync. Errors end here; the job keeps its schedule.
func (s *Service) fire(url string) {
	firesTotal.Inc()

	// Not derived from any request: stopping the job must not cancel a running sync.
	ctx := context.Background()

	repo, err := s.repos.Get(ctx, url)
	if errors.Is(err, repositories.ErrNotFound) {
		s.logger.Info("repository removed, dropping its job", zap.String("url", url))
		s.StopRepository(url)
		return
	}
	if err != nil {
		s.journal.Append(fmt.Sprintf("Error syncing %s: %s", url, err.Error()), zap.String("url", url))
		return
	}

	if !repo.Schedulable() {
		s.StopRepository(url)
		return
	}

	if _, syncErr := s.executor.SyncRepository(ctx, *repo); syncErr != nil {
		s.logger.Debug("scheduled sync failed", zap.String("url", url), zap.Error(syncErr))
	}
}
