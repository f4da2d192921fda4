package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Service struct {
	repos *Store

	config    Config
	validator *validator.Validate
	logger    *zap.Logger
}

func NewService(repos *Store, config Config, validator *validator.Validate, logger *zap.Logger) *Service {
	return &Service{
		repos: repos,

		config:    config,
		validator: validator,
		logger:    logger,
	}
}

// Add registers a new repository.
func (s *Service) Add(ctx context.Context, draft RepositoryDraft) (*Repository, error) {
	logger := s.logger.With(zap.String("url", draft.URL))

	if err := s.validator.Struct(draft); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	interval := 0
	if draft.SyncIntervalSeconds != nil {
		interval = *draft.SyncIntervalSeconds
	} else {
		settings, err := s.Settings(ctx)
		if err != nil {
			return nil, err
		}
		interval = settings.DefaultSyncInterval
	}

	autoSync := interval > 0
	if draft.AutoSync != nil {
		autoSync = *draft.AutoSync
	}

	now := time.Now()
	repo := &Repository{
		URL:                 draft.URL,
		Name:                draft.Name,
		FullName:            draft.FullName,
		IsPrivate:           draft.IsPrivate,
		DeploymentType:      draft.DeploymentType,
		SyncIntervalSeconds: interval,
		AutoSync:            autoSync,
		LastSync:            nil,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.repos.Create(ctx, repo); err != nil {
		logger.Error("failed to add repository", zap.Error(err))
		return nil, err
	}

	logger.Info("repository added",
		zap.String("name", repo.Name),
		zap.Int("sync_interval", repo.SyncIntervalSeconds),
		zap.Bool("auto_sync", repo.AutoSync))

	return repo, nil
}

// Get retrieves a repository by URL.
func (s *Service) Get(ctx context.Context, url string) (*Repository, error) {
	return s.repos.GetByURL(ctx, url)
}

// Find looks a repository up by working copy name or full name, ignoring case.
func (s *Service) Find(ctx context.Context, name string) (*Repository, error) {
	repo, err := s.repos.GetByName(ctx, name)
	if err == nil {
		return repo, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	repos, err := s.repos.List(ctx)
	if err != nil {
		return nil, err
	}

	found, ok := lo.Find(repos, func(r Repository) bool {
		return strings.EqualFold(r.FullName, name)
	})
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return &found, nil
}

// List retrieves all repositories.
func (s *Service) List(ctx context.Context) ([]Repository, error) {
	s.logger.Debug("listing repositories")

	return s.repos.List(ctx)
}

// Update applies a partial update to the repository identified by url.
func (s *Service) Update(ctx context.Context, url string, update RepositoryUpdate) (*Repository, error) {
	logger := s.logger.With(zap.String("url", url))

	if err := s.validator.Struct(update); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	repo, err := s.repos.Update(ctx, url, func(r *Repository) error {
		if update.FullName != nil {
			r.FullName = *update.FullName
		}
		if update.IsPrivate != nil {
			r.IsPrivate = *update.IsPrivate
		}
		if update.DeploymentType != nil {
			r.DeploymentType = *update.DeploymentType
		}
		if update.SyncIntervalSeconds != nil {
			r.SyncIntervalSeconds = *update.SyncIntervalSeconds
		}
		if update.AutoSync != nil {
			r.AutoSync = *update.AutoSync
		}
		r.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		logger.Error("failed to update repository", zap.Error(err))
		return nil, err
	}

	logger.Info("repository updated")
	return repo, nil
}

// Remove deletes the repository record. The working copy is left on disk.
func (s *Service) Remove(ctx context.Context, url string) error {
	if err := s.repos.Delete(ctx, url); err != nil {
		s.logger.Error("failed to remove repository", zap.String("url", url), zap.Error(err))
		return err
	}

	s.logger.Info("repository removed", zap.String("url", url))
	return nil
}

// MarkSynced records a completed sync. Every call moves lastSync strictly
// forward: a timestamp at or before the stored one lands just after it.
func (s *Service) MarkSynced(ctx context.Context, url string, at time.Time) error {
	_, err := s.repos.Update(ctx, url, func(r *Repository) error {
		if r.LastSync != nil && !at.After(*r.LastSync) {
			s.logger.Warn("sync time not after previous sync, advancing past it",
				zap.String("url", url),
				zap.Time("at", at),
				zap.Time("last_sync", *r.LastSync))
			at = r.LastSync.Add(time.Nanosecond)
		}
		r.LastSync = &at
		r.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record sync time: %w", err)
	}

	return nil
}

// Settings returns the global settings, falling back to the configured defaults.
func (s *Service) Settings(ctx context.Context) (Settings, error) {
	settings, err := s.repos.GetSettings(ctx)
	if errors.Is(err, ErrNotFound) {
		return Settings{
			AutoSync:            s.config.DefaultAutoSync,
			DefaultSyncInterval: s.config.DefaultSyncInterval,
		}, nil
	}
	if err != nil {
		return Settings{}, err
	}

	return *settings, nil
}

// UpdateSettings applies a partial update to the global settings.
func (s *Service) UpdateSettings(ctx context.Context, update SettingsUpdate) (Settings, error) {
	if err := s.validator.Struct(update); err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	settings, err := s.Settings(ctx)
	if err != nil {
		return Settings{}, err
	}

	if update.AutoSync != nil {
		settings.AutoSync = *update.AutoSync
	}
	if update.DefaultSyncInterval != nil {
		settings.DefaultSyncInterval = *update.DefaultSyncInterval
	}
	settings.UpdatedAt = time.Now()

	if saveErr := s.repos.SaveSettings(ctx, settings); saveErr != nil {
		s.logger.Error("failed to save settings", zap.Error(saveErr))
		return Settings{}, saveErr
	}

	s.logger.Info("settings updated",
		zap.Bool("auto_sync", settings.AutoSync),
		zap.Int("default_sync_interval", settings.DefaultSyncInterval))

	return settings, nil
}
