package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/pullgit/pullgit/pkg/badgerfx"
)

// Store persists repository records and global settings in badger.
type Store struct {
	db *badger.DB

	repos    *badgerfx.Repository[*repositoryModel]
	settings *badgerfx.Repository[*settingsModel]
}

func NewStore(db *badger.DB) *Store {
	return &Store{
		db: db,

		repos:    badgerfx.NewRepository(func() *repositoryModel { return new(repositoryModel) }),
		settings: badgerfx.NewRepository(func() *settingsModel { return new(settingsModel) }),
	}
}

// Create stores a new repository. Both the URL and the working copy name must be unused.
func (s *Store) Create(_ context.Context, repo *Repository) error {
	model := newRepositoryModel(repo)

	err := s.db.Update(func(txn *badger.Txn) error {
		exists, err := s.repos.Exists(txn, model.StorageKey())
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s", ErrConflict, model.URL)
		}

		exists, err = s.repos.Exists(txn, nameKey(model.Name))
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: working copy name %q is taken", ErrConflict, model.Name)
		}

		return s.repos.Write(txn, model)
	})

	if err != nil {
		return wrapStorage("failed to create repository", err)
	}

	return nil
}

// GetByURL retrieves a repository by its URL.
func (s *Store) GetByURL(_ context.Context, url string) (*Repository, error) {
	var model *repositoryModel

	err := s.db.View(func(txn *badger.Txn) error {
		found, err := s.repos.Read(txn, urlKey(url))
		if err == nil {
			model = found
		}

		return err
	})

	if err != nil {
		return nil, wrapStorage("failed to get repository by URL", err)
	}

	return newRepository(model), nil
}

// GetByName retrieves a repository by its working copy name.
func (s *Store) GetByName(_ context.Context, name string) (*Repository, error) {
	var model *repositoryModel

	err := s.db.View(func(txn *badger.Txn) error {
		found, err := s.repos.ReadByIndex(txn, nameKey(name))
		if err == nil {
			model = found
		}

		return err
	})

	if err != nil {
		return nil, wrapStorage("failed to get repository by name", err)
	}

	return newRepository(model), nil
}

// List retrieves all repositories ordered by URL.
func (s *Store) List(_ context.Context) ([]Repository, error) {
	var models []*repositoryModel

	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		models, err = s.repos.List(txn, prefixByURL, badger.DefaultIteratorOptions)
		return err
	})

	if err != nil {
		return nil, wrapStorage("failed to list repositories", err)
	}

	repos := make([]Repository, 0, len(models))
	for _, model := range models {
		repos = append(repos, *newRepository(model))
	}

	return repos, nil
}

// Update applies updater to the stored repository inside a single transaction.
func (s *Store) Update(_ context.Context, url string, updater func(*Repository) error) (*Repository, error) {
	var updated *repositoryModel

	err := s.db.Update(func(txn *badger.Txn) error {
		old, err := s.repos.Read(txn, urlKey(url))
		if err != nil {
			return err
		}

		repo := newRepository(old)
		if updErr := updater(repo); updErr != nil {
			return updErr
		}

		if repo.URL != old.URL {
			return fmt.Errorf("%w: repository URL cannot change", ErrNotAllowed)
		}
		if repo.Name != old.Name {
			return fmt.Errorf("%w: repository renames are not allowed", ErrNotAllowed)
		}

		model := newRepositoryModel(repo)
		model.CreatedAt = old.CreatedAt

		if replErr := s.repos.Replace(txn, old, model); replErr != nil {
			return replErr
		}

		updated = model
		return nil
	})

	if err != nil {
		return nil, wrapStorage("failed to update repository", err)
	}

	return newRepository(updated), nil
}

// Delete removes a repository record.
func (s *Store) Delete(_ context.Context, url string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return s.repos.Delete(txn, urlKey(url))
	})

	if err != nil {
		return wrapStorage("failed to delete repository", err)
	}

	return nil
}

// GetSettings returns the stored global settings or ErrNotFound when none were saved yet.
func (s *Store) GetSettings(_ context.Context) (*Settings, error) {
	var model *settingsModel

	err := s.db.View(func(txn *badger.Txn) error {
		found, err := s.settings.Read(txn, settingsKey)
		if err == nil {
			model = found
		}

		return err
	})

	if err != nil {
		return nil, wrapStorage("failed to get settings", err)
	}

	return &Settings{
		AutoSync:            model.AutoSync,
		DefaultSyncInterval: model.DefaultInterval,
		UpdatedAt:           model.UpdatedAt,
	}, nil
}

// SaveSettings replaces the global settings.
func (s *Store) SaveSettings(_ context.Context, settings Settings) error {
	model := &settingsModel{
		AutoSync:        settings.AutoSync,
		DefaultInterval: settings.DefaultSyncInterval,
		UpdatedAt:       settings.UpdatedAt,
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return s.settings.Write(txn, model)
	})

	if err != nil {
		return wrapStorage("failed to save settings", err)
	}

	return nil
}

// wrapStorage keeps domain errors as they are and marks everything else as a storage failure.
func wrapStorage(msg string, err error) error {
	switch {
	case errors.Is(err, badgerfx.ErrNotFound):
		return fmt.Errorf("%s: %w: %w", msg, ErrNotFound, err)
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrNotAllowed),
		errors.Is(err, ErrInvalid):
		return fmt.Errorf("%s: %w", msg, err)
	}

	return fmt.Errorf("%s: %w: %w", msg, ErrStorage, err)
}
