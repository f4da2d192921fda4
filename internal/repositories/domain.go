package repositories

import (
	"time"
)

// RepositoryDraft describes a repository to be added.
type RepositoryDraft struct {
	URL      string `validate:"required,url"`
	Name     string `validate:"required,max=255,workdir"` // Working copy directory name
	FullName string `validate:"required,max=255"`         // owner/name

	IsPrivate      bool
	DeploymentType string // Opaque tag handed to the deployment catalog

	// SyncIntervalSeconds of nil takes the global default; 0 means manual only.
	SyncIntervalSeconds *int `validate:"omitempty,gte=0"`
	// AutoSync of nil is derived from the effective interval.
	AutoSync *bool
}

// Repository is a mirrored repository record, keyed by URL.
type Repository struct {
	URL      string
	Name     string
	FullName string

	IsPrivate      bool
	DeploymentType string

	SyncIntervalSeconds int
	AutoSync            bool
	LastSync            *time.Time // Last completed clone or pull

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SyncInterval returns the configured interval as a duration.
func (r Repository) SyncInterval() time.Duration {
	return time.Duration(r.SyncIntervalSeconds) * time.Second
}

// Schedulable reports whether the repository should have a background job.
func (r Repository) Schedulable() bool {
	return r.AutoSync && r.SyncIntervalSeconds > 0
}

// RepositoryUpdate is a partial update; nil fields are left unchanged.
// URL and Name are immutable: the working copy location depends on them.
type RepositoryUpdate struct {
	FullName            *string `validate:"omitempty,min=1,max=255"`
	IsPrivate           *bool
	DeploymentType      *string
	SyncIntervalSeconds *int `validate:"omitempty,gte=0"`
	AutoSync            *bool
}

// Settings are the global options shared by all repositories.
type Settings struct {
	AutoSync            bool
	DefaultSyncInterval int
	UpdatedAt           time.Time
}

type SettingsUpdate struct {
	AutoSync            *bool
	DefaultSyncInterval *int `validate:"omitempty,gte=0"`
}
