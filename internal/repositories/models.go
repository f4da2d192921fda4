package repositories

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/pullgit/pullgit/pkg/badgerfx"
)

const (
	prefix = "repository:"

	prefixByURL  = prefix + "url:"
	prefixByName = prefix + "name:"

	settingsKey = "settings:global"
)

type repositoryModel struct {
	URL      string `json:"url"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`

	IsPrivate      bool   `json:"is_private"`
	DeploymentType string `json:"deployment_type"`

	SyncInterval int        `json:"sync_interval"`
	AutoSync     bool       `json:"auto_sync"`
	LastSync     *time.Time `json:"last_sync"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func urlKey(url string) string {
	return prefixByURL + url
}

// names are compared case-insensitively so two repositories cannot share a
// working copy on case-insensitive filesystems.
func nameKey(name string) string {
	return prefixByName + strings.ToLower(name)
}

func (m *repositoryModel) StorageKey() string {
	return urlKey(m.URL)
}

func (m *repositoryModel) StorageIndexes() []string {
	return []string{nameKey(m.Name)}
}

func (m *repositoryModel) MarshalStorage() ([]byte, error) {
	return json.Marshal(m)
}

func (m *repositoryModel) UnmarshalStorage(data []byte) error {
	return json.Unmarshal(data, m)
}

var _ badgerfx.Entity = (*repositoryModel)(nil)

func newRepositoryModel(repo *Repository) *repositoryModel {
	if repo == nil {
		return nil
	}

	return &repositoryModel{
		URL:            repo.URL,
		Name:           repo.Name,
		FullName:       repo.FullName,
		IsPrivate:      repo.IsPrivate,
		DeploymentType: repo.DeploymentType,
		SyncInterval:   repo.SyncIntervalSeconds,
		AutoSync:       repo.AutoSync,
		LastSync:       repo.LastSync,
		CreatedAt:      repo.CreatedAt,
		UpdatedAt:      repo.UpdatedAt,
	}
}

func newRepository(model *repositoryModel) *Repository {
	if model == nil {
		return nil
	}

	return &Repository{
		URL:                 model.URL,
		Name:                model.Name,
		FullName:            model.FullName,
		IsPrivate:           model.IsPrivate,
		DeploymentType:      model.DeploymentType,
		SyncIntervalSeconds: model.SyncInterval,
		AutoSync:            model.AutoSync,
		LastSync:            model.LastSync,
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
	}
}

type settingsModel struct {
	AutoSync        bool      `json:"auto_sync"`
	DefaultInterval int       `json:"default_interval"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (m *settingsModel) StorageKey() string {
	return settingsKey
}

func (m *settingsModel) StorageIndexes() []string {
	return nil
}

func (m *settingsModel) MarshalStorage() ([]byte, error) {
	return json.Marshal(m)
}

func (m *settingsModel) UnmarshalStorage(data []byte) error {
	return json.Unmarshal(data, m)
}

var _ badgerfx.Entity = (*settingsModel)(nil)
