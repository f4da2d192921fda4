package scheduler

import "time"

// JobResponse represents a live sync job.
type JobResponse struct {
	URL             string     `json:"url"`
	IntervalSeconds int        `json:"interval_seconds"`
	Spec            string     `json:"spec"`
	Next            *time.Time `json:"next,omitempty"`
	Prev            *time.Time `json:"prev,omitempty"`
}

// SchedulerResponse represents the scheduler state.
type SchedulerResponse struct {
	Running  bool          `json:"running"`
	AutoSync bool          `json:"auto_sync"`
	Jobs     []JobResponse `json:"jobs"`
}

// LogQuery limits the number of log lines returned.
type LogQuery struct {
	Lines int `query:"lines" validate:"omitempty,gte=0,lte=10000"` // 0 returns the whole log
}

// LogResponse represents the tail of the sync log.
type LogResponse struct {
	Path  string   `json:"path"`
	Lines []string `json:"lines"`
}

// SettingsResponse represents the global settings.
type SettingsResponse struct {
	AutoSync            bool       `json:"auto_sync"`
	DefaultSyncInterval int        `json:"default_sync_interval"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`
}

// SettingsPATCHRequest represents the request payload for updating the global settings.
type SettingsPATCHRequest struct {
	AutoSync            *bool `json:"auto_sync,omitempty"`
	DefaultSyncInterval *int  `json:"default_sync_interval,omitempty" validate:"omitempty,gte=0"`
}
