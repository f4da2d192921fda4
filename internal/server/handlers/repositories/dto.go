package repositories

import (
	"time"

	"github.com/pullgit/pullgit/internal/deployments"
	"github.com/pullgit/pullgit/internal/repositories"
	deploymentsHandler "github.com/pullgit/pullgit/internal/server/handlers/deployments"
	"github.com/pullgit/pullgit/internal/syncer"
)

// POSTRequest represents the request payload for adding a repository.
// Name, full name and visibility are looked up on GitHub when omitted.
type POSTRequest struct {
	URL            string `json:"url"                       validate:"required,url"`
	Name           string `json:"name,omitempty"            validate:"omitempty,max=255"`
	FullName       string `json:"full_name,omitempty"       validate:"omitempty,max=255"`
	IsPrivate      *bool  `json:"is_private,omitempty"`
	DeploymentType string `json:"deployment_type,omitempty" validate:"deployment_type"`
	SyncInterval   *int   `json:"sync_interval,omitempty"   validate:"omitempty,gte=0"` // Seconds; 0 disables scheduled syncs
	AutoSync       *bool  `json:"auto_sync,omitempty"`
}

// PATCHRequest represents the request payload for updating a repository.
type PATCHRequest struct {
	FullName       *string `json:"full_name,omitempty"       validate:"omitempty,min=1,max=255"`
	IsPrivate      *bool   `json:"is_private,omitempty"`
	DeploymentType *string `json:"deployment_type,omitempty" validate:"omitempty,deployment_type"`
	SyncInterval   *int    `json:"sync_interval,omitempty"   validate:"omitempty,gte=0"`
	AutoSync       *bool   `json:"auto_sync,omitempty"`
}

// RepositoryResponse represents the response payload for a repository.
type RepositoryResponse struct {
	URL            string     `json:"url"`
	Name           string     `json:"name"`
	FullName       string     `json:"full_name"`
	IsPrivate      bool       `json:"is_private"`
	DeploymentType string     `json:"deployment_type,omitempty"`
	SyncInterval   int        `json:"sync_interval"`
	AutoSync       bool       `json:"auto_sync"`
	Scheduled      bool       `json:"scheduled"`
	LastSync       *time.Time `json:"last_sync,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// SyncQuery selects the repositories of a batch sync.
type SyncQuery struct {
	Name string `query:"name" validate:"omitempty,max=255"` // Name or full name; empty syncs all repositories
}

// SyncResponse represents the outcome of one sync attempt.
type SyncResponse struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	Outcome    string    `json:"outcome"`          // cloned, pulled or failed
	Reason     string    `json:"reason,omitempty"` // Failure class
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// CommitResponse summarizes the latest commit of a working copy.
type CommitResponse struct {
	Hash    string    `json:"hash"`
	Message string    `json:"message"`
	Author  string    `json:"author"`
	When    time.Time `json:"when"`
}

// StatusResponse represents the state of a working copy.
type StatusResponse struct {
	URL          string          `json:"url"`
	Name         string          `json:"name"`
	Path         string          `json:"path"`
	Cloned       bool            `json:"cloned"`
	Branch       string          `json:"branch,omitempty"`
	Dirty        bool            `json:"dirty"`
	Modified     int             `json:"modified"`
	Created      int             `json:"created"`
	Deleted      int             `json:"deleted"`
	LatestCommit *CommitResponse `json:"latest_commit,omitempty"`
	LastSync     *time.Time      `json:"last_sync,omitempty"`
	Message      string          `json:"message,omitempty"`
}

// DeploymentResponse represents the metadata handed to the deployment step.
type DeploymentResponse struct {
	Type     deploymentsHandler.TypeResponse `json:"type"`
	Name     string                          `json:"name"`
	FullName string                          `json:"full_name"`
	Path     string                          `json:"path"`
	Command  string                          `json:"command"`
}

func toRepositoryResponse(repo *repositories.Repository, scheduled bool) RepositoryResponse {
	return RepositoryResponse{
		URL:            repo.URL,
		Name:           repo.Name,
		FullName:       repo.FullName,
		IsPrivate:      repo.IsPrivate,
		DeploymentType: repo.DeploymentType,
		SyncInterval:   repo.SyncIntervalSeconds,
		AutoSync:       repo.AutoSync,
		Scheduled:      scheduled,
		LastSync:       repo.LastSync,
		CreatedAt:      repo.CreatedAt,
		UpdatedAt:      repo.UpdatedAt,
	}
}

func toSyncResponse(result syncer.Result) SyncResponse {
	response := SyncResponse{
		ID:         result.ID.String(),
		URL:        result.URL,
		Name:       result.Name,
		Path:       result.Path,
		Outcome:    string(result.Outcome),
		Reason:     string(result.Reason),
		StartedAt:  result.StartedAt,
		FinishedAt: result.FinishedAt,
	}
	if result.Err != nil {
		response.Error = result.Err.Error()
	}

	return response
}

func toStatusResponse(status *syncer.Status) StatusResponse {
	response := StatusResponse{
		URL:      status.URL,
		Name:     status.Name,
		Path:     status.Path,
		Cloned:   true,
		Branch:   status.Branch,
		Dirty:    status.Dirty,
		Modified: status.Modified,
		Created:  status.Created,
		Deleted:  status.Deleted,
		LastSync: status.LastSync,
	}
	if status.LatestCommit != nil {
		response.LatestCommit = &CommitResponse{
			Hash:    status.LatestCommit.Hash,
			Message: status.LatestCommit.Message,
			Author:  status.LatestCommit.Author,
			When:    status.LatestCommit.When,
		}
	}

	return response
}

func toDeploymentResponse(plan *deployments.Plan) DeploymentResponse {
	return DeploymentResponse{
		Type:     deploymentsHandler.ToTypeResponse(plan.Type),
		Name:     plan.Repository,
		FullName: plan.FullName,
		Path:     plan.Path,
		Command:  plan.Command,
	}
}
