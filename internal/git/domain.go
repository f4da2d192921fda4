package git

import (
	"github.com/go-git/go-git/v6/plumbing/transport"
	"github.com/go-git/go-git/v6/plumbing/transport/http"
)

// Credential authenticates HTTPS remotes.
type Credential struct {
	Username string
	Token    string
}

func (c *Credential) authMethod() transport.AuthMethod {
	if c == nil || c.Token == "" {
		return nil
	}

	return &http.BasicAuth{
		Username: c.Username,
		Password: c.Token,
	}
}

// CloneRequest represents the request to clone a repository.
type CloneRequest struct {
	URL        string      // Git repository URL
	Directory  string      // Directory to clone into; must not exist
	Credential *Credential // Optional
}

// PullRequest represents the request to fast-forward a working copy.
type PullRequest struct {
	Path       string      // Working copy path
	Credential *Credential // Optional
}
