package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"
	"go.uber.org/zap"
)

// Client resolves repository metadata through the GitHub REST API.
//
// Requests pass through an ETag cache and a secondary rate limit guard.
type Client struct {
	gh *gh.Client

	logger *zap.Logger
}

func NewClient(config Config, logger *zap.Logger) (*Client, error) {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)

	client := gh.NewClient(rateLimitClient)
	if config.Token != "" {
		client = client.WithAuthToken(config.Token)
	}

	if config.BaseURL != "" {
		base := config.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}

		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("failed to parse GitHub base URL: %w", err)
		}
		client.BaseURL = u
	}

	return &Client{
		gh: client,

		logger: logger,
	}, nil
}

// Resolve fetches the metadata of the repository behind a GitHub URL.
func (c *Client) Resolve(ctx context.Context, repoURL string) (*Metadata, error) {
	owner, name, err := ParseURL(repoURL)
	if err != nil {
		return nil, err
	}

	repo, resp, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		var errResp *gh.ErrorResponse
		if errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, owner, name)
		}

		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if resp != nil {
		c.logger.Debug("github api call",
			zap.String("repository", owner+"/"+name),
			zap.Int("rate_remaining", resp.Rate.Remaining),
			zap.Int("rate_limit", resp.Rate.Limit))
	}

	meta := &Metadata{
		Owner:         repo.GetOwner().GetLogin(),
		Name:          repo.GetName(),
		FullName:      repo.GetFullName(),
		Description:   repo.GetDescription(),
		IsPrivate:     repo.GetPrivate(),
		DefaultBranch: repo.GetDefaultBranch(),
		CloneURL:      repo.GetCloneURL(),
		SSHURL:        repo.GetSSHURL(),
	}
	if repo.PushedAt != nil {
		pushedAt := repo.GetPushedAt().Time
		meta.PushedAt = &pushedAt
	}

	return meta, nil
}
