package github

import (
	"context"
	"time"

	"github.com/matzehuels/tipjar/pkg/cache"
	errs "github.com/matzehuels/tipjar/pkg/errors"
	"github.com/matzehuels/tipjar/pkg/integrations"
)

// DefaultBaseURL is the public GitHub REST API.
const DefaultBaseURL = "https://api.github.com"

// Client provides access to the GitHub API for collaborator discovery.
// It handles HTTP requests with caching, automatic retries, and optional authentication.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a GitHub API client with optional authentication.
// Pass an empty string for token to use unauthenticated requests (lower rate limits).
// An empty baseURL selects [DefaultBaseURL].
func NewClient(c cache.Cache, cacheTTL time.Duration, baseURL, token string, opts ...integrations.Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	headers := map[string]string{"Accept": "application/vnd.github.v3+json"}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}

	return &Client{
		Client:  integrations.NewClient(c, "github", cacheTTL, headers, opts...),
		baseURL: baseURL,
	}
}

// Collaborators returns the logins of the collaborators of owner/repo in the
// order GitHub lists them. Duplicate logins are dropped.
// If refresh is true, cached data is bypassed.
func (c *Client) Collaborators(ctx context.Context, owner, repo string, refresh bool) ([]string, error) {
	var logins []string
	err := c.Cached(ctx, c.Key("collaborators", owner, repo), refresh, &logins, func() error {
		var err error
		logins, err = c.fetchCollaborators(ctx, owner, repo)
		return err
	})
	if err != nil {
		return nil, err
	}
	return logins, nil
}

func (c *Client) fetchCollaborators(ctx context.Context, owner, repo string) ([]string, error) {
	var data []collaboratorResponse
	url := integrations.JoinURL(c.baseURL, "repos", owner, repo, "collaborators")
	if err := c.Get(ctx, url, &data); err != nil {
		if errs.Is(err, errs.ErrCodeNotFound) {
			return nil, errs.Wrap(errs.ErrCodeNotFound, err, "github repo %s/%s", owner, repo)
		}
		return nil, err
	}

	seen := make(map[string]bool, len(data))
	logins := make([]string, 0, len(data))
	for _, cr := range data {
		if cr.Login == "" || seen[cr.Login] {
			continue
		}
		seen[cr.Login] = true
		logins = append(logins, cr.Login)
	}
	return logins, nil
}
