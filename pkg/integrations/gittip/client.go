package gittip

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/tipjar/pkg/cache"
	errs "github.com/matzehuels/tipjar/pkg/errors"
	"github.com/matzehuels/tipjar/pkg/httputil"
	"github.com/matzehuels/tipjar/pkg/integrations"
)

// DefaultBaseURL is the donation platform probed for profiles.
const DefaultBaseURL = "https://www.gittip.com"

// Client probes a Gittip-style donation platform for GitHub-linked profiles.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a donation platform client. An empty baseURL selects
// [DefaultBaseURL].
func NewClient(c cache.Cache, cacheTTL time.Duration, baseURL string, opts ...integrations.Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Client:  integrations.NewClient(c, "gittip", cacheTTL, nil, opts...),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// probe is the cached outcome of a lookup. Absent profiles are cached too so
// a restart does not re-probe every login.
type probe struct {
	Handle string `json:"handle"`
	Found  bool   `json:"found"`
}

// Lookup returns the funding handle of the GitHub user, or "" with a
// NOT_FOUND error when the platform has no profile for them.
//
// The platform answers HEAD /on/github/{username}/ with a 302 to the
// profile. The handle is the Location value with every "/" removed, so
// "/on/github/alice/" becomes "ongithubalice".
func (c *Client) Lookup(ctx context.Context, username string, refresh bool) (string, error) {
	var p probe
	err := c.Cached(ctx, c.Key(username), refresh, &p, func() error {
		var err error
		p, err = c.probe(ctx, username)
		return err
	})
	if err != nil {
		return "", err
	}
	if !p.Found {
		return "", errs.New(errs.ErrCodeNotFound, "no funding profile for %s", username)
	}
	return p.Handle, nil
}

func (c *Client) probe(ctx context.Context, username string) (probe, error) {
	url := integrations.JoinURL(c.baseURL, "on", "github", username) + "/"
	resp, err := c.Head(ctx, url)
	if err != nil {
		return probe{}, err
	}

	if resp.StatusCode != http.StatusFound {
		if resp.StatusCode >= 500 {
			return probe{}, httputil.Retryable(errs.New(errs.ErrCodeUpstreamStatus, "HEAD %s: status %d", url, resp.StatusCode))
		}
		return probe{}, nil
	}
	handle := strings.ReplaceAll(resp.Header.Get("Location"), "/", "")
	if handle == "" {
		return probe{}, nil
	}
	return probe{Handle: handle, Found: true}, nil
}
