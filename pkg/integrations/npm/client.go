package npm

import (
	"bytes"
	"context"
	"encoding/json"
	"maps"
	"slices"
	"time"

	"github.com/matzehuels/tipjar/pkg/cache"
	"github.com/matzehuels/tipjar/pkg/integrations"
)

// DefaultBaseURL is the public npm registry.
const DefaultBaseURL = "https://registry.npmjs.org"

// Package is the part of a registry document the funding pipeline needs.
type Package struct {
	Name            string          `json:"name"`
	Latest          string          `json:"latest"`
	Dependencies    []string        `json:"dependencies,omitempty"`
	DevDependencies []string        `json:"dev_dependencies,omitempty"`
	Repository      json.RawMessage `json:"repository,omitempty"`
}

// Repo returns the GitHub repository declared by the package.
//
// Only an object-valued repository field ({"type": "git", "url": "..."}) is
// considered; the bare-string shorthand yields ok=false. The url must match
// github.com/{owner}/{repo}.git.
func (p *Package) Repo() (integrations.Repo, bool) {
	raw := bytes.TrimSpace(p.Repository)
	if len(raw) == 0 || raw[0] != '{' {
		return integrations.Repo{}, false
	}
	var field struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &field); err != nil {
		return integrations.Repo{}, false
	}
	return integrations.ExtractGitHubRepo(field.URL)
}

// Client fetches package documents from an npm registry.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a registry client. An empty baseURL selects
// [DefaultBaseURL].
func NewClient(c cache.Cache, cacheTTL time.Duration, baseURL string, opts ...integrations.Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Client:  integrations.NewClient(c, "npm", cacheTTL, nil, opts...),
		baseURL: baseURL,
	}
}

// FetchPackage retrieves the registry document for name. The name is used
// verbatim (percent-encoded); callers sanitize it first.
// If refresh is true, the response cache is bypassed.
func (c *Client) FetchPackage(ctx context.Context, name string, refresh bool) (*Package, error) {
	var pkg Package
	err := c.Cached(ctx, c.Key(name), refresh, &pkg, func() error {
		return c.fetch(ctx, name, &pkg)
	})
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (c *Client) fetch(ctx context.Context, name string, pkg *Package) error {
	var doc registryResponse
	if err := c.Get(ctx, integrations.JoinURL(c.baseURL, name), &doc); err != nil {
		return err
	}

	*pkg = Package{
		Name:       doc.Name,
		Latest:     doc.DistTags.Latest,
		Repository: doc.Repository,
	}
	if pkg.Name == "" {
		pkg.Name = name
	}

	raw, ok := doc.Versions[doc.DistTags.Latest]
	if !ok {
		return nil
	}
	var v versionDetails
	if err := json.Unmarshal(raw, &v); err != nil {
		// A version record of the wrong shape has no usable deps; the
		// top-level repository still identifies the owners.
		return nil
	}
	pkg.Dependencies = objectKeys(v.Dependencies)
	pkg.DevDependencies = objectKeys(v.DevDependencies)
	if len(pkg.Repository) == 0 {
		pkg.Repository = v.Repository
	}
	return nil
}

type registryResponse struct {
	Name       string                     `json:"name"`
	DistTags   distTags                   `json:"dist-tags"`
	Versions   map[string]json.RawMessage `json:"versions"`
	Repository json.RawMessage            `json:"repository"`
}

type distTags struct {
	Latest string `json:"latest"`
}

type versionDetails struct {
	Repository      json.RawMessage `json:"repository"`
	Dependencies    json.RawMessage `json:"dependencies"`
	DevDependencies json.RawMessage `json:"devDependencies"`
}

// objectKeys returns the sorted keys of a JSON object. Old registry
// records carry [] or other non-object values here, which count as empty.
func objectKeys(raw json.RawMessage) []string {
	var m map[string]json.RawMessage
	if json.Unmarshal(raw, &m) != nil {
		return nil
	}
	return slices.Sorted(maps.Keys(m))
}
