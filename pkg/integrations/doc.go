// Package integrations provides the shared HTTP client for the upstream
// APIs funding discovery depends on.
//
// # Overview
//
// Each upstream has its own subpackage:
//
//   - [npm]: npm registry package documents
//   - [github]: GitHub collaborators listing
//   - [gittip]: donation platform profile probe
//
// # Client Pattern
//
// All upstream clients embed [*Client] and follow a consistent pattern:
//
//	client := npm.NewClient(respCache, 24*time.Hour, "")
//	pkg, err := client.FetchPackage(ctx, "express", false) // false = use cache
//
// Clients handle:
//   - HTTP requests with retry of transient failures
//   - Response caching through a [cache.Cache] tier
//   - API-specific parsing and normalization
//
// # Shared Infrastructure
//
// [Client.Cached] wraps a fetch with the response cache and retry policy.
// [Client.Get] decodes JSON responses and maps statuses to coded errors
// from pkg/errors: 404 is NOT_FOUND, 5xx is a retryable UPSTREAM_STATUS, a
// GitHub 403 with an exhausted quota is RATE_LIMITED. Transport failures are
// NETWORK_ERROR or TIMEOUT. [Client.Head] issues a HEAD request without
// following redirects.
//
// [ExtractGitHubRepo] pulls an owner/name pair out of a repository URL.
//
// [npm]: github.com/matzehuels/tipjar/pkg/integrations/npm
// [github]: github.com/matzehuels/tipjar/pkg/integrations/github
// [gittip]: github.com/matzehuels/tipjar/pkg/integrations/gittip
package integrations
