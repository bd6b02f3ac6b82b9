// Package funding discovers and ranks donation platform handles for the
// people behind npm packages and GitHub repositories.
//
// # Flows
//
// [Resolver.ByPackage] fetches a package, takes the package itself plus the
// union of its latest version's dependencies and devDependencies, and for
// each candidate in parallel resolves repository, collaborators and funding
// handles. Only one level of dependencies is visited.
//
// [Resolver.ByRepo] resolves the collaborators of a single repository.
//
// Both flows [Aggregate] the handles (each resolution path counts once) and
// [Rank] them by weight.
//
// # Failure Model
//
// Upstream errors never fail a resolution. A package that cannot be fetched,
// has no GitHub repository, or whose collaborators cannot be listed simply
// contributes nothing. Failures are logged at debug level.
//
// # Caching
//
// Every intermediate lookup is memoized in [Caches] for the lifetime of the
// value, including failures. Concurrent identical lookups share one upstream
// call. The upstream clients may additionally use a TTL-bounded response
// cache (see package cache).
package funding
