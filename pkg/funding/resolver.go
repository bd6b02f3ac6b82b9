package funding

import (
	"context"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/tipjar/pkg/errors"
	"github.com/matzehuels/tipjar/pkg/fanout"
	"github.com/matzehuels/tipjar/pkg/integrations/github"
	"github.com/matzehuels/tipjar/pkg/integrations/npm"
	"github.com/matzehuels/tipjar/pkg/observability"
)

// Flow names reported to observability hooks.
const (
	FlowPackage = "npm"
	FlowRepo    = "github"
)

// Registry fetches package metadata.
type Registry interface {
	FetchPackage(ctx context.Context, name string, refresh bool) (*npm.Package, error)
}

// Hosting lists repository collaborators.
type Hosting interface {
	Collaborators(ctx context.Context, owner, repo string, refresh bool) ([]string, error)
}

// Donations maps a GitHub login to a funding handle.
type Donations interface {
	Lookup(ctx context.Context, username string, refresh bool) (string, error)
}

// Result is the ranked outcome of one resolution.
type Result struct {
	Subject string  `json:"subject"`
	Users   []Entry `json:"users"`
}

// Option customizes a [Resolver].
type Option func(*Resolver)

// WithLogger sets the logger used for swallowed upstream failures.
func WithLogger(l *log.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithFanoutLimit bounds how many lookups of one fan-out run at once.
// Zero or negative means unbounded.
func WithFanoutLimit(n int) Option {
	return func(r *Resolver) { r.limit = n }
}

// WithRefresh makes every upstream call bypass the response cache tier.
// The in-process caches are still used.
func WithRefresh(refresh bool) Option {
	return func(r *Resolver) { r.refresh = refresh }
}

// Resolver discovers funding handles for packages and repositories.
// It is safe for concurrent use; identical in-flight lookups are shared.
type Resolver struct {
	registry  Registry
	hosting   Hosting
	donations Donations
	caches    *Caches
	logger    *log.Logger
	limit     int
	refresh   bool
}

// NewResolver creates a Resolver. If caches is nil, fresh caches are created.
func NewResolver(registry Registry, hosting Hosting, donations Donations, caches *Caches, opts ...Option) *Resolver {
	if caches == nil {
		caches = NewCaches()
	}
	r := &Resolver{
		registry:  registry,
		hosting:   hosting,
		donations: donations,
		caches:    caches,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Caches returns the caches backing the resolver.
func (r *Resolver) Caches() *Caches { return r.caches }

// ByPackage ranks the funding handles of the collaborators behind an npm
// package and its direct dependencies. Upstream failures reduce the result
// instead of failing it; the error is non-nil only when ctx ends first.
func (r *Resolver) ByPackage(ctx context.Context, name string) (Result, error) {
	name = errs.Sanitize(name)
	if name == "" {
		return emptyResult(name), nil
	}

	start := time.Now()
	observability.Resolve().OnResolveStart(ctx, FlowPackage, name)
	res, err := r.caches.Views.Do(ctx, name, func(ctx context.Context) Result {
		return r.packageView(ctx, name)
	})
	if err != nil {
		observability.Resolve().OnResolveComplete(ctx, FlowPackage, name, 0, time.Since(start))
		return emptyResult(name), err
	}
	observability.Resolve().OnResolveComplete(ctx, FlowPackage, name, len(res.Users), time.Since(start))
	return res, nil
}

// ByRepo ranks the funding handles of the collaborators of owner/repo.
// Like [Resolver.ByPackage], only ctx ending produces an error.
func (r *Resolver) ByRepo(ctx context.Context, owner, repo string) (Result, error) {
	coord := github.Repo{Owner: errs.Sanitize(owner), Name: errs.Sanitize(repo)}
	subject := coord.String()
	if coord.Owner == "" || coord.Name == "" {
		return emptyResult(subject), nil
	}

	start := time.Now()
	observability.Resolve().OnResolveStart(ctx, FlowRepo, subject)
	handles, err := r.caches.Repos.Do(ctx, coord, func(ctx context.Context) []string {
		return r.repoHandles(ctx, coord)
	})
	if err != nil {
		observability.Resolve().OnResolveComplete(ctx, FlowRepo, subject, 0, time.Since(start))
		return emptyResult(subject), err
	}
	res := Result{Subject: subject, Users: Rank(Aggregate(handles))}
	observability.Resolve().OnResolveComplete(ctx, FlowRepo, subject, len(res.Users), time.Since(start))
	return res, nil
}

func emptyResult(subject string) Result {
	return Result{Subject: subject, Users: []Entry{}}
}

func (r *Resolver) packageView(ctx context.Context, name string) Result {
	pkg := r.pkg(ctx, name)
	if pkg == nil {
		return emptyResult(name)
	}
	handles := fanout.FlatMap(ctx, Candidates(pkg), r.limit, r.ownerHandles)
	return Result{Subject: name, Users: Rank(Aggregate(handles))}
}

// Candidates returns the package itself followed by the sorted union of its
// latest version's dependencies and devDependencies.
func Candidates(pkg *npm.Package) []string {
	deps := slices.Concat(pkg.Dependencies, pkg.DevDependencies)
	slices.Sort(deps)
	deps = slices.Compact(deps)
	deps = slices.DeleteFunc(deps, func(d string) bool { return d == pkg.Name })
	return append([]string{pkg.Name}, deps...)
}

func (r *Resolver) pkg(ctx context.Context, name string) *npm.Package {
	pkg, _ := r.caches.Packages.Do(ctx, name, func(ctx context.Context) *npm.Package {
		pkg, err := r.registry.FetchPackage(ctx, name, r.refresh)
		if err != nil {
			r.logger.Debug("package lookup failed", "package", name, "err", err)
			return nil
		}
		return pkg
	})
	return pkg
}

func (r *Resolver) ownerHandles(ctx context.Context, name string) []string {
	handles, _ := r.caches.Owners.Do(ctx, name, func(ctx context.Context) []string {
		pkg := r.pkg(ctx, name)
		if pkg == nil {
			return nil
		}
		repo, ok := pkg.Repo()
		if !ok {
			r.logger.Debug("no github repository", "package", name)
			return nil
		}
		handles, _ := r.caches.Repos.Do(ctx, repo, func(ctx context.Context) []string {
			return r.repoHandles(ctx, repo)
		})
		return handles
	})
	return handles
}

func (r *Resolver) repoHandles(ctx context.Context, repo github.Repo) []string {
	logins, err := r.hosting.Collaborators(ctx, repo.Owner, repo.Name, r.refresh)
	if err != nil {
		r.logger.Debug("collaborator lookup failed", "repo", repo, "err", err)
		return nil
	}
	handles := fanout.Map(ctx, logins, r.limit, r.handle)
	return slices.DeleteFunc(handles, func(h string) bool { return h == "" })
}

func (r *Resolver) handle(ctx context.Context, login string) string {
	h, _ := r.caches.Handles.Do(ctx, login, func(ctx context.Context) string {
		h, err := r.donations.Lookup(ctx, login, r.refresh)
		if err != nil {
			if !errs.Is(err, errs.ErrCodeNotFound) {
				r.logger.Debug("funding lookup failed", "user", login, "err", err)
			}
			return ""
		}
		return h
	})
	return h
}
