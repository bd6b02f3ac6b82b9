// Package api serves the tipjar web front-end and its JSON API.
package api

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/tipjar/pkg/funding"
)

// Resolver is the part of [funding.Resolver] the handlers use.
type Resolver interface {
	ByPackage(ctx context.Context, name string) (funding.Result, error)
	ByRepo(ctx context.Context, owner, repo string) (funding.Result, error)
}

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Resolver Resolver
	// Stats reports memo sizes for the health endpoint. Optional.
	Stats func() map[string]int
	// DonationURL is the donation platform base used to link handles.
	DonationURL string
	Logger      *log.Logger
}

// NewRouter creates and configures the HTTP router.
func NewRouter(cfg *RouterConfig) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	h := &handlers{
		resolver:    cfg.Resolver,
		stats:       cfg.Stats,
		donationURL: cfg.DonationURL,
		logger:      logger,
	}

	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(RequestIDMiddleware(logger))
	r.Use(LoggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/", h.index)
	r.Get("/npm", h.npmRedirect)
	r.Get("/npm/{name}", h.npmView)
	r.Get("/github", h.githubRedirect)
	r.Get("/github/{user}/{repo}", h.githubView)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.health)
		r.Get("/npm/{name}", h.npmJSON)
		r.Get("/github/{user}/{repo}", h.githubJSON)
	})

	return r
}
