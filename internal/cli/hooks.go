package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tipjar/pkg/observability"
)

// logHooks reports HTTP, cache and resolution events at debug level.
type logHooks struct {
	logger *log.Logger
}

// installHooks registers logHooks globally. They only produce output when
// the logger is at debug level.
func installHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetHTTPHooks(h)
	observability.SetCacheHooks(h)
	observability.SetResolveHooks(h)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}

func (h logHooks) OnCacheHit(_ context.Context, name string) {
	h.logger.Debug("cache hit", "cache", name)
}

func (h logHooks) OnCacheMiss(_ context.Context, name string) {
	h.logger.Debug("cache miss", "cache", name)
}

func (h logHooks) OnCacheSet(_ context.Context, name string, size int) {
	h.logger.Debug("cache set", "cache", name, "size", size)
}

func (h logHooks) OnResolveStart(_ context.Context, flow, subject string) {
	h.logger.Debug("resolving", "flow", flow, "subject", subject)
}

func (h logHooks) OnResolveComplete(_ context.Context, flow, subject string, users int, d time.Duration) {
	h.logger.Debug("resolved", "flow", flow, "subject", subject, "users", users, "duration", d.Round(time.Millisecond))
}
