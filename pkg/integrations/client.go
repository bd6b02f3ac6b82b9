package integrations

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/matzehuels/tipjar/pkg/buildinfo"
	"github.com/matzehuels/tipjar/pkg/cache"
	errs "github.com/matzehuels/tipjar/pkg/errors"
	"github.com/matzehuels/tipjar/pkg/httputil"
	"github.com/matzehuels/tipjar/pkg/observability"
)

// Client provides shared HTTP functionality for all upstream API clients.
// It handles response caching, retry logic, and common request headers.
type Client struct {
	http      *http.Client
	cache     cache.Cache
	namespace string
	ttl       time.Duration
	headers   map[string]string
	attempts  int
	delay     time.Duration
}

// Option customizes a [Client].
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http = NewHTTPClient(d) }
}

// WithRetry sets how often transient failures are retried.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.delay = delay
	}
}

// NewClient creates a Client that stores responses in c under namespace with
// the given TTL. Headers are applied to all requests made through this
// client; pass nil if no default headers are needed. A nil cache disables the
// response cache tier.
func NewClient(c cache.Cache, namespace string, ttl time.Duration, headers map[string]string, opts ...Option) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	client := &Client{
		http:      NewHTTPClient(DefaultTimeout),
		cache:     c,
		namespace: namespace,
		ttl:       ttl,
		headers:   headers,
		attempts:  httputil.DefaultAttempts,
		delay:     httputil.DefaultDelay,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Key builds a response cache key in the client's namespace.
func (c *Client) Key(parts ...string) string {
	return cache.HTTPKey(c.namespace, parts...)
}

// Cached retrieves a value from the response cache or executes fetch and
// caches the result. If refresh is true, the cache is bypassed and fetch is
// always called. The fetch function should populate v; on success, v is
// stored in the cache. Failed fetches are never cached.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	if !refresh {
		if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
			if json.Unmarshal(data, v) == nil {
				observability.Cache().OnCacheHit(ctx, c.namespace)
				return nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, c.namespace)
	}
	if err := httputil.Retry(ctx, c.attempts, c.delay, fetch); err != nil {
		return err
	}
	if data, err := json.Marshal(v); err == nil {
		if c.cache.Set(ctx, key, data, c.ttl) == nil {
			observability.Cache().OnCacheSet(ctx, c.namespace, len(data))
		}
	}
	return nil
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
// It uses the client's default headers. Non-200 responses and undecodable
// bodies are returned as coded errors.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	resp, err := c.do(ctx, http.MethodGet, url, headers, c.http)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errs.Wrap(errs.ErrCodeParse, err, "decode %s", url)
	}
	return nil
}

// Head performs an HTTP HEAD request without following redirects and returns
// the response with its body already closed. Only transport failures are
// errors; interpreting the status is up to the caller.
func (c *Client) Head(ctx context.Context, url string) (*http.Response, error) {
	noRedirect := *c.http
	noRedirect.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	resp, err := c.do(ctx, http.MethodHead, url, nil, &noRedirect)
	if err != nil {
		return nil, err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, url string, headers map[string]string, hc *http.Client) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "build request")
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, method, req.URL.Host, req.URL.Path)
	start := time.Now()

	resp, err := hc.Do(req)
	if err != nil {
		hooks.OnError(ctx, method, req.URL.Host, req.URL.Path, err)
		return nil, httputil.Retryable(networkError(err, method, url))
	}
	hooks.OnResponse(ctx, method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))
	return resp, nil
}

func networkError(err error, method, url string) error {
	var ne net.Error
	if stderrors.Is(err, context.DeadlineExceeded) || (stderrors.As(err, &ne) && ne.Timeout()) {
		return errs.Wrap(errs.ErrCodeTimeout, err, "%s %s", method, url)
	}
	return errs.Wrap(errs.ErrCodeNetwork, err, "%s %s", method, url)
}

func checkStatus(resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errs.New(errs.ErrCodeNotFound, "status %d", code)
	case code == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0":
		return errs.Wrap(errs.ErrCodeRateLimited, rateLimited(resp.Header), "status %d", code)
	case code >= 500:
		return httputil.Retryable(errs.New(errs.ErrCodeUpstreamStatus, "status %d", code))
	default:
		return errs.New(errs.ErrCodeUpstreamStatus, "status %d", code)
	}
}

func rateLimited(h http.Header) *errs.RateLimitedError {
	e := &errs.RateLimitedError{Message: "upstream rate limit exhausted"}
	if reset, err := strconv.ParseInt(h.Get("X-RateLimit-Reset"), 10, 64); err == nil {
		if wait := time.Until(time.Unix(reset, 0)); wait > 0 {
			e.RetryAfter = int(wait.Seconds())
		}
	}
	return e
}
