// Package httputil provides HTTP utilities for the upstream API clients.
//
// # Retry
//
// [Retry] wraps a request with automatic retry for transient failures. Only
// errors wrapped in [RetryableError] are retried; clients wrap network errors
// and 5xx responses, while 4xx responses and parse failures fail fast:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    return client.Get(ctx, url, &v)
//	})
//
// The delay doubles after each failed attempt and waiting stops as soon as
// ctx is done.
//
// # Defaults
//
//   - Attempts: 2 ([DefaultAttempts])
//   - Initial delay: 500ms ([DefaultDelay])
package httputil
