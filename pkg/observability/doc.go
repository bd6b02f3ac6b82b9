// Package observability lets the CLI and server watch what tipjar does
// without the libraries depending on a logging or metrics backend.
//
// Three hook families exist: [ResolveHooks] for whole resolutions,
// [CacheHooks] for memo and response cache traffic, and [HTTPHooks] for
// upstream calls. Each defaults to a no-op. Register replacements once at
// startup:
//
//	observability.SetResolveHooks(myHooks)
//	observability.SetHTTPHooks(myHooks)
//
// Library code fetches the current hooks at the point of the event:
//
//	observability.Resolve().OnResolveStart(ctx, "npm", name)
package observability
