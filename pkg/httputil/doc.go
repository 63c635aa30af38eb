// Package httputil provides the REST plumbing used by remote board clients.
//
// # Client
//
// [Client] sends JSON requests relative to a base URL with a bearer token:
//
//	c, err := httputil.NewClient("https://api.miro.com/v2",
//	    httputil.WithBearer(token),
//	    httputil.WithRateLimit(10, 5))
//	var tags tagList
//	err = c.Get(ctx, "boards/uXjV/tags", &tags)
//
// Requests wait on a token bucket ([golang.org/x/time/rate]) before they
// are sent. Non-2xx responses become coded errors from pkg/errors, so a 401
// is reported as UNAUTHORIZED and a 429 as RATE_LIMITED. Every request is
// reported to the HTTP hooks in pkg/observability.
//
// # Retry
//
// [Retry] re-runs a function for failures wrapped in [RetryableError]:
//
//   - network errors
//   - 5xx responses
//   - 429 responses, waiting for Retry-After when the server sends it
//
// Only GET requests go through [Retry]. POST requests are sent once.
package httputil
