// Package client is the outbound HTTP client for the outreach backend.
//
// Built on go-resty/resty with:
//   - Retries for idempotent calls, using go-retryablehttp's retry policy
//   - Token bucket rate limiting (golang.org/x/time/rate)
//   - A circuit breaker that trips on transport failures and 5xx responses
//   - Per-request X-Request-ID headers
//
// Credentials are never stored on the client. Each request asks the injected
// Authorizer for the current Authorization header, so logging in or out takes
// effect on the next call without touching shared defaults.
//
// Example Usage:
//
//	c := client.New(client.Options{BaseURL: cfg.API.BaseURL})
//	c.SetAuthorizer(sessionManager)
//	var stats types.DashboardStats
//	_, err := c.Do(ctx, client.Call{Method: http.MethodGet, Route: "/api/dashboard/stats", Result: &stats})
package client
