// Package middleware provides the console server's HTTP middleware.
//
// Middleware stack includes:
//   - RequestID: X-Request-ID assignment and propagation
//   - Logger: one zap line per request
//   - Recovery: panic recovery with a JSON 500
//   - CORS: restricted to the configured dashboard origins
//   - RateLimit: per-IP token bucket with idle eviction
//
// Example Usage:
//
//	router.Use(middleware.RequestID(), middleware.Recovery(log), middleware.Logger(log))
//	router.Use(middleware.CORS(cfg.CORS.AllowOrigins))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
