// Package config provides 12-factor configuration for the outreach console.
//
// Configuration is loaded from environment variables with defaults. CLI flags
// override individual values after loading.
//
// Configuration Sections:
//   - API: backend base URL, timeout, retries, outbound rate limit
//   - Storage: token file location and optional at-rest passphrase
//   - Session: 401 handling policy
//   - Server: console server listen address
//   - Logging: log level and output format
//   - RateLimit, CORS: console server protection
//
// Environment Variables:
//   - CONSOLE_API_URL, CONSOLE_API_TIMEOUT, CONSOLE_API_RETRIES, CONSOLE_API_RPS
//   - CONSOLE_TOKEN_FILE, CONSOLE_TOKEN_PASSPHRASE, CONSOLE_EPHEMERAL
//   - CONSOLE_LOGOUT_ON_UNAUTHORIZED
//   - PORT, HOST, LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED, CORS_ORIGINS
package config
