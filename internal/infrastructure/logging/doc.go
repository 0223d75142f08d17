// Package logging provides structured logging for the console using uber/zap.
//
// Two output modes are supported:
//   - Production: JSON lines for log shippers
//   - Development: colored console output (LOG_DEV=true)
//
// Credentials never reach the log stream. Use Fingerprint to correlate a
// bearer token across log lines without revealing it.
//
// Example Usage:
//
//	logger := logging.New(logging.Config{Level: "debug", Development: true})
//	logger.Info("Session restored", logging.Fingerprint(token))
package logging
