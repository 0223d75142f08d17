// Package main is the entry point for the outreach console.
//
// The console signs an operator in to the outreach backend and drives the
// dashboard operations from a terminal, or serves them over HTTP.
//
// Architecture:
//
//	console CLI ─┐
//	             ├→ session manager → backend client → outreach API
//	console serve┘        ↓
//	               token store (file, sealed or memory)
//
// Configuration:
//   - Environment variables (CONSOLE_API_URL, CONSOLE_TOKEN_FILE, ...)
//   - Persistent flags (override env vars)
//   - Defaults for a local backend on :8001
//
// Usage:
//
//	# Sign in once; the token is persisted
//	console login -u admin            # password from CONSOLE_PASSWORD
//
//	# Work from the terminal
//	console prospects list --status qualified --niche fitness
//	console campaigns create --name Spring --hashtags coach,life
//
//	# Or serve the dashboard API locally
//	console serve --port 8080
//
// Signals:
//   - SIGINT, SIGTERM: graceful shutdown
package main
