// Package storage persists the console's bearer token between runs.
//
// It is the Go counterpart of browser-local key-value storage: a tiny
// string-to-string store that survives process restarts. The session manager
// is its only writer; it reads and writes a single key, TokenKey.
//
// Implementations:
//   - FileStore: a file whose format follows its extension (.json, .yaml/.yml, .toml)
//   - MemoryStore: process-local, for tests and ephemeral runs
//   - Sealed: wraps another Store and encrypts values at rest
package storage
