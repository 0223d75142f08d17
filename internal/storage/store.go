package storage

import (
	"context"
	"errors"
)

// TokenKey is the key holding the raw bearer token.
const TokenKey = "auth_token"

var (
	// ErrUnsupportedFormat is returned for file extensions without a codec.
	ErrUnsupportedFormat = errors.New("unsupported storage format")
	// ErrSealed is returned when a sealed value cannot be opened.
	ErrSealed = errors.New("sealed value cannot be opened")
	// ErrCorrupt is returned by Get when the backing file cannot be decoded.
	// Set and Delete replace such a file instead of failing.
	ErrCorrupt = errors.New("storage file cannot be decoded")
)

// Store is a persistent string key-value store.
//
// Get reports found=false for a missing key without an error. Delete of a
// missing key succeeds.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
