package storage

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	sealedPrefix = "sealed:v1:"
	saltSize     = 16
	nonceSize    = 24
	keySize      = 32

	argonTime    = 1
	argonMemory  = 19 * 1024
	argonThreads = 1
)

// Sealed encrypts values before handing them to another Store. Each value
// carries its own salt and nonce, so the passphrase is the only secret.
type Sealed struct {
	inner      Store
	passphrase []byte
	rand       io.Reader
}

// NewSealed wraps inner. An empty passphrase is rejected.
func NewSealed(inner Store, passphrase string) (*Sealed, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("sealed store requires a passphrase")
	}
	return &Sealed{inner: inner, passphrase: []byte(passphrase), rand: rand.Reader}, nil
}

func (s *Sealed) Get(ctx context.Context, key string) (string, bool, error) {
	raw, found, err := s.inner.Get(ctx, key)
	if err != nil || !found {
		return "", found, err
	}
	value, err := s.open(raw)
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *Sealed) Set(ctx context.Context, key, value string) error {
	sealed, err := s.seal(value)
	if err != nil {
		return err
	}
	return s.inner.Set(ctx, key, sealed)
}

func (s *Sealed) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

func (s *Sealed) seal(value string) (string, error) {
	var salt [saltSize]byte
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(s.rand, salt[:]); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	if _, err := io.ReadFull(s.rand, nonce[:]); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	key := s.derive(salt[:])
	out := make([]byte, 0, saltSize+nonceSize+len(value)+secretbox.Overhead)
	out = append(out, salt[:]...)
	out = append(out, nonce[:]...)
	out = secretbox.Seal(out, []byte(value), &nonce, key)

	return sealedPrefix + base64.RawStdEncoding.EncodeToString(out), nil
}

func (s *Sealed) open(raw string) (string, error) {
	encoded, ok := strings.CutPrefix(raw, sealedPrefix)
	if !ok {
		return "", ErrSealed
	}
	data, err := base64.RawStdEncoding.DecodeString(encoded)
	if err != nil || len(data) < saltSize+nonceSize+secretbox.Overhead {
		return "", ErrSealed
	}

	var nonce [nonceSize]byte
	copy(nonce[:], data[saltSize:saltSize+nonceSize])
	key := s.derive(data[:saltSize])

	plain, ok := secretbox.Open(nil, data[saltSize+nonceSize:], &nonce, key)
	if !ok {
		return "", ErrSealed
	}
	return string(plain), nil
}

func (s *Sealed) derive(salt []byte) *[keySize]byte {
	var key [keySize]byte
	copy(key[:], argon2.IDKey(s.passphrase, salt, argonTime, argonMemory, argonThreads, keySize))
	return &key
}
