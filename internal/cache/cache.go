// Package cache provides the durable key/value store for credentials and
// login preferences.
package cache

import (
	"context"
	"errors"
)

// Well-known keys. There is no per-user namespacing: logging in as a
// different account overwrites the previous values.
const (
	KeyToken           = "token"
	KeyUserID          = "userId"
	KeyRememberedEmail = "rememberedEmail"
)

// ErrInvalidKey is returned for keys outside the well-known set.
var ErrInvalidKey = errors.New("invalid cache key")

// Reader is the read-only capability handed to consumers that must not
// write credentials (the task store).
type Reader interface {
	// Get returns the value for key. ok is false if the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
}

// Cache is the read/write capability. The session manager is its only writer.
// Each call is an independent durable operation; there is no transaction
// across keys.
type Cache interface {
	Reader

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// ValidKey reports whether key is one of the well-known keys.
func ValidKey(key string) bool {
	switch key {
	case KeyToken, KeyUserID, KeyRememberedEmail:
		return true
	}
	return false
}
