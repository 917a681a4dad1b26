package store

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// LocalStorage is the durable client key-value storage. It holds the
// selected connector, the WalletConnect session record and the optional RPC
// address override.
type LocalStorage interface {
	// Get returns the value stored under key or [ErrKeyNotFound].
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
