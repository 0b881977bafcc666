// Package kv provides a generic string key-value repository over the local
// database. It backs the session store.
package kv

import "context"

// Repository describes key-value operations over the session table.
// A missing key reads as the empty string, not an error.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
