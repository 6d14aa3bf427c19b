// ABOUTME: Credential store abstraction for the access token
// ABOUTME: Defines the Store interface and adapts a store key to client.TokenSource

package credentials

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("credential not found")

// Store is a string key/value store for credentials. Remove of a missing key
// is not an error.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Keyed reads one key of a Store as a bearer token.
type Keyed struct {
	Store Store
	Key   string
}

// Token returns the stored credential, or "" when there is none.
func (k Keyed) Token(ctx context.Context) (string, error) {
	if k.Store == nil {
		return "", nil
	}
	v, err := k.Store.Get(ctx, k.Key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return v, err
}
