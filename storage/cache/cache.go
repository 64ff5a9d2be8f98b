// Package cache provides a small JSON report cache so hot dashboard
// queries do not re-aggregate on every request.
package cache

import (
	"context"
	"time"
)

// Cache stores JSON-serializable report payloads with a TTL.
type Cache interface {
	// GetJSON unmarshals the cached value into dest; ok is false on miss.
	GetJSON(ctx context.Context, key string, dest interface{}) (ok bool, err error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Noop caches nothing; used when no Redis address is configured.
type Noop struct{}

var _ Cache = (*Noop)(nil)

func (Noop) GetJSON(context.Context, string, interface{}) (bool, error) { return false, nil }
func (Noop) SetJSON(context.Context, string, interface{}, time.Duration) error {
	return nil
}
