// Package cache is the side accelerator for read endpoints. It is never
// the source of truth: entries expire after a fixed TTL and writes to
// the database do not invalidate them.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// TTL is the fixed expiration every entry is stored with.
const TTL = 15 * time.Second

// ErrMiss signals that a key is absent (or expired).
var ErrMiss = errors.New("cache: miss")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// EntityKey builds the key for a point lookup, e.g. "author:7".
func EntityKey(entity string, id int64) string {
	return fmt.Sprintf("%s:%d", entity, id)
}

// PageKey builds the key for a paginated listing, e.g.
// "authors:page:1:limit:10".
func PageKey(entity string, page, limit int) string {
	return fmt.Sprintf("%s:page:%d:limit:%d", entity, page, limit)
}
