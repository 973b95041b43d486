package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bookledger/library-api/internal/cache"
	"github.com/bookledger/library-api/internal/log"
)

const jsonContentType = "application/json; charset=utf-8"

// serveCached is the cache-aside read path. On a hit the cached JSON is
// returned verbatim, skipping the repository and response shaping
// entirely. On a miss the canonical result is fetched, stored under key
// with the fixed TTL, and returned. A failing cache store is treated as
// a miss; write operations never invalidate entries, so readers may see
// data up to cache.TTL stale.
func serveCached[T any](c *gin.Context, store cache.Store, key string, fetch func(ctx context.Context) (T, error)) {
	ctx := c.Request.Context()

	raw, err := store.Get(ctx, key)
	if err == nil {
		c.Data(http.StatusOK, jsonContentType, raw)
		return
	}
	if !errors.Is(err, cache.ErrMiss) {
		log.Warn("cache read failed, falling through", zap.String("key", key), zap.Error(err))
	}

	payload, err := fetch(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := store.Set(ctx, key, body, cache.TTL); err != nil {
		log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}

	c.Data(http.StatusOK, jsonContentType, body)
}
