package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/folionet/folionet/internal/domain"
)

const listingCacheKey = "investments:listing"

// ListingCache keeps the marketplace listing in memcached between writes.
// Miss and backend failure are treated alike; the listing is then rebuilt
// from the database.
type ListingCache struct {
	mc  *memcache.Client
	ttl time.Duration
}

func NewListingCache(mc *memcache.Client, ttl time.Duration) *ListingCache {
	return &ListingCache{mc: mc, ttl: ttl}
}

func (c *ListingCache) Get(ctx context.Context) ([]domain.Investment, bool) {
	item, err := c.mc.Get(listingCacheKey)
	if err != nil {
		return nil, false
	}

	var investments []domain.Investment
	if err := json.Unmarshal(item.Value, &investments); err != nil {
		return nil, false
	}
	return investments, true
}

func (c *ListingCache) Set(ctx context.Context, investments []domain.Investment) {
	value, err := json.Marshal(investments)
	if err != nil {
		return
	}

	err = c.mc.Set(&memcache.Item{
		Key:        listingCacheKey,
		Value:      value,
		Expiration: int32(c.ttl.Seconds()),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to cache listing",
			slog.String("error", err.Error()),
			slog.String("module", "cache"),
		)
	}
}

func (c *ListingCache) Invalidate(ctx context.Context) {
	err := c.mc.Delete(listingCacheKey)
	if err != nil && err != memcache.ErrCacheMiss {
		slog.ErrorContext(ctx, "failed to invalidate listing cache",
			slog.String("error", err.Error()),
			slog.String("module", "cache"),
		)
	}
}
