package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"promo-engine/internal/domain/promotion"
)

// CatalogSource is the uncached campaign catalog read.
type CatalogSource interface {
	ActiveCampaigns(ctx context.Context, now time.Time) ([]promotion.Campaign, error)
	CatalogVersion(ctx context.Context) (int64, error)
}

// CatalogCache is a read-through decorator over the campaign catalog. The
// cache key folds in the catalog version (bumped on every campaign write)
// and the minute-truncated clock, so entries invalidate on writes and as
// activity windows open or close. Redis failures degrade to the source.
type CatalogCache struct {
	source CatalogSource
	client *redis.Client
	ttl    time.Duration
}

func NewCatalogCache(source CatalogSource, client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{source: source, client: client, ttl: ttl}
}

func (c *CatalogCache) ActiveCampaigns(ctx context.Context, now time.Time) ([]promotion.Campaign, error) {
	version, err := c.source.CatalogVersion(ctx)
	if err != nil {
		return c.source.ActiveCampaigns(ctx, now)
	}

	key := catalogKey(version, now)
	if payload, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var campaigns []promotion.Campaign
		if err := json.Unmarshal(payload, &campaigns); err == nil {
			return campaigns, nil
		}
		slog.Warn("discarding corrupt catalog cache entry", "key", key)
	} else if err != redis.Nil {
		slog.Warn("catalog cache read failed", "error", err.Error())
	}

	campaigns, err := c.source.ActiveCampaigns(ctx, now)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(campaigns); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			slog.Warn("catalog cache write failed", "error", err.Error())
		}
	}
	return campaigns, nil
}

func (c *CatalogCache) CatalogVersion(ctx context.Context) (int64, error) {
	return c.source.CatalogVersion(ctx)
}

func catalogKey(version int64, now time.Time) string {
	return fmt.Sprintf("promo:catalog:v%d:%s", version, now.UTC().Truncate(time.Minute).Format("200601021504"))
}
