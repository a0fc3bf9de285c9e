package components

import (
	"promo-engine/internal/infra/cache"
	"promo-engine/internal/infra/db"
	"promo-engine/internal/infra/readstore"
	"promo-engine/internal/infra/uow"
	"promo-engine/internal/pkg/config"
	"promo-engine/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		// UnitOfWork
		uow.NewPostgresUoW,
		// Read stores
		NewCatalogReader,
		fx.Annotate(
			readstore.NewCampaignReadStore,
			fx.As(new(queries.CampaignReader)),
		),
		fx.Annotate(
			readstore.NewCouponReadStore,
			fx.As(new(queries.CouponReader)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReader)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

// NewCatalogReader wraps the campaign read store with the Redis cache when a
// client is configured.
func NewCatalogReader(dbtx db.DBTX, client *redis.Client, cfg config.Config) queries.CatalogReader {
	store := readstore.NewCampaignReadStore(dbtx)
	if client == nil {
		return store
	}
	return cache.NewCatalogCache(store, client, cfg.Redis.CatalogTTL)
}
