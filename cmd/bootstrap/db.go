package bootstrap

import (
	"context"

	"promo-engine/db"
	infradb "promo-engine/internal/infra/db"
	"promo-engine/internal/pkg/config"
	"promo-engine/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	ctx := context.Background()
	pool, cleanup, err := infradb.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}

	// The schema is idempotent; applying it at startup keeps single-node
	// deployments and test containers in sync without a migration tool.
	if _, err := pool.Exec(ctx, db.Schema); err != nil {
		cleanup()
		return nil, errs.Wrap(err, "failed to apply database schema")
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}
