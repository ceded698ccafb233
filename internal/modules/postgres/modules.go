package postgres

import (
	"context"

	"unlock_bot/internal/modules/config"
	"unlock_bot/pkg/db"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module даёт *db.PgTxManager, если задан DATABASE_DSN. Без DSN провайдер
// возвращает nil и потребители работают без базы.
func Module() fx.Option {
	return fx.Module("postgres",
		fx.Provide(
			func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*db.PgTxManager, error) {
				if cfg.DB == "" {
					log.Info("postgres disabled: no DSN configured")
					return nil, nil
				}

				ctx := context.Background()
				poolMaster, err := db.NewPool(ctx, db.PoolConfig{
					DSN: cfg.DB,
				})
				if err != nil {
					return nil, errors.Wrap(err, "failed to create poolMaster")
				}

				if err = poolMaster.Ping(ctx); err != nil {
					poolMaster.Close()
					return nil, errors.Wrap(err, "ping postgres")
				}

				m := db.NewPgTxManager(poolMaster)
				lc.Append(fx.StopHook(m.Close))
				return m, nil
			},
		),
	)
}
