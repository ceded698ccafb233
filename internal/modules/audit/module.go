package audit

import (
	"context"

	"unlock_bot/internal/modules/audit/service"
	"unlock_bot/internal/unlock"
	"unlock_bot/pkg/db"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module("audit",
		// 1. Куда писать: postgres, если он есть, иначе лог
		fx.Provide(
			func(lc fx.Lifecycle, pg *db.PgTxManager, log *zap.Logger) service.Sink {
				if pg == nil {
					return service.NewLogSink(log)
				}
				sink := service.NewPgSink(pg)
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return sink.Migrate(ctx)
					},
				})
				return sink
			},
		),

		// 2. Журнал и адаптер под unlock.Journal
		fx.Provide(
			func(sink service.Sink, log *zap.Logger) *service.Journal {
				return service.NewJournal(sink, log, 0)
			},
			func(j *service.Journal) unlock.Journal {
				return j
			},
		),

		fx.Invoke(
			func(lc fx.Lifecycle, j *service.Journal) {
				lc.Append(fx.Hook{
					OnStart: func(_ context.Context) error {
						j.Start(context.Background())
						return nil
					},
					OnStop: func(_ context.Context) error {
						j.Stop()
						return nil
					},
				})
			},
		),
	)
}
