package unlock

import (
	"unlock_bot/internal/modules/config"
	"unlock_bot/internal/render"
	"unlock_bot/internal/store"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("unlock",
		// 1. Хранилище секретов, в памяти процесса
		fx.Provide(
			fx.Annotate(store.NewMemory, fx.As(new(store.Store))),
		),

		// 2. Рендер, троттлинг, метрики
		fx.Provide(
			render.NewRenderer,
			func(cfg *config.Config) ThrottleConfig {
				return ThrottleConfig{Rate: cfg.Commands.Rate, Burst: cfg.Commands.Burst}
			},
			NewThrottle,
			NewMetrics,
		),

		// 3. Обработчики: команды и кнопка
		fx.Provide(
			NewController,
			NewCommands,
		),
	)
}
