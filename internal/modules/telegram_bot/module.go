package telegram

import (
	"context"

	"unlock_bot/internal/modules/telegram_bot/service"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module("telegram",
		fx.Provide(
			service.NewTelegram, // nil без токена
		),
		// Запуск цикла обновлений через Lifecycle
		fx.Invoke(
			func(lc fx.Lifecycle, t *service.Telegram, log *zap.Logger) {
				if t == nil {
					log.Info("telegram adapter disabled: no token")
					return
				}
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						t.Start()
						return nil
					},
					OnStop: func(ctx context.Context) error {
						t.Stop()
						return nil
					},
				})
			},
		),
	)
}
