package discord

import (
	"context"

	"unlock_bot/internal/modules/discord/service"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module("discord",
		fx.Provide(
			service.NewDiscord, // nil без токена
		),
		fx.Invoke(
			func(lc fx.Lifecycle, d *service.Discord, log *zap.Logger) {
				if d == nil {
					log.Info("discord adapter disabled: no token")
					return
				}
				lc.Append(fx.Hook{
					OnStart: func(context.Context) error {
						return d.Start()
					},
					OnStop: func(context.Context) error {
						return d.Stop()
					},
				})
			},
		),
	)
}
