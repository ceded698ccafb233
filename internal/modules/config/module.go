package config

import (
	"unlock_bot/internal/models"

	"go.uber.org/fx"
)

// Module регистрирует конфиг и производный UnlockConfig как fx-провайдеры.
func Module() fx.Option {
	return fx.Module("config",
		fx.Provide(
			NewConfig,
			func(cfg *Config) models.UnlockConfig {
				return cfg.UnlockConfig()
			},
		),
	)
}
