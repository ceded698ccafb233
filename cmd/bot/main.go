package main

import (
	"unlock_bot/internal/modules/audit"
	"unlock_bot/internal/modules/config"
	"unlock_bot/internal/modules/discord"
	"unlock_bot/internal/modules/health"
	"unlock_bot/internal/modules/observability"
	"unlock_bot/internal/modules/postgres"
	telegram "unlock_bot/internal/modules/telegram_bot"
	"unlock_bot/internal/unlock"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	app := fx.New(
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		config.Module(),
		observability.Module(),
		postgres.Module(),
		audit.Module(),
		unlock.Module(),
		health.Module(),
		discord.Module(),
		telegram.Module(),
	)
	// Run блокируется до SIGINT/SIGTERM и останавливает модули в обратном порядке.
	app.Run()
}
