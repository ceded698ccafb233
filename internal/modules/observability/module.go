package observability

import (
	"context"

	"unlock_bot/internal/modules/config"
	"unlock_bot/pkg/logger"
	"unlock_bot/pkg/tracing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module: логгер, реестр метрик и трейсер.
func Module() fx.Option {
	return fx.Module("observability",
		fx.Provide(
			func(lc fx.Lifecycle, cfg *config.Config) (*zap.Logger, error) {
				logger.SetServiceName(cfg.Service.Name)
				log, err := logger.New(cfg.Service.LogLevel)
				if err != nil {
					return nil, err
				}
				lc.Append(fx.StopHook(func() { _ = log.Sync() }))
				return log, nil
			},
			func() *prometheus.Registry {
				reg := prometheus.NewRegistry()
				reg.MustRegister(
					collectors.NewGoCollector(),
					collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
				)
				return reg
			},
			func(reg *prometheus.Registry) prometheus.Registerer {
				return reg
			},
		),
		fx.Invoke(
			func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) error {
				conf := tracing.Config{Host: cfg.Tracing.Host, Port: cfg.Tracing.Port}
				if !conf.Enabled() {
					log.Info("tracing disabled: no jaeger agent configured")
					return nil
				}
				tracing.SetServiceName(cfg.Service.Name)
				_, closer, err := tracing.InitTracer(conf)
				if err != nil {
					return err
				}
				lc.Append(fx.Hook{
					OnStop: func(context.Context) error {
						closer()
						return nil
					},
				})
				return nil
			},
		),
	)
}
