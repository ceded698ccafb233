package service

import (
	"context"

	"go.uber.org/zap"

	"unlock_bot/internal/models"
)

// LogSink пишет журнал в лог, когда базы нет.
type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: log.Named("audit")}
}

func (s *LogSink) Write(_ context.Context, events []models.AuditEvent) error {
	for _, e := range events {
		s.log.Info("audit",
			zap.String("request_id", e.RequestID),
			zap.String("platform", e.Platform),
			zap.String("action", string(e.Action)),
			zap.Stringer("secret_id", e.SecretID),
			zap.String("actor", e.ActorID),
			zap.String("outcome", e.Outcome),
			zap.String("kind", string(e.Kind)),
			zap.Time("at", e.At),
		)
	}
	return nil
}
