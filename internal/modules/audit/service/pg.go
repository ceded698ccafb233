package service

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5"

	"unlock_bot/internal/models"
	"unlock_bot/pkg/db"
)

const createTable = `
CREATE TABLE IF NOT EXISTS unlock_audit (
	id         BIGSERIAL PRIMARY KEY,
	request_id TEXT        NOT NULL,
	action     TEXT        NOT NULL,
	secret_id  TEXT        NOT NULL,
	actor_id   TEXT        NOT NULL,
	outcome    TEXT        NOT NULL,
	details    JSONB       NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL
)`

const insertEvent = `
INSERT INTO unlock_audit (request_id, action, secret_id, actor_id, outcome, details, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

// PgSink implement db store
type PgSink struct {
	db db.TxManager
}

func NewPgSink(tm db.TxManager) *PgSink {
	return &PgSink{db: tm}
}

// Migrate creates the journal table if needed.
func (s *PgSink) Migrate(ctx context.Context) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("PgSink.Migrate: %w", err)
		}
	}()
	_, err = s.db.Conn().Exec(ctx, createTable)
	return err
}

func (s *PgSink) Write(ctx context.Context, events []models.AuditEvent) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("PgSink.Write: %w", err)
		}
	}()

	return s.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		for _, e := range events {
			details, err := sonic.Marshal(eventDetails{Platform: e.Platform, Kind: string(e.Kind)})
			if err != nil {
				return err
			}
			_, err = tx.Exec(ctxTx, insertEvent,
				e.RequestID, string(e.Action), e.SecretID.String(), e.ActorID, e.Outcome, details, e.At)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

type eventDetails struct {
	Platform string `json:"platform"`
	Kind     string `json:"kind,omitempty"`
}
