package models

import "time"

type AuditAction string

const (
	AuditStore  AuditAction = "store"
	AuditReveal AuditAction = "reveal"
)

// AuditEvent is one journal line. It never carries payload contents.
type AuditEvent struct {
	RequestID string
	Platform  string
	Action    AuditAction
	SecretID  SecretID
	ActorID   string
	Outcome   string
	Kind      PayloadKind
	At        time.Time
}
