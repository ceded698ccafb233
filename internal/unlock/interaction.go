package unlock

import (
	"context"

	"unlock_bot/internal/models"
)

// Interaction is one incoming platform event as the handlers see it.
// Platform adapters implement it.
type Interaction interface {
	// ID is the interaction's own identifier.
	ID() models.SecretID
	Platform() string
	Invoker() models.Viewer
	// Respond sends resp. Calling it more than once is left to the adapter
	// (follow-up message or protocol error).
	Respond(ctx context.Context, resp models.Response) error
	// PostedMessageID returns the id of the public message sent by Respond.
	PostedMessageID(ctx context.Context) (models.SecretID, error)
	// AttachControls edits the posted message to carry controls.
	AttachControls(ctx context.Context, controls []models.Control) error
}

// Journal receives audit events. Record must not block.
type Journal interface {
	Record(e models.AuditEvent)
}
