package unlock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"

	"unlock_bot/internal/models"
	"unlock_bot/internal/render"
	"unlock_bot/internal/store"
)

const (
	msgDenied     = "❌ You don’t have permission to unlock this content."
	msgNotFound   = "⚠️ Sorry, I can't find the content for this message (it may have expired)."
	msgUnexpected = "⚠️ Something went wrong. Please try again later."
)

const (
	outcomeRendered = "rendered"
	outcomeDenied   = "denied"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

// Controller handles reveal presses: gate, lookup, render, respond.
// It only reads the store, so any number of presses give the same result.
type Controller struct {
	store    store.Store
	renderer *render.Renderer
	cfg      models.UnlockConfig
	journal  Journal
	metrics  *Metrics
	log      *zap.Logger
	now      func() time.Time
}

func NewController(
	st store.Store,
	renderer *render.Renderer,
	cfg models.UnlockConfig,
	journal Journal,
	metrics *Metrics,
	log *zap.Logger,
) *Controller {
	return &Controller{
		store:    st,
		renderer: renderer,
		cfg:      cfg,
		journal:  journal,
		metrics:  metrics,
		log:      log.Named("reveal"),
		now:      time.Now,
	}
}

// Reveal produces the private response for viewer pressing the control bound
// to id. The error is models.ErrUnauthorized or models.ErrNotFound when the
// response is a notice instead of the content.
func (c *Controller) Reveal(ctx context.Context, id models.SecretID, viewer models.Viewer) (models.Response, error) {
	resp, _, err := c.reveal(ctx, id, viewer)
	return resp, err
}

func (c *Controller) reveal(ctx context.Context, id models.SecretID, viewer models.Viewer) (models.Response, models.PayloadKind, error) {
	if !Authorize(viewer, c.cfg) {
		return models.Response{Ephemeral: true, Content: msgDenied}, "", models.ErrUnauthorized
	}

	p, ok := c.store.Get(ctx, id)
	if !ok {
		return models.Response{Ephemeral: true, Content: msgNotFound}, "", models.ErrNotFound
	}

	kind := models.KindRaw
	if p != nil {
		kind = p.Kind()
	}
	return models.Response{
		Ephemeral:     true,
		MentionUserID: render.Mention(p),
		Documents:     c.renderer.Render(p, viewer),
	}, kind, nil
}

// Press runs Reveal for one button press and sends the result through in.
// Failures never escape: the viewer always gets a private reply.
func (c *Controller) Press(ctx context.Context, in Interaction, id models.SecretID) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "unlock.Press")
	defer span.Finish()

	requestID := uuid.NewString()
	viewer := in.Invoker()
	span.SetTag("request_id", requestID)
	span.SetTag("secret_id", id.String())

	log := c.log.With(
		zap.String("request_id", requestID),
		zap.String("platform", in.Platform()),
		zap.Stringer("secret_id", id),
		zap.String("viewer", viewer.UserID),
	)

	var (
		resp    models.Response
		kind    models.PayloadKind
		outcome string
	)

	func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("reveal panicked", zap.Any("panic", r))
				resp = models.Response{Ephemeral: true, Content: msgUnexpected}
				outcome = outcomeError
			}
		}()

		var err error
		resp, kind, err = c.reveal(ctx, id, viewer)
		switch {
		case err == nil:
			outcome = outcomeRendered
			log.Info("secret revealed", zap.String("kind", string(kind)))
		case errors.Is(err, models.ErrUnauthorized):
			outcome = outcomeDenied
			log.Info("reveal denied")
		case errors.Is(err, models.ErrNotFound):
			outcome = outcomeNotFound
			log.Info("secret not found")
		default:
			outcome = outcomeError
			log.Error("reveal failed", zap.Error(err))
			resp = models.Response{Ephemeral: true, Content: msgUnexpected}
		}
	}()

	span.SetTag("outcome", outcome)
	c.metrics.reveals.WithLabelValues(outcome).Inc()
	c.journal.Record(models.AuditEvent{
		RequestID: requestID,
		Platform:  in.Platform(),
		Action:    models.AuditReveal,
		SecretID:  id,
		ActorID:   viewer.UserID,
		Outcome:   outcome,
		Kind:      kind,
		At:        c.now(),
	})

	if err := in.Respond(ctx, resp); err != nil {
		log.Warn("reveal response not delivered", zap.Error(fmt.Errorf("unlock.Press: %w", err)))
	}
}
