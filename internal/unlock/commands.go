package unlock

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"

	"unlock_bot/internal/helper"
	"unlock_bot/internal/models"
	"unlock_bot/internal/position"
	"unlock_bot/internal/render"
	"unlock_bot/internal/store"
)

const (
	msgPressToUnlock = "Press the button to unlock the content..."
	msgThrottled     = "⏳ You're creating locked messages too fast, try again in a moment."
)

const (
	resultOK        = "ok"
	resultInvalid   = "invalid"
	resultThrottled = "throttled"
	resultError     = "error"
)

// Commands build payloads from user input, store them and post the locked message.
type Commands struct {
	store    store.Store
	journal  Journal
	metrics  *Metrics
	throttle *Throttle
	log      *zap.Logger
	now      func() time.Time
}

func NewCommands(st store.Store, journal Journal, metrics *Metrics, throttle *Throttle, log *zap.Logger) *Commands {
	return &Commands{
		store:    st,
		journal:  journal,
		metrics:  metrics,
		throttle: throttle,
		log:      log.Named("commands"),
		now:      time.Now,
	}
}

type LockEmbedParams struct {
	Symbol   string
	Entry    string
	StopLoss string
	Note     string // optional
}

type TradeEphemeralParams struct {
	UserID         string
	Symbol         string
	Entry          string
	StopLoss       string
	SecretContent  string // optional
	Emoji          string // optional
	ImageURL       string // optional
	Status         string // optional, "Active" by default
	ReplyToMessage string // optional
}

type TradeParams struct {
	UserID         string
	Symbol         string
	Entry          float64
	StopLoss       float64
	OrderType      string
	TraderBalance  float64
	Leverage       float64
	RiskPercentage float64
	ImageURL       string // optional
	Status         string // optional
}

// Lock posts a public placeholder, keys the secret by the posted message id
// and then attaches the reveal control.
func (c *Commands) Lock(ctx context.Context, in Interaction, secret string) {
	c.run(ctx, in, "lock", func(ctx context.Context, requestID string) error {
		if err := in.Respond(ctx, models.Response{Content: msgPressToUnlock}); err != nil {
			return fmt.Errorf("respond: %w", err)
		}
		return c.storeOnPosted(ctx, in, requestID, models.PlainText{Body: secret})
	})
}

// LockEmbed posts a public trade preview and hides a plain-text summary behind it.
func (c *Commands) LockEmbed(ctx context.Context, in Interaction, p LockEmbedParams) {
	c.run(ctx, in, "lock_embed", func(ctx context.Context, requestID string) error {
		symbol := strings.ToUpper(p.Symbol)
		preview := models.Document{
			Title: "🔒 Locked Trade",
			Description: fmt.Sprintf("**%s** | **Entry:** %s | **SL:** %s\n\nPress the button to unlock the content…",
				symbol, p.Entry, p.StopLoss),
			Color:     render.ColorBlurple,
			Timestamp: c.now(),
		}
		if p.Note != "" {
			preview.Fields = append(preview.Fields, models.Field{Name: "Note", Value: p.Note})
		}
		if err := in.Respond(ctx, models.Response{Documents: []models.Document{preview}}); err != nil {
			return fmt.Errorf("respond: %w", err)
		}

		note := ""
		if p.Note != "" {
			note = "• " + p.Note
		}
		body := fmt.Sprintf("**%s**\n• Entry: %s\n• SL: %s\n%s\n\n⚠️ Disclaimer: Trade responsibly.",
			symbol, p.Entry, p.StopLoss, note)

		return c.storeOnPosted(ctx, in, requestID, models.PlainText{Body: body})
	})
}

// TradeEphemeral stores a LegacyTrade under the interaction id and shows the
// invoker a private preview that already carries the reveal control.
func (c *Commands) TradeEphemeral(ctx context.Context, in Interaction, p TradeEphemeralParams) {
	c.run(ctx, in, "trade_ephemeral", func(ctx context.Context, requestID string) error {
		status := p.Status
		if status == "" {
			status = "Active"
		}
		trade := models.LegacyTrade{
			UserID:         p.UserID,
			Symbol:         p.Symbol,
			Entry:          p.Entry,
			StopLoss:       p.StopLoss,
			PercentageText: percentageText(p.Entry, p.StopLoss),
			Emoji:          p.Emoji,
			ImageURL:       p.ImageURL,
			Status:         status,
			SecretContent:  p.SecretContent,
		}

		doc := render.LegacyDocument(trade, c.now())
		// секрет не показываем в превью, только после нажатия
		doc.Fields = doc.Fields[:1]
		if _, err := strconv.ParseInt(p.ReplyToMessage, 10, 64); err == nil {
			ref := models.Field{Name: "", Value: fmt.Sprintf("*Reference: Message %s*", p.ReplyToMessage)}
			doc.Fields = append([]models.Field{ref}, doc.Fields...)
		}

		id := in.ID()
		c.put(ctx, in, requestID, id, trade)

		return in.Respond(ctx, models.Response{
			Ephemeral:     true,
			MentionUserID: p.UserID,
			Documents:     []models.Document{doc},
			Controls:      []models.Control{models.RevealControl(id)},
		})
	})
}

// Trade validates the position inputs, stores an EnhancedTrade with computed
// metrics under the interaction id and posts the locked message.
func (c *Commands) Trade(ctx context.Context, in Interaction, p TradeParams) {
	c.run(ctx, in, "trade", func(ctx context.Context, requestID string) error {
		orderType, err := models.ParseOrderType(p.OrderType)
		if err != nil {
			return &position.ParamError{Param: "order_type", Constraint: "BUY or SELL", Value: p.OrderType}
		}

		priceRisk, err := position.RiskPercentageFromPrices(p.Entry, p.StopLoss)
		if err != nil {
			return err
		}

		trader, err := position.Calculate(position.Params{
			Balance:        p.TraderBalance,
			EntryPrice:     p.Entry,
			StopLoss:       p.StopLoss,
			RiskPercentage: p.RiskPercentage,
			Leverage:       p.Leverage,
		})
		if err != nil {
			return err
		}

		viewer, err := viewerPosition(p)
		if err != nil {
			return err
		}

		trade := models.EnhancedTrade{
			UserID:              p.UserID,
			Symbol:              p.Symbol,
			Entry:               p.Entry,
			StopLoss:            p.StopLoss,
			OrderType:           orderType,
			Status:              p.Status,
			PriceRiskPercentage: priceRisk,
			TraderMetrics:       &trader,
			UserMetrics:         &viewer,
			ImageURL:            p.ImageURL,
		}

		id := in.ID()
		c.put(ctx, in, requestID, id, trade)

		preview := models.Document{
			Title:       "🔒 Locked Trade",
			Description: fmt.Sprintf("**%s** • %s\n\nPress the button to unlock the content…", strings.ToUpper(p.Symbol), orderType),
			Color:       render.ColorBlurple,
			Timestamp:   c.now(),
		}
		return in.Respond(ctx, models.Response{
			MentionUserID: p.UserID,
			Documents:     []models.Document{preview},
			Controls:      []models.Control{models.RevealControl(id)},
		})
	})
}

// viewerPosition computes the "Your Position" block. It is a separate path
// from the trader's metrics but currently fed by the same balance.
// TODO: accept the viewer's own balance once /trade takes a viewer_balance option.
func viewerPosition(p TradeParams) (models.PositionMetrics, error) {
	return position.Calculate(position.Params{
		Balance:        p.TraderBalance,
		EntryPrice:     p.Entry,
		StopLoss:       p.StopLoss,
		RiskPercentage: p.RiskPercentage,
		Leverage:       p.Leverage,
	})
}

// percentageText is "" only when prices do not parse or entry is zero.
// Negative prices still get a text: |(sl-entry)/entry|.
func percentageText(entry, stopLoss string) string {
	e, err := helper.ParsePrice(entry)
	if err != nil || e == 0 {
		return ""
	}
	sl, err := helper.ParsePrice(stopLoss)
	if err != nil {
		return ""
	}
	return helper.FormatRiskText(math.Abs((sl - e) / e * 100))
}

// storeOnPosted keys payload by the posted message id, then attaches the
// control. If attaching fails the stored payload stays orphaned.
func (c *Commands) storeOnPosted(ctx context.Context, in Interaction, requestID string, payload models.SecretPayload) error {
	id, err := in.PostedMessageID(ctx)
	if err != nil {
		return fmt.Errorf("posted message id: %w", err)
	}
	c.put(ctx, in, requestID, id, payload)

	if err := in.AttachControls(ctx, []models.Control{models.RevealControl(id)}); err != nil {
		return fmt.Errorf("attach controls: %w", err)
	}
	return nil
}

func (c *Commands) put(ctx context.Context, in Interaction, requestID string, id models.SecretID, payload models.SecretPayload) {
	c.store.Put(ctx, id, payload)
	c.metrics.stored.WithLabelValues(string(payload.Kind())).Inc()
	c.journal.Record(models.AuditEvent{
		RequestID: requestID,
		Platform:  in.Platform(),
		Action:    models.AuditStore,
		SecretID:  id,
		ActorID:   in.Invoker().UserID,
		Outcome:   resultOK,
		Kind:      payload.Kind(),
		At:        c.now(),
	})
}

// run is the command boundary: throttling, tracing, error classification
// and panic recovery. Nothing escapes to the event loop.
func (c *Commands) run(ctx context.Context, in Interaction, name string, fn func(ctx context.Context, requestID string) error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "unlock.Command")
	defer span.Finish()

	requestID := uuid.NewString()
	invoker := in.Invoker()
	span.SetTag("command", name)
	span.SetTag("request_id", requestID)

	log := c.log.With(
		zap.String("request_id", requestID),
		zap.String("platform", in.Platform()),
		zap.String("command", name),
		zap.String("user", invoker.UserID),
	)

	result := resultOK
	defer func() {
		span.SetTag("result", result)
		c.metrics.commands.WithLabelValues(name, result).Inc()
	}()

	if !c.throttle.Allow(invoker.UserID) {
		result = resultThrottled
		log.Info("command throttled")
		c.reply(ctx, in, log, msgThrottled)
		return
	}

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return fn(ctx, requestID)
	}()

	var pe *position.ParamError
	switch {
	case err == nil:
		log.Info("command handled")
	case errors.As(err, &pe):
		result = resultInvalid
		log.Info("invalid command parameters", zap.String("param", pe.Param))
		c.reply(ctx, in, log, "❌ Invalid parameter: "+pe.Error())
	default:
		result = resultError
		log.Error("command failed", zap.Error(err))
		c.reply(ctx, in, log, msgUnexpected)
	}
}

func (c *Commands) reply(ctx context.Context, in Interaction, log *zap.Logger, text string) {
	if err := in.Respond(ctx, models.Response{Ephemeral: true, Content: text}); err != nil {
		log.Warn("private reply not delivered", zap.Error(err))
	}
}
