package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"unlock_bot/internal/helper"
	"unlock_bot/internal/models"
)

const (
	ColorGreen      = 0x2ECC71
	ColorRed        = 0xE74C3C
	ColorBlue       = 0x3498DB
	ColorBlurple    = 0x5865F2
	ColorLegacyTeal = 0x3BA55C // rgb(59, 165, 92)

	Disclaimer = "⚠️ **Disclaimer**\nChallenge trades may involve higher risks. " +
		"Only risk what you can afford to lose and be prepared for the possibility " +
		"of significant losses. Always trade responsibly."

	defaultStatus = "Active"
)

var orderGlyphs = map[models.OrderType]string{
	models.OrderBuy:  "🟢",
	models.OrderSell: "🔴",
}

var orderColors = map[models.OrderType]int{
	models.OrderBuy:  ColorGreen,
	models.OrderSell: ColorRed,
}

// Renderer turns a stored payload into display documents.
type Renderer struct {
	now func() time.Time
}

func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

// WithClock returns a copy of r that reads time from now.
func (r *Renderer) WithClock(now func() time.Time) *Renderer {
	return &Renderer{now: now}
}

// Render dispatches on the payload variant. Anything unrecognized is shown
// as plain text so entries written by older code keep working.
func (r *Renderer) Render(p models.SecretPayload, viewer models.Viewer) []models.Document {
	switch v := p.(type) {
	case models.PlainText:
		return []models.Document{r.plainText(v.Body, viewer)}
	case models.LegacyTrade:
		return []models.Document{r.legacyTrade(v)}
	case models.EnhancedTrade:
		return r.enhancedTrade(v)
	case models.RawPayload:
		return []models.Document{r.plainText(rawBody(v), viewer)}
	default:
		return []models.Document{r.plainText(fmt.Sprint(p), viewer)}
	}
}

// Mention returns the user the reveal should mention, if any.
func Mention(p models.SecretPayload) string {
	switch v := p.(type) {
	case models.LegacyTrade:
		return v.UserID
	case models.EnhancedTrade:
		return v.UserID
	default:
		return ""
	}
}

func (r *Renderer) plainText(body string, viewer models.Viewer) models.Document {
	return models.Document{
		Title:       "Unlocked Content",
		Description: body,
		Color:       ColorGreen,
		Footer:      "Unlocked by " + viewer.DisplayName,
		Timestamp:   r.now(),
	}
}

// LegacyDescription builds "<glyph> **SYM** | **Entry:** x | **SL:** y (≤ z%)".
// Shared with the command that posts the private preview.
func LegacyDescription(t models.LegacyTrade) string {
	var b strings.Builder
	if g, ok := ParseGlyph(t.Emoji, t.Symbol); ok {
		b.WriteString(g.String())
		b.WriteString(" ")
	}
	fmt.Fprintf(&b, "**%s** | **Entry:** %s | **SL:** %s %s",
		strings.ToUpper(t.Symbol), t.Entry, t.StopLoss, t.PercentageText)
	return b.String()
}

// LegacyDocument renders a LegacyTrade at the given instant.
func LegacyDocument(t models.LegacyTrade, now time.Time) models.Document {
	status := t.Status
	if status == "" {
		status = defaultStatus
	}

	doc := models.Document{
		Description: LegacyDescription(t),
		Color:       ColorLegacyTeal,
		Fields:      []models.Field{{Name: "", Value: Disclaimer}},
		Footer:      fmt.Sprintf("Status: 🛑 %s • <t:%d:f>", status, now.Unix()),
		ImageURL:    t.ImageURL,
		Timestamp:   now,
	}
	if t.SecretContent != "" {
		doc.Fields = append(doc.Fields, models.Field{Name: "", Value: "\n" + t.SecretContent})
	}
	return doc
}

func (r *Renderer) legacyTrade(t models.LegacyTrade) models.Document {
	return LegacyDocument(t, r.now())
}

// enhancedTrade: детали сделки, затем обзор позиции, затем картинка. Порядок важен.
func (r *Renderer) enhancedTrade(t models.EnhancedTrade) []models.Document {
	color, ok := orderColors[t.OrderType]
	if !ok {
		color = ColorBlurple
	}
	status := t.Status
	if status == "" {
		status = defaultStatus
	}

	details := models.Document{
		Description: fmt.Sprintf("%s **%s** | **Entry:** %s | **SL:** %s (≤ %s)",
			orderGlyphs[t.OrderType],
			strings.ToUpper(t.Symbol),
			helper.FormatPrice(t.Entry),
			helper.FormatPrice(t.StopLoss),
			helper.FormatPercentage(t.PriceRiskPercentage),
		),
		Color:     color,
		Fields:    []models.Field{{Name: "", Value: Disclaimer}},
		Footer:    "Status: " + status,
		Timestamp: r.now(),
	}
	docs := []models.Document{details}

	if t.TraderMetrics != nil || t.UserMetrics != nil {
		overview := models.Document{
			Title: "📊 Position Overview",
			Color: ColorBlue,
		}
		if t.TraderMetrics != nil {
			overview.Fields = append(overview.Fields, models.Field{Name: "Trader Position", Value: metricsText(*t.TraderMetrics)})
		}
		if t.UserMetrics != nil {
			overview.Fields = append(overview.Fields, models.Field{Name: "Your Position", Value: metricsText(*t.UserMetrics)})
		}
		docs = append(docs, overview)
	}

	if t.ImageURL != "" {
		docs = append(docs, models.Document{ImageURL: t.ImageURL})
	}
	return docs
}

func metricsText(m models.PositionMetrics) string {
	return fmt.Sprintf(
		"**Balance:** %s\n"+
			"**Position Size:** %s\n"+
			"**Quantity:** %s\n"+
			"**Risk:** %s (%s)",
		helper.FormatCurrency(m.Balance),
		helper.FormatCurrency(m.PositionSize),
		helper.FormatQuantity(m.Quantity),
		helper.FormatCurrency(m.RiskAmount),
		helper.FormatPercentage(m.RiskPercentage),
	)
}

func rawBody(p models.RawPayload) string {
	// ConfigStd сортирует ключи, вывод стабилен между нажатиями
	s, err := sonic.ConfigStd.MarshalToString(p.Fields)
	if err != nil {
		return fmt.Sprint(p.Fields)
	}
	return s
}
