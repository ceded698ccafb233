package service

import (
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"

	"unlock_bot/internal/helper"
	"unlock_bot/internal/models"
	"unlock_bot/internal/unlock"
)

var (
	// <t:UNIX:f>: разметка времени Discord
	timestampMarkup = regexp.MustCompile(`<t:(\d+)(?::[a-zA-Z])?>`)
	// <:name:id>: кастомный эмодзи Discord, в Telegram остаётся только имя
	customEmoji = regexp.MustCompile(`<a?:([A-Za-z0-9_]+):\d+>`)
	bold        = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italic      = regexp.MustCompile(`\*([^*\n]+?)\*`)
)

const timestampLayout = "02 Jan 2006 15:04 UTC"

// toHTML переводит разметку документов в Telegram HTML.
func toHTML(s string) string {
	s = timestampMarkup.ReplaceAllStringFunc(s, func(m string) string {
		sub := timestampMarkup.FindStringSubmatch(m)
		sec, err := strconv.ParseInt(sub[1], 10, 64)
		if err != nil {
			return m
		}
		return time.Unix(sec, 0).UTC().Format(timestampLayout)
	})
	s = customEmoji.ReplaceAllString(s, ":$1:")
	s = html.EscapeString(s)
	s = bold.ReplaceAllString(s, "<b>$1</b>")
	s = italic.ReplaceAllString(s, "<i>$1</i>")
	return s
}

func mention(userID string) string {
	if _, err := strconv.ParseInt(userID, 10, 64); err != nil {
		return html.EscapeString(userID)
	}
	return `<a href="tg://user?id=` + userID + `">trader</a>`
}

// documentText: текст одного документа; картинка отправляется отдельно.
func documentText(doc models.Document) string {
	var b strings.Builder
	line := func(s string) {
		if s == "" {
			return
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s)
	}

	if doc.Title != "" {
		line("<b>" + toHTML(doc.Title) + "</b>")
	}
	line(toHTML(doc.Description))
	for _, f := range doc.Fields {
		if f.Name != "" {
			line("<b>" + toHTML(f.Name) + "</b>")
		}
		line(toHTML(strings.TrimSpace(f.Value)))
	}
	if doc.Footer != "" {
		line("<i>" + toHTML(doc.Footer) + "</i>")
	}
	return b.String()
}

// outgoing: одно сообщение Telegram, либо текст, либо фото.
type outgoing struct {
	Text     string
	PhotoURL string
}

// layout keeps document order: text collected so far is flushed before each
// image, so a document's text always precedes its picture.
func layout(resp models.Response) []outgoing {
	var (
		out   []outgoing
		parts []string
	)
	flush := func() {
		if len(parts) == 0 {
			return
		}
		out = append(out, outgoing{Text: strings.Join(parts, "\n\n")})
		parts = nil
	}

	if resp.MentionUserID != "" {
		parts = append(parts, mention(resp.MentionUserID))
	}
	if resp.Content != "" {
		parts = append(parts, toHTML(resp.Content))
	}
	for _, d := range resp.Documents {
		if t := documentText(d); t != "" {
			parts = append(parts, t)
		}
		if d.ImageURL != "" {
			flush()
			out = append(out, outgoing{PhotoURL: d.ImageURL})
		}
	}
	flush()
	return out
}

// parseTradeArgs: SYMBOL ENTRY SL BUY|SELL BALANCE LEVERAGE RISK
func parseTradeArgs(userID, args string) (unlock.TradeParams, bool) {
	f := strings.Fields(args)
	if len(f) != 7 {
		return unlock.TradeParams{}, false
	}

	var nums [5]float64
	for i, raw := range []string{f[1], f[2], f[4], f[5], f[6]} {
		v, err := helper.ParsePrice(raw)
		if err != nil {
			return unlock.TradeParams{}, false
		}
		nums[i] = v
	}

	return unlock.TradeParams{
		UserID:         userID,
		Symbol:         f[0],
		Entry:          nums[0],
		StopLoss:       nums[1],
		OrderType:      f[3],
		TraderBalance:  nums[2],
		Leverage:       nums[3],
		RiskPercentage: nums[4],
	}, true
}
