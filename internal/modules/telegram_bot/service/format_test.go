package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unlock_bot/internal/models"
)

func TestToHTML(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"**BTC** | **Entry:** 100", "<b>BTC</b> | <b>Entry:</b> 100"},
		{"a < b & c", "a &lt; b &amp; c"},
		{"*Reference: Message 5*", "<i>Reference: Message 5</i>"},
		{"Status: 🛑 Active • <t:1741944413:f>", "Status: 🛑 Active • 14 Mar 2025 09:26 UTC"},
		{"<:btc:123> long", ":btc: long"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, toHTML(c.in), c.in)
	}
}

func TestDocumentText(t *testing.T) {
	doc := models.Document{
		Title:       "📊 Position Overview",
		Description: "**BTC**",
		Fields: []models.Field{
			{Name: "Trader Position", Value: "**Balance:** $1,000.0"},
			{Name: "", Value: "\nsecret"},
		},
		Footer:   "Status: Active",
		ImageURL: "https://img",
	}
	want := "<b>📊 Position Overview</b>\n" +
		"<b>BTC</b>\n" +
		"<b>Trader Position</b>\n" +
		"<b>Balance:</b> $1,000.0\n" +
		"secret\n" +
		"<i>Status: Active</i>"
	assert.Equal(t, want, documentText(doc))
	assert.Empty(t, documentText(models.Document{ImageURL: "https://img"}))
}

func TestLayout(t *testing.T) {
	resp := models.Response{
		MentionUserID: "42",
		Content:       "hi",
		Documents: []models.Document{
			{Description: "details"},
			{Description: "overview"},
			{ImageURL: "https://img"},
		},
	}
	want := []outgoing{
		{Text: `<a href="tg://user?id=42">trader</a>` + "\n\nhi\n\ndetails\n\noverview"},
		{PhotoURL: "https://img"},
	}
	assert.Equal(t, want, layout(resp))
}

func TestLayout_TextBeforeItsImage(t *testing.T) {
	resp := models.Response{
		Documents: []models.Document{
			{Description: "first", ImageURL: "https://a"},
			{Description: "second"},
		},
	}
	want := []outgoing{
		{Text: "first"},
		{PhotoURL: "https://a"},
		{Text: "second"},
	}
	assert.Equal(t, want, layout(resp))
	assert.Empty(t, layout(models.Response{}))
}

func TestParseTradeArgs(t *testing.T) {
	p, ok := parseTradeArgs("7", "BTCUSDT 100 95 buy 1,000 10 2")
	require.True(t, ok)
	assert.Equal(t, "7", p.UserID)
	assert.Equal(t, "BTCUSDT", p.Symbol)
	assert.Equal(t, 100.0, p.Entry)
	assert.Equal(t, 95.0, p.StopLoss)
	assert.Equal(t, "buy", p.OrderType)
	assert.Equal(t, 1000.0, p.TraderBalance)
	assert.Equal(t, 10.0, p.Leverage)
	assert.Equal(t, 2.0, p.RiskPercentage)

	_, ok = parseTradeArgs("7", "BTCUSDT 100 95 BUY 1000 10")
	assert.False(t, ok)
	_, ok = parseTradeArgs("7", "BTCUSDT abc 95 BUY 1000 10 2")
	assert.False(t, ok)
}
