package models

import (
	"strconv"
	"strings"
)

// SecretID: непрозрачный ключ секрета: id опубликованного сообщения
// либо id взаимодействия, в зависимости от команды.
type SecretID uint64

func (id SecretID) String() string { return strconv.FormatUint(uint64(id), 10) }

// ParseSecretID parses a platform snowflake into a SecretID.
func ParseSecretID(raw string) (SecretID, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, err
	}
	return SecretID(v), nil
}

type PayloadKind string

const (
	KindPlainText     PayloadKind = "plain_text"
	KindLegacyTrade   PayloadKind = "trade_ephemeral"
	KindEnhancedTrade PayloadKind = "trade_enhanced"
	KindRaw           PayloadKind = "raw"
)

// SecretPayload is the closed set of payload shapes the store can hold.
// Values are treated as immutable once stored.
type SecretPayload interface {
	Kind() PayloadKind
	secretPayload()
}

// PlainText: простой текст, самый старый формат.
type PlainText struct {
	Body string
}

// LegacyTrade is the first structured trade format. Prices stay display strings.
type LegacyTrade struct {
	UserID         string
	Symbol         string
	Entry          string
	StopLoss       string
	PercentageText string
	Emoji          string // optional
	ImageURL       string // optional
	Status         string
	SecretContent  string // optional
}

// EnhancedTrade carries numeric prices and the metrics computed when the command ran.
type EnhancedTrade struct {
	UserID              string
	Symbol              string
	Entry               float64
	StopLoss            float64
	OrderType           OrderType
	Status              string
	PriceRiskPercentage float64
	TraderMetrics       *PositionMetrics // optional
	UserMetrics         *PositionMetrics // optional
	ImageURL            string           // optional
}

// RawPayload holds a dictionary-shaped entry with no recognizable tag.
// It is rendered as plain text.
type RawPayload struct {
	Fields map[string]any
}

func (PlainText) Kind() PayloadKind     { return KindPlainText }
func (LegacyTrade) Kind() PayloadKind   { return KindLegacyTrade }
func (EnhancedTrade) Kind() PayloadKind { return KindEnhancedTrade }
func (RawPayload) Kind() PayloadKind    { return KindRaw }

func (PlainText) secretPayload()     {}
func (LegacyTrade) secretPayload()   {}
func (EnhancedTrade) secretPayload() {}
func (RawPayload) secretPayload()    {}
