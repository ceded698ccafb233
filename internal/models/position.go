package models

import (
	"fmt"
	"strings"
)

// OrderType: направление сделки: BUY/SELL.
type OrderType string

const (
	OrderBuy  OrderType = "BUY"
	OrderSell OrderType = "SELL"
)

// ParseOrderType accepts buy/sell in any case.
func ParseOrderType(raw string) (OrderType, error) {
	switch OrderType(strings.ToUpper(strings.TrimSpace(raw))) {
	case OrderBuy:
		return OrderBuy, nil
	case OrderSell:
		return OrderSell, nil
	default:
		return "", fmt.Errorf("unknown order type %q", raw)
	}
}

// PositionMetrics: производные метрики позиции. Все значения конечные и >= 0.
type PositionMetrics struct {
	Balance        float64
	PositionSize   float64
	Quantity       float64
	RiskAmount     float64
	RiskPercentage float64
}
