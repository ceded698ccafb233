package position

import (
	"errors"
	"fmt"
	"math"

	"unlock_bot/internal/models"
)

// ErrInvalidParameter is wrapped by every *ParamError.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParamError names the first constraint a caller violated.
type ParamError struct {
	Param      string
	Constraint string
	Value      any
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s must be %s (got %v)", e.Param, e.Constraint, e.Value)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParameter }

// Params: входные данные для расчёта позиции.
type Params struct {
	Balance        float64
	EntryPrice     float64
	StopLoss       float64
	RiskPercentage float64
	Leverage       float64
	// Quantity overrides the derived quantity when set.
	Quantity *float64
}

// RiskPercentageFromPrices returns |entry - stopLoss| / entry * 100.
func RiskPercentageFromPrices(entry, stopLoss float64) (float64, error) {
	if !(entry > 0) || math.IsInf(entry, 0) {
		return 0, &ParamError{Param: "entry", Constraint: "greater than 0", Value: entry}
	}
	if !finite(stopLoss) {
		return 0, &ParamError{Param: "stop_loss", Constraint: "a finite number", Value: stopLoss}
	}
	return math.Abs(entry-stopLoss) / entry * 100, nil
}

// Calculate validates p completely before producing anything:
//
//	positionSize   = balance * leverage
//	riskAmount     = positionSize * |entry - stopLoss| / entry
//	quantity       = p.Quantity or positionSize / entry
//	riskPercentage = riskAmount / balance * 100
func Calculate(p Params) (models.PositionMetrics, error) {
	if err := validate(p); err != nil {
		return models.PositionMetrics{}, err
	}

	positionSize := p.Balance * p.Leverage
	priceRisk := math.Abs(p.EntryPrice-p.StopLoss) / p.EntryPrice
	riskAmount := positionSize * priceRisk

	quantity := positionSize / p.EntryPrice
	if p.Quantity != nil {
		quantity = *p.Quantity
	}

	m := models.PositionMetrics{
		Balance:        p.Balance,
		PositionSize:   positionSize,
		Quantity:       quantity,
		RiskAmount:     riskAmount,
		RiskPercentage: riskAmount / p.Balance * 100,
	}
	// переполнение на огромных входах
	for _, v := range []float64{m.PositionSize, m.Quantity, m.RiskAmount, m.RiskPercentage} {
		if !finite(v) {
			return models.PositionMetrics{}, &ParamError{Param: "balance", Constraint: "small enough to compute a finite position", Value: p.Balance}
		}
	}
	return m, nil
}

// validate checks constraints in a fixed order and reports the first violation.
func validate(p Params) error {
	switch {
	case !positive(p.Balance):
		return &ParamError{Param: "balance", Constraint: "greater than 0", Value: p.Balance}
	case !positive(p.EntryPrice):
		return &ParamError{Param: "entry_price", Constraint: "greater than 0", Value: p.EntryPrice}
	case !positive(p.StopLoss):
		return &ParamError{Param: "stop_loss", Constraint: "greater than 0", Value: p.StopLoss}
	case p.EntryPrice == p.StopLoss:
		return &ParamError{Param: "stop_loss", Constraint: "different from entry_price", Value: p.StopLoss}
	case !positive(p.Leverage):
		return &ParamError{Param: "leverage", Constraint: "greater than 0", Value: p.Leverage}
	case !(p.RiskPercentage >= 0 && p.RiskPercentage <= 100):
		return &ParamError{Param: "risk_percentage", Constraint: "between 0 and 100", Value: p.RiskPercentage}
	case p.Quantity != nil && !positive(*p.Quantity):
		return &ParamError{Param: "quantity", Constraint: "greater than 0", Value: *p.Quantity}
	}
	return nil
}

func positive(v float64) bool { return v > 0 && !math.IsInf(v, 1) }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
