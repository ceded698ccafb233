package helper

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"small", 12.5, "$12.50"},
		{"rounds up to thousand below threshold", 999.995, "$1000.00"},
		{"rounds down", 999.994, "$999.99"},
		{"thousand", 1000, "$1,000.0"},
		{"grouped", 1234567.89, "$1,234,567.9"},
		{"zero", 0, "$0.00"},
		{"nan", math.NaN(), "n/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(tt.in))
		})
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "5.0%", FormatPercentage(5))
	assert.Equal(t, "25.0%", FormatPercentage(25))
	assert.Equal(t, "0.3%", FormatPercentage(0.25))
	assert.Equal(t, "n/a", FormatPercentage(math.Inf(1)))
}

func TestFormatQuantity(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.5, "0.5000"},
		{1, "1.0000"},
		{50, "50.00"},
		{1000, "1000.00"},
		{1500, "1.50K"},
		{123456, "123.46K"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatQuantity(tt.in), "FormatQuantity(%v)", tt.in)
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "100", FormatPrice(100))
	assert.Equal(t, "93022.5", FormatPrice(93022.5))
}

func TestFormatRiskText(t *testing.T) {
	assert.Equal(t, "(≤ 5.00%)", FormatRiskText(5))
	assert.Equal(t, "(≤ 0.28%)", FormatRiskText(0.2773))
	assert.Empty(t, FormatRiskText(math.NaN()))
}

func TestParsePrice(t *testing.T) {
	v, err := ParsePrice(" 93,022.5 ")
	require.NoError(t, err)
	assert.Equal(t, 93022.5, v)

	_, err = ParsePrice("abc")
	assert.Error(t, err)
}
