package helper

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const notANumber = "n/a"

var thousand = decimal.NewFromInt(1000)

// FormatCurrency: от 1000 и выше: один знак и разделители тысяч ("$1,234.5"),
// ниже: два знака ("$999.99"). Rounding is half away from zero on the
// shortest decimal form of v, so 999.995 becomes "$1000.00".
func FormatCurrency(v float64) string {
	if !finite(v) {
		return notANumber
	}
	d := decimal.NewFromFloat(v)
	if d.Abs().GreaterThanOrEqual(thousand) {
		return "$" + groupThousands(d.StringFixed(1))
	}
	return "$" + d.StringFixed(2)
}

// FormatPercentage returns one decimal and a percent sign: "5.0%".
func FormatPercentage(v float64) string {
	if !finite(v) {
		return notANumber
	}
	return decimal.NewFromFloat(v).StringFixed(1) + "%"
}

// FormatQuantity picks precision by magnitude: "1.50K", "12.35", "0.5000".
func FormatQuantity(v float64) string {
	if !finite(v) {
		return notANumber
	}
	d := decimal.NewFromFloat(v)
	switch {
	case d.Abs().GreaterThan(thousand):
		return d.Div(thousand).StringFixed(2) + "K"
	case d.Abs().GreaterThan(decimal.NewFromInt(1)):
		return d.StringFixed(2)
	default:
		return d.StringFixed(4)
	}
}

// FormatPrice prints a price the way the user typed it: no trailing zeros.
func FormatPrice(v float64) string {
	if !finite(v) {
		return notANumber
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatRiskText is the legacy "(≤ 5.00%)" suffix shown next to the stop-loss.
func FormatRiskText(pct float64) string {
	if !finite(pct) {
		return ""
	}
	return "(≤ " + decimal.NewFromFloat(pct).StringFixed(2) + "%)"
}

// ParsePrice accepts "93,022.5" style input.
func ParsePrice(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
}

func groupThousands(fixed string) string {
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac, _ := strings.Cut(fixed, ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		// за пределами int64: без разделителей
		return sign + fixed
	}
	out := sign + humanize.Comma(n)
	if frac != "" {
		out += "." + frac
	}
	return out
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
