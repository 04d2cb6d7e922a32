package risk

import (
	"fmt"
	"math"
	"strings"
)

// Fixed interpretation thresholds. Boundary values fall into the bucket
// whose upper bound they equal, strict less-than throughout.
const (
	volatilityLow    = 0.15
	volatilityMedium = 0.30

	betaDefensive  = 0.8
	betaMarketLike = 1.2

	sharpePoor     = 0.5
	sharpeModerate = 1.0
)

// Interpret renders a fixed-template narrative for the given metrics.
// Undefined metrics are reported as such, never as Inf or NaN.
func Interpret(m *Metrics) string {
	if m == nil {
		return "Risk metrics could not be computed."
	}

	var b strings.Builder
	b.WriteString("Risk assessment:\n\n")

	fmt.Fprintf(&b, "Volatility: %.2f%%\n", m.Volatility*100)
	switch {
	case m.Volatility < volatilityLow:
		b.WriteString("Low volatility. A relatively stable asset.\n")
	case m.Volatility < volatilityMedium:
		b.WriteString("Medium volatility. Moderate risk.\n")
	default:
		b.WriteString("High volatility. Elevated risk.\n")
	}

	if m.Beta == nil {
		b.WriteString("\nBeta: undefined (benchmark showed no variance over the period).\n")
	} else {
		fmt.Fprintf(&b, "\nBeta: %.2f\n", *m.Beta)
		switch {
		case *m.Beta < betaDefensive:
			b.WriteString("Less volatile than the market. May work well for diversification.\n")
		case *m.Beta < betaMarketLike:
			b.WriteString("Moves roughly in line with the market.\n")
		default:
			b.WriteString("More volatile than the market. Elevated risk.\n")
		}
	}

	fmt.Fprintf(&b, "\nValue at Risk (95%%): %.2f%%\n", m.VaR95*100)
	fmt.Fprintf(&b, "With 95%% confidence, one-day losses should not exceed %.2f%%.\n", math.Abs(m.VaR95)*100)

	if m.SharpeRatio == nil {
		b.WriteString("\nSharpe ratio: undefined (returns showed no variance over the period).\n")
	} else {
		fmt.Fprintf(&b, "\nSharpe ratio: %.2f\n", *m.SharpeRatio)
		switch {
		case *m.SharpeRatio < sharpePoor:
			b.WriteString("Low Sharpe ratio. Poor risk/return balance.\n")
		case *m.SharpeRatio < sharpeModerate:
			b.WriteString("Medium Sharpe ratio. Moderate risk/return balance.\n")
		default:
			b.WriteString("High Sharpe ratio. Good risk/return balance.\n")
		}
	}

	return b.String()
}
