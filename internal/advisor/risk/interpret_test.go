package risk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestInterpret(t *testing.T) {
	t.Run("nil metrics", func(t *testing.T) {
		require.Equal(t, "Risk metrics could not be computed.", Interpret(nil))
	})

	t.Run("volatility buckets use strict bounds", func(t *testing.T) {
		low := Interpret(&Metrics{Volatility: 0.1499})
		require.Contains(t, low, "Low volatility")

		// Exactly 0.15 belongs to the medium bucket.
		medium := Interpret(&Metrics{Volatility: 0.15})
		require.Contains(t, medium, "Medium volatility")

		// Exactly 0.30 belongs to the high bucket.
		high := Interpret(&Metrics{Volatility: 0.30})
		require.Contains(t, high, "High volatility")
	})

	t.Run("beta buckets", func(t *testing.T) {
		require.Contains(t, Interpret(&Metrics{Beta: floatPtr(0.5)}), "Less volatile than the market")
		require.Contains(t, Interpret(&Metrics{Beta: floatPtr(1.0)}), "roughly in line with the market")
		require.Contains(t, Interpret(&Metrics{Beta: floatPtr(1.2)}), "More volatile than the market")
	})

	t.Run("undefined beta is reported not computed", func(t *testing.T) {
		text := Interpret(&Metrics{Volatility: 0.2})
		require.Contains(t, text, "Beta: undefined")
		require.NotContains(t, text, "NaN")
		require.NotContains(t, text, "Inf")
	})

	t.Run("var is shown as absolute loss", func(t *testing.T) {
		text := Interpret(&Metrics{VaR95: -0.0321})
		require.Contains(t, text, "Value at Risk (95%): -3.21%")
		require.Contains(t, text, "should not exceed 3.21%")
	})

	t.Run("sharpe buckets", func(t *testing.T) {
		require.Contains(t, Interpret(&Metrics{SharpeRatio: floatPtr(0.4)}), "Low Sharpe ratio")
		require.Contains(t, Interpret(&Metrics{SharpeRatio: floatPtr(0.5)}), "Medium Sharpe ratio")
		require.Contains(t, Interpret(&Metrics{SharpeRatio: floatPtr(1.0)}), "High Sharpe ratio")
	})

	t.Run("undefined sharpe is reported not computed", func(t *testing.T) {
		require.Contains(t, Interpret(&Metrics{Volatility: 0.2}), "Sharpe ratio: undefined")
	})
}
