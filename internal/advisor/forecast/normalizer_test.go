package forecast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizerRoundTrip(t *testing.T) {
	closes := []float64{100, 150, 125, 90, 180}
	sentiments := []float64{-0.4, 0.1, 0.3, -0.1, 0.2}
	n := FitNormalizer(closes, sentiments)

	t.Run("scale then inverse recovers the price", func(t *testing.T) {
		for _, v := range closes {
			require.InDelta(t, v, n.InverseClose(n.ScaleClose(v)), 1e-9)
		}
	})

	t.Run("scaled values stay in the unit interval", func(t *testing.T) {
		for _, v := range closes {
			scaled := n.ScaleClose(v)
			require.GreaterOrEqual(t, scaled, 0.0)
			require.LessOrEqual(t, scaled, 1.0)
		}
		for _, v := range sentiments {
			scaled := n.ScaleSentiment(v)
			require.GreaterOrEqual(t, scaled, 0.0)
			require.LessOrEqual(t, scaled, 1.0)
		}
	})

	t.Run("extremes map to the interval bounds", func(t *testing.T) {
		require.Equal(t, 0.0, n.ScaleClose(90))
		require.Equal(t, 1.0, n.ScaleClose(180))
	})
}

func TestNormalizerDegenerateColumn(t *testing.T) {
	// A constant column has no range; it scales to zero instead of NaN.
	n := FitNormalizer([]float64{42, 42, 42}, []float64{0, 0, 0})

	require.Equal(t, 0.0, n.ScaleClose(42))
	require.Equal(t, 0.0, n.ScaleSentiment(0))
	require.Equal(t, 42.0, n.InverseClose(0.7))
}
