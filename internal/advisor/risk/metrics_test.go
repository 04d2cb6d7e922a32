package risk

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReturns(t *testing.T) {
	t.Run("converts closes to simple returns", func(t *testing.T) {
		returns := Returns([]float64{100, 110, 99})

		require.Len(t, returns, 2)
		require.InDelta(t, 0.10, returns[0], 1e-12)
		require.InDelta(t, -0.10, returns[1], 1e-12)
	})

	t.Run("too short series yields nil", func(t *testing.T) {
		require.Nil(t, Returns(nil))
		require.Nil(t, Returns([]float64{100}))
	})
}

func TestComputeMetrics(t *testing.T) {
	asset := []float64{0.01, -0.02, 0.03, 0.005, -0.01, 0.02}
	bench := []float64{0.005, -0.01, 0.02, 0.002, -0.005, 0.01}

	t.Run("full metrics on varying series", func(t *testing.T) {
		m, err := ComputeMetrics(asset, bench)

		require.NoError(t, err)
		require.NotNil(t, m)
		require.Greater(t, m.Volatility, 0.0)
		require.NotNil(t, m.Beta)
		require.Greater(t, *m.Beta, 0.0)
		require.NotNil(t, m.SharpeRatio)
		require.InDelta(t, Percentile(asset, 5), m.VaR95, 1e-12)
	})

	t.Run("same inputs give identical outputs", func(t *testing.T) {
		m1, err1 := ComputeMetrics(asset, bench)
		m2, err2 := ComputeMetrics(asset, bench)

		require.NoError(t, err1)
		require.NoError(t, err2)
		require.Equal(t, m1.Volatility, m2.Volatility)
		require.Equal(t, *m1.Beta, *m2.Beta)
		require.Equal(t, m1.VaR95, m2.VaR95)
		require.Equal(t, *m1.SharpeRatio, *m2.SharpeRatio)
	})

	t.Run("constant benchmark leaves beta undefined", func(t *testing.T) {
		flat := []float64{0.001, 0.001, 0.001, 0.001, 0.001, 0.001}

		m, err := ComputeMetrics(asset, flat)

		require.ErrorIs(t, err, ErrDegenerateStatistic)
		require.NotNil(t, m)
		require.Nil(t, m.Beta)
		require.Greater(t, m.Volatility, 0.0)
		require.NotNil(t, m.SharpeRatio)
	})

	t.Run("constant asset returns leave sharpe undefined", func(t *testing.T) {
		flat := []float64{0.001, 0.001, 0.001, 0.001, 0.001, 0.001}

		m, err := ComputeMetrics(flat, bench)

		require.ErrorIs(t, err, ErrDegenerateStatistic)
		require.NotNil(t, m)
		require.Nil(t, m.SharpeRatio)
		require.NotNil(t, m.Beta)
		require.InDelta(t, 0.0, m.Volatility, 1e-9)
	})

	t.Run("misaligned series rejected", func(t *testing.T) {
		m, err := ComputeMetrics(asset, bench[:4])

		require.Error(t, err)
		require.Nil(t, m)
	})

	t.Run("too few observations rejected", func(t *testing.T) {
		m, err := ComputeMetrics([]float64{0.01}, []float64{0.01})

		require.Error(t, err)
		require.Nil(t, m)
	})
}

func TestPercentile(t *testing.T) {
	t.Run("interpolates between order statistics", func(t *testing.T) {
		sample := []float64{1, 2, 3, 4}

		require.InDelta(t, 1.15, Percentile(sample, 5), 1e-12)
		require.InDelta(t, 2.5, Percentile(sample, 50), 1e-12)
		require.InDelta(t, 4.0, Percentile(sample, 100), 1e-12)
	})

	t.Run("does not mutate the sample", func(t *testing.T) {
		sample := []float64{3, 1, 2}
		Percentile(sample, 50)
		require.Equal(t, []float64{3, 1, 2}, sample)
	})

	t.Run("single observation is every percentile", func(t *testing.T) {
		require.Equal(t, 7.0, Percentile([]float64{7}, 5))
		require.Equal(t, 7.0, Percentile([]float64{7}, 95))
	})

	t.Run("empty sample yields zero", func(t *testing.T) {
		require.Equal(t, 0.0, Percentile(nil, 5))
	})
}

func TestRollingVolatility(t *testing.T) {
	returns := []float64{0.01, -0.02, 0.03, 0.005, -0.01, 0.02, -0.005, 0.015, 0.0, -0.01}

	t.Run("full windows only", func(t *testing.T) {
		rolling := RollingVolatility(returns, 3)
		require.Len(t, rolling, len(returns)-3+1)
		for _, v := range rolling {
			require.GreaterOrEqual(t, v, 0.0)
		}
	})

	t.Run("window longer than series yields nil", func(t *testing.T) {
		require.Nil(t, RollingVolatility(returns, len(returns)+1))
	})

	t.Run("window below two yields nil", func(t *testing.T) {
		require.Nil(t, RollingVolatility(returns, 1))
	})
}

func TestPercentileRank(t *testing.T) {
	sample := []float64{1, 2, 3, 4, 5}

	t.Run("sample members count themselves once", func(t *testing.T) {
		require.InDelta(t, 60.0, PercentileRank(sample, 3), 1e-12)
		require.InDelta(t, 100.0, PercentileRank(sample, 5), 1e-12)
		require.InDelta(t, 20.0, PercentileRank(sample, 1), 1e-12)
	})

	t.Run("non-members rank by the strict count", func(t *testing.T) {
		require.InDelta(t, 40.0, PercentileRank(sample, 2.5), 1e-12)
		require.InDelta(t, 0.0, PercentileRank(sample, 0), 1e-12)
		require.InDelta(t, 100.0, PercentileRank(sample, 6), 1e-12)
	})

	t.Run("empty sample ranks zero", func(t *testing.T) {
		require.Equal(t, 0.0, PercentileRank(nil, 1))
	})
}

func TestDegenerateErrorsAreJoined(t *testing.T) {
	flat := []float64{0.001, 0.001, 0.001, 0.001}

	m, err := ComputeMetrics(flat, flat)

	require.NotNil(t, m)
	require.Nil(t, m.Beta)
	require.Nil(t, m.SharpeRatio)
	require.True(t, errors.Is(err, ErrDegenerateStatistic))
}
