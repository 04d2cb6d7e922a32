package risk

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// ErrDegenerateStatistic marks a metric whose denominator is ~zero
// (constant benchmark or constant asset returns). The remaining metrics
// are still reported; the degenerate one is left undefined instead of
// leaking Inf or NaN.
var ErrDegenerateStatistic = errors.New("degenerate statistic")

const (
	tradingDaysPerYear = 252

	// Variance below this is treated as zero.
	varianceEpsilon = 1e-12
)

// Metrics holds the statistical risk profile of one asset against a
// benchmark. Beta and SharpeRatio are nil when undefined.
type Metrics struct {
	Volatility  float64  `json:"volatility"`
	Beta        *float64 `json:"beta,omitempty"`
	VaR95       float64  `json:"var_95"`
	SharpeRatio *float64 `json:"sharpe_ratio,omitempty"`
}

// Returns converts a close-price series into simple daily returns.
func Returns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		returns = append(returns, closes[i]/closes[i-1]-1)
	}
	return returns
}

// ComputeMetrics derives volatility, beta, 95% VaR and the Sharpe ratio
// from aligned daily-return series. Degenerate denominators yield a
// partial result: the affected metric is nil and the returned error
// wraps ErrDegenerateStatistic.
func ComputeMetrics(assetReturns, benchReturns []float64) (*Metrics, error) {
	if len(assetReturns) < 2 || len(benchReturns) < 2 {
		return nil, fmt.Errorf("need at least 2 return observations, got %d asset / %d benchmark",
			len(assetReturns), len(benchReturns))
	}
	if len(assetReturns) != len(benchReturns) {
		return nil, fmt.Errorf("return series are not aligned: %d vs %d", len(assetReturns), len(benchReturns))
	}

	stdev, err := stats.StandardDeviationSample(assetReturns)
	if err != nil {
		return nil, err
	}
	mean, err := stats.Mean(assetReturns)
	if err != nil {
		return nil, err
	}

	m := &Metrics{
		Volatility: stdev * math.Sqrt(tradingDaysPerYear),
		VaR95:      Percentile(assetReturns, 5),
	}

	var degenerate error

	benchVariance, err := stats.PopulationVariance(benchReturns)
	if err != nil {
		return nil, err
	}
	if benchVariance <= varianceEpsilon {
		degenerate = errors.Join(degenerate, fmt.Errorf("beta: benchmark variance is zero: %w", ErrDegenerateStatistic))
	} else {
		covariance, err := stats.Covariance(assetReturns, benchReturns)
		if err != nil {
			return nil, err
		}
		beta := covariance / benchVariance
		m.Beta = &beta
	}

	if stdev*stdev <= varianceEpsilon {
		degenerate = errors.Join(degenerate, fmt.Errorf("sharpe: return stdev is zero: %w", ErrDegenerateStatistic))
	} else {
		sharpe := mean / stdev * math.Sqrt(tradingDaysPerYear)
		m.SharpeRatio = &sharpe
	}

	return m, degenerate
}

// Percentile computes the pct-th percentile of the sample with linear
// interpolation between order statistics, not nearest rank.
func Percentile(sample []float64, pct float64) float64 {
	if len(sample) == 0 {
		return 0
	}
	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := pct / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// RollingVolatility computes the sample standard deviation of returns
// over each full trailing window. A series of N returns yields
// N-window+1 values.
func RollingVolatility(returns []float64, window int) []float64 {
	if window < 2 || len(returns) < window {
		return nil
	}
	out := make([]float64, 0, len(returns)-window+1)
	for i := window; i <= len(returns); i++ {
		stdev, err := stats.StandardDeviationSample(returns[i-window : i])
		if err != nil {
			return nil
		}
		out = append(out, stdev)
	}
	return out
}

// PercentileRank reports where value falls within the sample on a 0-100
// scale, using the rank definition: the mean of the strict and weak
// counts, with a matched sample member counting itself once.
func PercentileRank(sample []float64, value float64) float64 {
	if len(sample) == 0 {
		return 0
	}
	var less, lessOrEqual int
	for _, v := range sample {
		if v < value {
			less++
		}
		if v <= value {
			lessOrEqual++
		}
	}
	rank := less + lessOrEqual
	if lessOrEqual > less {
		rank++
	}
	return float64(rank) * 50 / float64(len(sample))
}
