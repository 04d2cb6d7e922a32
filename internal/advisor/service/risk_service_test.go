package service

import (
	"context"
	"testing"
	"time"

	"invest-advisor/internal/advisor/config"
	"invest-advisor/internal/advisor/risk"
	"invest-advisor/internal/entity"

	"github.com/stretchr/testify/require"
)

type symbolPriceRepo struct {
	series map[string]*entity.PriceSeries
	err    error
}

func (f *symbolPriceRepo) GetDailySeries(_ context.Context, symbol string, _, _ time.Time) (*entity.PriceSeries, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.series[symbol], nil
}

func (f *symbolPriceRepo) GetCompanyName(_ context.Context, symbol string) (string, error) {
	return symbol, nil
}

func seriesFromCloses(symbol string, closes []float64) *entity.PriceSeries {
	points := make([]entity.PricePoint, len(closes))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		points[i] = entity.PricePoint{Date: base.AddDate(0, 0, i), Close: c}
	}
	return &entity.PriceSeries{Symbol: symbol, Points: points}
}

func riskTestConfig() *config.Config {
	return &config.Config{
		Advisor: config.Advisor{
			BenchmarkSymbol: "^GSPC",
			RiskPeriodDays:  30,
		},
	}
}

func TestRiskService_Assess(t *testing.T) {
	asset := []float64{100, 102, 99, 104, 103, 107, 105}
	bench := []float64{4000, 4030, 3990, 4060, 4050, 4100, 4080}

	t.Run("full assessment", func(t *testing.T) {
		repo := &symbolPriceRepo{series: map[string]*entity.PriceSeries{
			"AAPL":  seriesFromCloses("AAPL", asset),
			"^GSPC": seriesFromCloses("^GSPC", bench),
		}}
		svc := NewRiskService(riskTestConfig(), newTestLogger(t), repo)

		assessment, err := svc.Assess(context.Background(), "AAPL")

		require.NoError(t, err)
		require.Equal(t, "AAPL", assessment.Symbol)
		require.NotNil(t, assessment.Metrics.Beta)
		require.Contains(t, assessment.Interpretation, "Risk assessment:")
	})

	t.Run("mismatched calendars are tail aligned", func(t *testing.T) {
		repo := &symbolPriceRepo{series: map[string]*entity.PriceSeries{
			"AAPL":  seriesFromCloses("AAPL", asset),
			"^GSPC": seriesFromCloses("^GSPC", bench[1:]),
		}}
		svc := NewRiskService(riskTestConfig(), newTestLogger(t), repo)

		assessment, err := svc.Assess(context.Background(), "AAPL")

		require.NoError(t, err)
		require.NotNil(t, assessment.Metrics)
	})

	t.Run("flat benchmark is a partial result", func(t *testing.T) {
		repo := &symbolPriceRepo{series: map[string]*entity.PriceSeries{
			"AAPL":  seriesFromCloses("AAPL", asset),
			"^GSPC": seriesFromCloses("^GSPC", []float64{4000, 4000, 4000, 4000, 4000, 4000, 4000}),
		}}
		svc := NewRiskService(riskTestConfig(), newTestLogger(t), repo)

		assessment, err := svc.Assess(context.Background(), "AAPL")

		require.ErrorIs(t, err, risk.ErrDegenerateStatistic)
		require.NotNil(t, assessment)
		require.Nil(t, assessment.Metrics.Beta)
		require.Contains(t, assessment.Interpretation, "Beta: undefined")
	})

	t.Run("provider failure propagates", func(t *testing.T) {
		repo := &symbolPriceRepo{err: errRepoDown}
		svc := NewRiskService(riskTestConfig(), newTestLogger(t), repo)

		assessment, err := svc.Assess(context.Background(), "AAPL")

		require.ErrorIs(t, err, errRepoDown)
		require.Nil(t, assessment)
	})
}
