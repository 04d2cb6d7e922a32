package service

import (
	"context"
	"testing"
	"time"

	"invest-advisor/internal/advisor/config"
	"invest-advisor/internal/advisor/forecast"

	"github.com/stretchr/testify/require"
)

type countingRegressor struct {
	fits int
}

func (c *countingRegressor) Fit([]forecast.Window, []float64) error {
	c.fits++
	return nil
}

func (c *countingRegressor) Predict(forecast.Window) (float64, error) {
	return 0.5, nil
}

func forecastTestConfig() *config.Config {
	return &config.Config{
		Advisor: config.Advisor{
			ModelCacheTTL: time.Minute,
		},
	}
}

func TestForecastService_Forecast(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 70)

	t.Run("trains and predicts", func(t *testing.T) {
		priceRepo := &fakePriceRepo{series: rampPriceSeries("AAPL", 70), companyName: "Apple Inc"}
		news := &fakeNewsRepo{}
		sentimentSvc := NewSentimentService(newTestLogger(t), news, nil)
		regressor := &countingRegressor{}
		forecaster := forecast.NewForecaster(func(int) forecast.Regressor { return regressor })

		svc := NewForecastService(forecastTestConfig(), newTestLogger(t), priceRepo, sentimentSvc, forecaster)
		result, err := svc.Forecast(context.Background(), "AAPL", start, end, 60)

		require.NoError(t, err)
		require.Equal(t, 1, regressor.fits)
		require.Equal(t, 169.0, result.LastPrice)
		require.Greater(t, result.PredictedPrice, 0.0)
	})

	t.Run("cache hit skips retraining", func(t *testing.T) {
		priceRepo := &fakePriceRepo{series: rampPriceSeries("AAPL", 70), companyName: "Apple Inc"}
		sentimentSvc := NewSentimentService(newTestLogger(t), &fakeNewsRepo{}, nil)
		regressor := &countingRegressor{}
		forecaster := forecast.NewForecaster(func(int) forecast.Regressor { return regressor })

		svc := NewForecastService(forecastTestConfig(), newTestLogger(t), priceRepo, sentimentSvc, forecaster)

		first, err := svc.Forecast(context.Background(), "AAPL", start, end, 60)
		require.NoError(t, err)
		second, err := svc.Forecast(context.Background(), "AAPL", start, end, 60)
		require.NoError(t, err)

		require.Equal(t, 1, regressor.fits)
		require.Equal(t, 1, priceRepo.seriesCalls)
		require.Same(t, first, second)
	})

	t.Run("company name failure degrades to the symbol", func(t *testing.T) {
		priceRepo := &fakePriceRepo{series: rampPriceSeries("AAPL", 70), companyErr: errRepoDown}
		news := &fakeNewsRepo{err: errRepoDown}
		sentimentSvc := NewSentimentService(newTestLogger(t), news, nil)
		forecaster := forecast.NewForecaster(func(int) forecast.Regressor { return &countingRegressor{} })

		svc := NewForecastService(forecastTestConfig(), newTestLogger(t), priceRepo, sentimentSvc, forecaster)
		result, err := svc.Forecast(context.Background(), "AAPL", start, end, 60)

		require.NoError(t, err)
		require.True(t, result.SentimentDefaulted)
	})

	t.Run("price failure fails the pipeline", func(t *testing.T) {
		priceRepo := &fakePriceRepo{seriesErr: errRepoDown, companyName: "Apple Inc"}
		sentimentSvc := NewSentimentService(newTestLogger(t), &fakeNewsRepo{}, nil)
		forecaster := forecast.NewForecaster(func(int) forecast.Regressor { return &countingRegressor{} })

		svc := NewForecastService(forecastTestConfig(), newTestLogger(t), priceRepo, sentimentSvc, forecaster)
		result, err := svc.Forecast(context.Background(), "AAPL", start, end, 60)

		require.ErrorIs(t, err, errRepoDown)
		require.Nil(t, result)
	})

	t.Run("short history is insufficient", func(t *testing.T) {
		priceRepo := &fakePriceRepo{series: rampPriceSeries("AAPL", 30), companyName: "Apple Inc"}
		sentimentSvc := NewSentimentService(newTestLogger(t), &fakeNewsRepo{}, nil)
		forecaster := forecast.NewForecaster(func(int) forecast.Regressor { return &countingRegressor{} })

		svc := NewForecastService(forecastTestConfig(), newTestLogger(t), priceRepo, sentimentSvc, forecaster)
		_, err := svc.Forecast(context.Background(), "AAPL", start, end, 0)

		require.ErrorIs(t, err, forecast.ErrInsufficientData)
	})
}
