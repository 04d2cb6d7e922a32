package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"invest-advisor/internal/entity"
	"invest-advisor/pkg/logger"

	"github.com/stretchr/testify/require"
)

// Shared fakes for the service tests.

type fakeNewsRepo struct {
	articles []entity.NewsArticle
	err      error
	calls    int
}

func (f *fakeNewsRepo) GetCompanyNews(context.Context, string) ([]entity.NewsArticle, error) {
	f.calls++
	return f.articles, f.err
}

type fakePriceRepo struct {
	series      *entity.PriceSeries
	seriesErr   error
	companyName string
	companyErr  error
	seriesCalls int
}

func (f *fakePriceRepo) GetDailySeries(context.Context, string, time.Time, time.Time) (*entity.PriceSeries, error) {
	f.seriesCalls++
	if f.seriesErr != nil {
		return nil, f.seriesErr
	}
	return f.series, nil
}

func (f *fakePriceRepo) GetCompanyName(context.Context, string) (string, error) {
	if f.companyErr != nil {
		return "", f.companyErr
	}
	return f.companyName, nil
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

func rampPriceSeries(symbol string, n int) *entity.PriceSeries {
	points := make([]entity.PricePoint, n)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range points {
		price := 100 + float64(i)
		points[i] = entity.PricePoint{
			Date:   base.AddDate(0, 0, i),
			Open:   price - 0.5,
			High:   price + 1,
			Low:    price - 1,
			Close:  price,
			Volume: 1000 + int64(i),
		}
	}
	return &entity.PriceSeries{Symbol: symbol, Points: points}
}

var errRepoDown = errors.New("repo down")
