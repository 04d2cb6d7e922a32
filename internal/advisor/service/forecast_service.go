package service

import (
	"context"
	"fmt"
	"time"

	"invest-advisor/internal/advisor/config"
	"invest-advisor/internal/advisor/forecast"
	"invest-advisor/internal/advisor/repository"
	"invest-advisor/pkg/common"
	"invest-advisor/pkg/logger"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// ForecastService trains a sequence model on a symbol's history and
// predicts the next closing price. Results are cached with a TTL keyed
// by (symbol, range, look-back); a cache hit skips retraining.
type ForecastService interface {
	Forecast(ctx context.Context, symbol string, start, end time.Time, lookBack int) (*forecast.Result, error)
}

type forecastService struct {
	cfg          *config.Config
	log          *logger.Logger
	priceRepo    repository.PriceRepository
	sentimentSvc SentimentService
	forecaster   *forecast.Forecaster
	modelCache   *cache.Cache
}

// NewForecastService creates the forecasting pipeline service.
func NewForecastService(cfg *config.Config, log *logger.Logger, priceRepo repository.PriceRepository, sentimentSvc SentimentService, forecaster *forecast.Forecaster) ForecastService {
	return &forecastService{
		cfg:          cfg,
		log:          log,
		priceRepo:    priceRepo,
		sentimentSvc: sentimentSvc,
		forecaster:   forecaster,
		modelCache:   cache.New(cfg.Advisor.ModelCacheTTL, 2*cfg.Advisor.ModelCacheTTL),
	}
}

func (s *forecastService) Forecast(ctx context.Context, symbol string, start, end time.Time, lookBack int) (*forecast.Result, error) {
	if lookBack <= 0 {
		lookBack = forecast.DefaultLookBack
	}

	cacheKey := fmt.Sprintf("%s:%s:%s:%d", symbol,
		start.Format(common.DateLayout), end.Format(common.DateLayout), lookBack)
	if cached, ok := s.modelCache.Get(cacheKey); ok {
		return cached.(*forecast.Result), nil
	}

	companyName, err := s.priceRepo.GetCompanyName(ctx, symbol)
	if err != nil {
		// The sentiment query degrades to the raw symbol; only price
		// data is allowed to fail the pipeline.
		s.log.Warn("Failed to resolve company name, using symbol",
			zap.String("symbol", symbol), logger.ErrorField(err))
		companyName = symbol
	}

	sentimentResult := s.sentimentSvc.CompanySentiment(ctx, companyName)

	series, err := s.priceRepo.GetDailySeries(ctx, symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("forecast for %s: %w", symbol, err)
	}

	s.log.Info("Training forecast model",
		zap.String("symbol", symbol),
		zap.Int("points", series.Len()),
		zap.Int("look_back", lookBack),
		zap.Float64("sentiment", sentimentResult.Score))

	result, err := s.forecaster.Run(series.Closes(), sentimentResult.Score, sentimentResult.Degraded, lookBack)
	if err != nil {
		return nil, fmt.Errorf("forecast for %s: %w", symbol, err)
	}

	s.modelCache.Set(cacheKey, result, cache.DefaultExpiration)
	return result, nil
}
