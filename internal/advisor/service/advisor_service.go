package service

import (
	"context"
	"fmt"

	"invest-advisor/internal/advisor/config"
	"invest-advisor/internal/advisor/dto"
	"invest-advisor/internal/advisor/repository"
	"invest-advisor/internal/advisor/sentiment"
	"invest-advisor/pkg/logger"
	"invest-advisor/pkg/utils"

	"go.uber.org/zap"
)

// AdvisorService composes the forecast, risk and recommendation stages
// into one analysis. This is the orchestrator the deliveries call.
type AdvisorService interface {
	Analyze(ctx context.Context, symbol string, userID *int64) (*dto.AnalysisResult, error)
}

type advisorService struct {
	cfg               *config.Config
	log               *logger.Logger
	priceRepo         repository.PriceRepository
	forecastSvc       ForecastService
	riskSvc           RiskService
	recommendationSvc RecommendationService
}

// NewAdvisorService creates the top-level analysis orchestrator.
func NewAdvisorService(cfg *config.Config, log *logger.Logger, priceRepo repository.PriceRepository, forecastSvc ForecastService, riskSvc RiskService, recommendationSvc RecommendationService) AdvisorService {
	return &advisorService{
		cfg:               cfg,
		log:               log,
		priceRepo:         priceRepo,
		forecastSvc:       forecastSvc,
		riskSvc:           riskSvc,
		recommendationSvc: recommendationSvc,
	}
}

func (s *advisorService) Analyze(ctx context.Context, symbol string, userID *int64) (*dto.AnalysisResult, error) {
	start, end := utils.DateRange(s.cfg.Advisor.ForecastDays)

	forecastResult, err := s.forecastSvc.Forecast(ctx, symbol, start, end, 0)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", symbol, err)
	}

	// The repository caches the series, so this re-fetch is served from
	// Redis rather than the provider.
	series, err := s.priceRepo.GetDailySeries(ctx, symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", symbol, err)
	}

	result := &dto.AnalysisResult{
		Symbol:   symbol,
		Forecast: forecastResult,
		Sentiment: sentiment.Result{
			Score:    forecastResult.SentimentUsed,
			Degraded: forecastResult.SentimentDefaulted,
		},
	}

	if assessment, err := s.riskSvc.Assess(ctx, symbol); assessment != nil {
		result.Risk = assessment.Metrics
		result.RiskText = assessment.Interpretation
	} else if err != nil {
		s.log.Warn("Risk assessment unavailable",
			zap.String("symbol", symbol), logger.ErrorField(err))
	}

	rec, err := s.recommendationSvc.Recommend(ctx, symbol,
		forecastResult.LastPrice, forecastResult.PredictedPrice,
		forecastResult.SentimentUsed, series, userID)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", symbol, err)
	}
	result.Recommendation = rec

	return result, nil
}
