package service

import (
	"context"
	"fmt"

	"invest-advisor/internal/advisor/config"
	"invest-advisor/internal/advisor/dto"
	"invest-advisor/internal/advisor/repository"
	"invest-advisor/internal/advisor/risk"
	"invest-advisor/pkg/logger"
	"invest-advisor/pkg/utils"

	"go.uber.org/zap"
)

// RiskService computes statistical risk metrics for a symbol against
// the configured market benchmark.
type RiskService interface {
	Assess(ctx context.Context, symbol string) (*dto.RiskAssessment, error)
}

type riskService struct {
	cfg       *config.Config
	log       *logger.Logger
	priceRepo repository.PriceRepository
}

// NewRiskService creates the risk assessment service.
func NewRiskService(cfg *config.Config, log *logger.Logger, priceRepo repository.PriceRepository) RiskService {
	return &riskService{cfg: cfg, log: log, priceRepo: priceRepo}
}

// Assess fetches asset and benchmark history over the configured period
// and derives the risk metrics. A degenerate benchmark or return series
// yields a partial result: the assessment is still returned and the
// error wraps risk.ErrDegenerateStatistic.
func (s *riskService) Assess(ctx context.Context, symbol string) (*dto.RiskAssessment, error) {
	start, end := utils.DateRange(s.cfg.Advisor.RiskPeriodDays)

	assetSeries, err := s.priceRepo.GetDailySeries(ctx, symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("risk assessment for %s: %w", symbol, err)
	}
	benchSeries, err := s.priceRepo.GetDailySeries(ctx, s.cfg.Advisor.BenchmarkSymbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("risk assessment for %s: benchmark %s: %w", symbol, s.cfg.Advisor.BenchmarkSymbol, err)
	}

	assetReturns := risk.Returns(assetSeries.Closes())
	benchReturns := risk.Returns(benchSeries.Closes())

	// Trading calendars can differ by a session or two; align the
	// series on their most recent observations.
	if len(assetReturns) != len(benchReturns) {
		n := len(assetReturns)
		if len(benchReturns) < n {
			n = len(benchReturns)
		}
		assetReturns = assetReturns[len(assetReturns)-n:]
		benchReturns = benchReturns[len(benchReturns)-n:]
	}

	metrics, err := risk.ComputeMetrics(assetReturns, benchReturns)
	if metrics == nil {
		return nil, fmt.Errorf("risk assessment for %s: %w", symbol, err)
	}
	if err != nil {
		s.log.Warn("Risk metrics partially undefined",
			zap.String("symbol", symbol), logger.ErrorField(err))
	}

	return &dto.RiskAssessment{
		Symbol:         symbol,
		Metrics:        metrics,
		Interpretation: risk.Interpret(metrics),
	}, err
}
