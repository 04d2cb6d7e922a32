package service

import (
	"context"
	"fmt"
	"strings"

	"invest-advisor/internal/advisor/config"
	"invest-advisor/internal/advisor/repository"
	"invest-advisor/pkg/common"
	"invest-advisor/pkg/logger"
	"invest-advisor/pkg/utils"
)

// HistoryService summarizes recent price history as text.
type HistoryService interface {
	Summary(ctx context.Context, symbol string, days int) (string, error)
	CurrentPrice(ctx context.Context, symbol string) (float64, error)
}

type historyService struct {
	cfg       *config.Config
	log       *logger.Logger
	priceRepo repository.PriceRepository
}

// NewHistoryService creates the history summary service.
func NewHistoryService(cfg *config.Config, log *logger.Logger, priceRepo repository.PriceRepository) HistoryService {
	return &historyService{cfg: cfg, log: log, priceRepo: priceRepo}
}

func (s *historyService) Summary(ctx context.Context, symbol string, days int) (string, error) {
	if days <= 0 {
		days = s.cfg.Advisor.HistoryDays
	}
	start, end := utils.DateRange(days)

	series, err := s.priceRepo.GetDailySeries(ctx, symbol, start, end)
	if err != nil {
		return "", fmt.Errorf("history for %s: %w", symbol, err)
	}

	points := series.Points
	first, last := points[0], points[len(points)-1]

	minLow, maxHigh := points[0].Low, points[0].High
	var totalVolume int64
	for _, p := range points {
		if p.Low < minLow {
			minLow = p.Low
		}
		if p.High > maxHigh {
			maxHigh = p.High
		}
		totalVolume += p.Volume
	}
	avgVolume := float64(totalVolume) / float64(len(points))
	priceChange := (last.Close - first.Close) / first.Close * 100

	var b strings.Builder
	fmt.Fprintf(&b, "Period: %s to %s\n\n",
		first.Date.Format(common.DateLayout), last.Date.Format(common.DateLayout))
	fmt.Fprintf(&b, "Opening price: $%.2f\n", first.Close)
	fmt.Fprintf(&b, "Closing price: $%.2f\n", last.Close)
	fmt.Fprintf(&b, "Lowest price: $%.2f\n", minLow)
	fmt.Fprintf(&b, "Highest price: $%.2f\n", maxHigh)
	fmt.Fprintf(&b, "Average volume: %.0f\n", avgVolume)
	fmt.Fprintf(&b, "Price change: %.2f%%\n", priceChange)
	return b.String(), nil
}

func (s *historyService) CurrentPrice(ctx context.Context, symbol string) (float64, error) {
	start, end := utils.DateRange(7)
	series, err := s.priceRepo.GetDailySeries(ctx, symbol, start, end)
	if err != nil {
		return 0, fmt.Errorf("current price for %s: %w", symbol, err)
	}
	return series.LastClose(), nil
}
