package service

import (
	"context"

	"invest-advisor/internal/advisor/repository"
	"invest-advisor/internal/advisor/sentiment"
	"invest-advisor/pkg/logger"

	"go.uber.org/zap"
)

// SentimentService aggregates news sentiment for a company. Provider
// failures degrade to a neutral score instead of propagating; the
// returned result records that the score was substituted.
type SentimentService interface {
	CompanySentiment(ctx context.Context, companyName string) sentiment.Result
}

type sentimentService struct {
	log      *logger.Logger
	primary  repository.NewsRepository
	fallback repository.NewsRepository
}

// NewSentimentService creates a sentiment service. fallback may be nil.
func NewSentimentService(log *logger.Logger, primary, fallback repository.NewsRepository) SentimentService {
	return &sentimentService{log: log, primary: primary, fallback: fallback}
}

func (s *sentimentService) CompanySentiment(ctx context.Context, companyName string) sentiment.Result {
	articles, err := s.primary.GetCompanyNews(ctx, companyName)
	if err != nil && s.fallback != nil {
		s.log.Warn("Primary news provider failed, trying fallback",
			zap.String("company", companyName), logger.ErrorField(err))
		articles, err = s.fallback.GetCompanyNews(ctx, companyName)
	}
	if err != nil {
		s.log.Warn("News providers unavailable, defaulting to neutral sentiment",
			zap.String("company", companyName), logger.ErrorField(err))
		return sentiment.Result{Degraded: true}
	}
	return sentiment.Aggregate(articles)
}
