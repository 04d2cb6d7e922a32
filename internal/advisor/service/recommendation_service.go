package service

import (
	"context"
	"encoding/json"

	"invest-advisor/internal/advisor/recommend"
	"invest-advisor/internal/advisor/repository"
	"invest-advisor/internal/entity"
	"invest-advisor/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// RecommendationService synthesizes the final advice, applying the
// user's stored profile when one exists. The profile store is read-only
// from this path.
type RecommendationService interface {
	Recommend(ctx context.Context, symbol string, lastPrice, predictedPrice, sentimentScore float64, series *entity.PriceSeries, userID *int64) (recommend.Recommendation, error)
}

type recommendationService struct {
	log         *logger.Logger
	profileRepo repository.UserProfileRepository
	recordRepo  repository.AnalysisRecordRepository
}

// NewRecommendationService creates the recommendation service.
// recordRepo may be nil when auditing is disabled.
func NewRecommendationService(log *logger.Logger, profileRepo repository.UserProfileRepository, recordRepo repository.AnalysisRecordRepository) RecommendationService {
	return &recommendationService{log: log, profileRepo: profileRepo, recordRepo: recordRepo}
}

func (s *recommendationService) Recommend(ctx context.Context, symbol string, lastPrice, predictedPrice, sentimentScore float64, series *entity.PriceSeries, userID *int64) (recommend.Recommendation, error) {
	var profile *entity.UserProfile
	if userID != nil {
		var err error
		profile, err = s.profileRepo.GetProfile(ctx, *userID)
		if err != nil {
			// A failed lookup only loses personalization.
			s.log.Warn("Failed to load user profile",
				zap.Int64("user_id", *userID), logger.ErrorField(err))
			profile = nil
		}
	}

	rec := recommend.Build(symbol, lastPrice, predictedPrice, sentimentScore, series.Closes(), profile)

	if s.recordRepo != nil {
		s.persistRecord(ctx, rec, userID)
	}
	return rec, nil
}

func (s *recommendationService) persistRecord(ctx context.Context, rec recommend.Recommendation, userID *int64) {
	payload, err := json.Marshal(rec)
	if err != nil {
		s.log.Warn("Failed to encode analysis record", logger.ErrorField(err))
		return
	}
	record := &entity.AnalysisRecord{
		Symbol:         rec.Symbol,
		UserID:         userID,
		Action:         string(rec.Action),
		ExpectedChange: rec.ExpectedChange,
		RiskLevel:      string(rec.RiskLevel),
		Payload:        datatypes.JSON(payload),
	}
	if err := s.recordRepo.Create(ctx, record); err != nil {
		s.log.Warn("Failed to persist analysis record",
			zap.String("symbol", rec.Symbol), logger.ErrorField(err))
	}
}
