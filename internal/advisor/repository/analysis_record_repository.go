package repository

import (
	"context"

	"invest-advisor/internal/entity"

	"gorm.io/gorm"
)

type analysisRecordRepository struct {
	db *gorm.DB
}

// NewAnalysisRecordRepository creates a gorm-backed audit store.
func NewAnalysisRecordRepository(db *gorm.DB) AnalysisRecordRepository {
	return &analysisRecordRepository{db: db}
}

func (r *analysisRecordRepository) Create(ctx context.Context, record *entity.AnalysisRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}
