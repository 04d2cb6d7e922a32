package repository

import (
	"context"
	"errors"

	"invest-advisor/internal/entity"

	"gorm.io/gorm"
)

type investmentTermRepository struct {
	db *gorm.DB
}

// NewInvestmentTermRepository creates a gorm-backed glossary store.
func NewInvestmentTermRepository(db *gorm.DB) InvestmentTermRepository {
	return &investmentTermRepository{db: db}
}

// FindDefinition looks up the first term containing the query,
// case-insensitively. Returns nil when nothing matches.
func (r *investmentTermRepository) FindDefinition(ctx context.Context, term string) (*entity.InvestmentTerm, error) {
	var result entity.InvestmentTerm
	err := r.db.WithContext(ctx).
		Where("term ILIKE ?", "%"+term+"%").
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
