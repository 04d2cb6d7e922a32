package repository

import (
	"context"
	"errors"
	"time"

	"invest-advisor/internal/entity"
)

var (
	// ErrProviderUnavailable marks a provider that could not be reached
	// or answered with a non-success status.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrNoData marks a reachable provider that returned nothing for the
	// requested range. Callers must treat this separately from
	// ErrProviderUnavailable.
	ErrNoData = errors.New("no data for requested range")
)

// PriceRepository supplies daily price history and company metadata.
type PriceRepository interface {
	GetDailySeries(ctx context.Context, symbol string, start, end time.Time) (*entity.PriceSeries, error)
	GetCompanyName(ctx context.Context, symbol string) (string, error)
}

// NewsRepository supplies recent news articles for a company.
type NewsRepository interface {
	GetCompanyNews(ctx context.Context, companyName string) ([]entity.NewsArticle, error)
}

// UserProfileRepository stores one investment profile per user.
type UserProfileRepository interface {
	Upsert(ctx context.Context, profile *entity.UserProfile) error
	GetProfile(ctx context.Context, userID int64) (*entity.UserProfile, error)
}

// InvestmentTermRepository looks up glossary definitions.
type InvestmentTermRepository interface {
	FindDefinition(ctx context.Context, term string) (*entity.InvestmentTerm, error)
}

// AnalysisRecordRepository persists analysis audit rows.
type AnalysisRecordRepository interface {
	Create(ctx context.Context, record *entity.AnalysisRecord) error
}
