package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"invest-advisor/internal/advisor/config"
	"invest-advisor/internal/entity"
	"invest-advisor/pkg/common"
	"invest-advisor/pkg/logger"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/quote"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

type yahooFinanceRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	redisClient    *redis.Client
	requestLimiter *rate.Limiter
	cacheTTL       time.Duration
}

// NewYahooFinanceRepository creates a price repository backed by the
// Yahoo Finance chart API, with a Redis response cache and a request
// rate limit.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger, redisClient *redis.Client) PriceRepository {
	maxRPM := cfg.YahooFinance.MaxRequestPerMinute
	if maxRPM <= 0 {
		maxRPM = 60
	}
	return &yahooFinanceRepository{
		cfg:            cfg,
		log:            log,
		redisClient:    redisClient,
		requestLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(maxRPM)), 1),
		cacheTTL:       cfg.YahooFinance.CacheTTL,
	}
}

func (r *yahooFinanceRepository) GetDailySeries(ctx context.Context, symbol string, start, end time.Time) (*entity.PriceSeries, error) {
	cacheKey := fmt.Sprintf("%s:%s:%s:%s", common.RedisKeyPriceSeries, symbol,
		start.Format(common.DateLayout), end.Format(common.DateLayout))

	if cached, err := r.redisClient.Get(ctx, cacheKey).Result(); err == nil {
		var series entity.PriceSeries
		if err := json.Unmarshal([]byte(cached), &series); err == nil {
			return &series, nil
		}
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	series := &entity.PriceSeries{Symbol: symbol}
	iter := chart.Get(params)
	for iter.Next() {
		bar := iter.Bar()
		date := time.Unix(int64(bar.Timestamp), 0).UTC().Truncate(24 * time.Hour)
		if n := len(series.Points); n > 0 && !date.After(series.Points[n-1].Date) {
			continue
		}
		series.Points = append(series.Points, entity.PricePoint{
			Date:   date,
			Open:   bar.Open.InexactFloat64(),
			High:   bar.High.InexactFloat64(),
			Low:    bar.Low.InexactFloat64(),
			Close:  bar.Close.InexactFloat64(),
			Volume: int64(bar.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%w: chart request for %s failed: %v", ErrProviderUnavailable, symbol, err)
	}
	if len(series.Points) == 0 {
		return nil, fmt.Errorf("%w: %s between %s and %s", ErrNoData, symbol,
			start.Format(common.DateLayout), end.Format(common.DateLayout))
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(series); err == nil {
		if err := r.redisClient.Set(ctx, cacheKey, payload, r.cacheTTL).Err(); err != nil {
			r.log.Warn("Failed to cache price series", logger.ErrorField(err))
		}
	}

	return series, nil
}

func (r *yahooFinanceRepository) GetCompanyName(ctx context.Context, symbol string) (string, error) {
	cacheKey := fmt.Sprintf("%s:%s", common.RedisKeyCompanyName, symbol)
	if cached, err := r.redisClient.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
		return cached, nil
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", err
	}

	q, err := quote.Get(symbol)
	if err != nil {
		return "", fmt.Errorf("%w: quote request for %s failed: %v", ErrProviderUnavailable, symbol, err)
	}
	if q == nil {
		return "", fmt.Errorf("%w: no quote for %s", ErrNoData, symbol)
	}

	name := q.ShortName
	if name == "" {
		name = symbol
	}

	if err := r.redisClient.Set(ctx, cacheKey, name, r.cacheTTL).Err(); err != nil {
		r.log.Warn("Failed to cache company name", logger.ErrorField(err))
	}
	return name, nil
}
