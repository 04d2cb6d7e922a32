package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"invest-advisor/internal/advisor/config"
	"invest-advisor/internal/entity"
	"invest-advisor/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type newsAPIRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewNewsAPIRepository creates a news repository backed by the NewsAPI
// "everything" endpoint.
func NewNewsAPIRepository(cfg *config.Config, log *logger.Logger) NewsRepository {
	maxRPM := cfg.NewsAPI.MaxRequestPerMinute
	if maxRPM <= 0 {
		maxRPM = 30
	}
	return &newsAPIRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		requestLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(maxRPM)), 1),
	}
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
		PublishedAt *time.Time `json:"publishedAt"`
	} `json:"articles"`
}

func (r *newsAPIRepository) GetCompanyNews(ctx context.Context, companyName string) ([]entity.NewsArticle, error) {
	endpoint := fmt.Sprintf("%s/v2/everything?q=%s&language=en&apiKey=%s",
		r.cfg.NewsAPI.BaseURL, url.QueryEscape(companyName), r.cfg.NewsAPI.APIKey)

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: news request for %q failed: %v", ErrProviderUnavailable, companyName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.log.Warn("News provider returned non-success status",
			zap.String("company", companyName), zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: news provider returned status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var body newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode news response: %v", ErrProviderUnavailable, err)
	}

	articles := make([]entity.NewsArticle, 0, len(body.Articles))
	for _, a := range body.Articles {
		articles = append(articles, entity.NewsArticle{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			Source:      a.Source.Name,
			PublishedAt: a.PublishedAt,
		})
	}
	return articles, nil
}
