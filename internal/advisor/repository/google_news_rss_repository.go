package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"invest-advisor/internal/advisor/config"
	"invest-advisor/internal/entity"
	"invest-advisor/pkg/logger"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"
	"github.com/mmcdole/gofeed"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Descriptions shorter than this trigger a fetch of the article page so
// the sentiment scorer has real text to work with.
const minUsefulDescription = 40

type googleNewsRSSRepository struct {
	cfg        *config.Config
	log        *logger.Logger
	parser     *gofeed.Parser
	httpClient *http.Client
	pageCache  *cache.Cache
}

// NewGoogleNewsRSSRepository creates a news repository backed by the
// Google News RSS feed. It is used as a fallback when NewsAPI is not
// configured or unavailable.
func NewGoogleNewsRSSRepository(cfg *config.Config, log *logger.Logger) NewsRepository {
	return &googleNewsRSSRepository{
		cfg:    cfg,
		log:    log,
		parser: gofeed.NewParser(),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		pageCache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (r *googleNewsRSSRepository) GetCompanyNews(ctx context.Context, companyName string) ([]entity.NewsArticle, error) {
	feedURL := fmt.Sprintf("%s/search?q=%s&hl=en-US&gl=US&ceid=US:en",
		r.cfg.GoogleNewsRSS.BaseURL, url.QueryEscape(companyName))

	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: rss fetch for %q failed: %v", ErrProviderUnavailable, companyName, err)
	}

	maxArticles := r.cfg.GoogleNewsRSS.MaxArticles
	articles := make([]entity.NewsArticle, 0, maxArticles)
	for _, item := range feed.Items {
		if len(articles) >= maxArticles {
			break
		}

		description := htmlToText(item.Description)
		if len(description) < minUsefulDescription && item.Link != "" {
			if body := r.articleText(ctx, item.Link); body != "" {
				description = body
			}
		}

		articles = append(articles, entity.NewsArticle{
			Title:       item.Title,
			Description: description,
			URL:         item.Link,
			Source:      feedSource(item),
			PublishedAt: item.PublishedParsed,
		})
	}
	return articles, nil
}

// articleText fetches the linked page and extracts its readable body.
// Failures degrade to an empty string; the headline alone may still be
// scorable.
func (r *googleNewsRSSRepository) articleText(ctx context.Context, link string) string {
	if cached, ok := r.pageCache.Get(link); ok {
		return cached.(string)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return ""
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.Debug("Failed to fetch article page", zap.String("link", link), logger.ErrorField(err))
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ""
	}

	doc, err := readability.NewDocument(string(raw))
	if err != nil {
		return ""
	}
	text := htmlToText(doc.Content())

	r.pageCache.Set(link, text, cache.DefaultExpiration)
	return text
}

// htmlToText strips markup from an HTML fragment.
func htmlToText(fragment string) string {
	if fragment == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.TrimSpace(doc.Text())
}

func feedSource(item *gofeed.Item) string {
	if item == nil {
		return ""
	}
	if item.Author != nil && item.Author.Name != "" {
		return item.Author.Name
	}
	return ""
}
