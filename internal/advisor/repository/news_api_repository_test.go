package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"invest-advisor/internal/advisor/config"
	"invest-advisor/pkg/logger"

	"github.com/stretchr/testify/require"
)

func newsTestConfig(baseURL string) *config.Config {
	return &config.Config{
		NewsAPI: config.NewsAPI{
			BaseURL:             baseURL,
			APIKey:              "test-key",
			MaxRequestPerMinute: 600,
		},
	}
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

func TestNewsAPIRepository_GetCompanyNews(t *testing.T) {
	t.Run("parses articles", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v2/everything", r.URL.Path)
			require.Equal(t, "Apple Inc", r.URL.Query().Get("q"))
			require.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"status": "ok",
				"articles": [
					{
						"title": "Apple beats expectations",
						"description": "Strong quarter for the iPhone maker",
						"url": "https://example.com/a",
						"source": {"name": "Example Wire"},
						"publishedAt": "2024-05-01T12:00:00Z"
					}
				]
			}`))
		}))
		defer server.Close()

		repo := NewNewsAPIRepository(newsTestConfig(server.URL), testLogger(t))
		articles, err := repo.GetCompanyNews(context.Background(), "Apple Inc")

		require.NoError(t, err)
		require.Len(t, articles, 1)
		require.Equal(t, "Apple beats expectations", articles[0].Title)
		require.Equal(t, "Strong quarter for the iPhone maker", articles[0].Description)
		require.Equal(t, "Example Wire", articles[0].Source)
		require.NotNil(t, articles[0].PublishedAt)
	})

	t.Run("non-success status is a provider outage", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		repo := NewNewsAPIRepository(newsTestConfig(server.URL), testLogger(t))
		articles, err := repo.GetCompanyNews(context.Background(), "Apple Inc")

		require.ErrorIs(t, err, ErrProviderUnavailable)
		require.Nil(t, articles)
	})

	t.Run("malformed body is a provider outage", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer server.Close()

		repo := NewNewsAPIRepository(newsTestConfig(server.URL), testLogger(t))
		_, err := repo.GetCompanyNews(context.Background(), "Apple Inc")

		require.ErrorIs(t, err, ErrProviderUnavailable)
	})

	t.Run("unreachable host is a provider outage", func(t *testing.T) {
		repo := NewNewsAPIRepository(newsTestConfig("http://127.0.0.1:1"), testLogger(t))
		_, err := repo.GetCompanyNews(context.Background(), "Apple Inc")

		require.ErrorIs(t, err, ErrProviderUnavailable)
	})
}
