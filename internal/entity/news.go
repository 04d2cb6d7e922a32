package entity

import "time"

// NewsArticle is one headline returned by a news provider.
type NewsArticle struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	URL         string     `json:"url,omitempty"`
	Source      string     `json:"source,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// Scorable reports whether the article carries enough text to be scored.
// Articles missing either a title or a description are skipped entirely.
func (a NewsArticle) Scorable() bool {
	return a.Title != "" && a.Description != ""
}
