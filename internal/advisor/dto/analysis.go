package dto

import (
	"invest-advisor/internal/advisor/forecast"
	"invest-advisor/internal/advisor/recommend"
	"invest-advisor/internal/advisor/risk"
	"invest-advisor/internal/advisor/sentiment"
)

// AnalyzeRequest asks for a full forecast + risk + recommendation run.
type AnalyzeRequest struct {
	Symbol string `json:"symbol"`
	UserID *int64 `json:"user_id,omitempty"`
}

// AnalysisResult bundles the outputs of one full analysis.
type AnalysisResult struct {
	Symbol         string                  `json:"symbol"`
	Forecast       *forecast.Result        `json:"forecast"`
	Sentiment      sentiment.Result        `json:"sentiment"`
	Risk           *risk.Metrics           `json:"risk,omitempty"`
	RiskText       string                  `json:"risk_text,omitempty"`
	Recommendation recommend.Recommendation `json:"recommendation"`
}
