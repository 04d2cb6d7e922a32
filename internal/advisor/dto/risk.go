package dto

import "invest-advisor/internal/advisor/risk"

// RiskAssessment is the computed risk profile plus its narrative
// interpretation.
type RiskAssessment struct {
	Symbol         string        `json:"symbol"`
	Metrics        *risk.Metrics `json:"metrics"`
	Interpretation string        `json:"interpretation"`
}
