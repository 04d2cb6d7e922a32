package recommend

import (
	"fmt"
	"strings"

	"invest-advisor/internal/advisor/risk"
	"invest-advisor/internal/entity"
)

// Action is the advised trading action.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
	ActionHold Action = "hold"
)

// RiskLevel buckets the current volatility against the asset's own
// rolling-volatility history.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

const (
	// Action gate: both the forecast and the sentiment must agree, and
	// the expected move must clear five percent.
	buyChangeThreshold  = 0.05
	sellChangeThreshold = -0.05

	volatilityWindow = 30

	lowRiskPercentile    = 33
	mediumRiskPercentile = 66
)

// Recommendation is the synthesized, risk-aware advice for one symbol.
// It is produced and returned, never persisted by this package.
type Recommendation struct {
	Symbol         string    `json:"symbol"`
	Action         Action    `json:"action"`
	ExpectedChange float64   `json:"expected_change"`
	Sentiment      float64   `json:"sentiment"`
	RiskLevel      RiskLevel `json:"risk_level"`
	Text           string    `json:"text"`
}

// Build synthesizes a recommendation from the forecast delta, the news
// sentiment and the asset's volatility history, then layers profile
// personalization on top when a profile is supplied.
func Build(symbol string, lastPrice, predictedPrice, sentimentScore float64, closes []float64, profile *entity.UserProfile) Recommendation {
	expectedChange := (predictedPrice - lastPrice) / lastPrice
	riskLevel := classifyRisk(closes)
	action := decideAction(expectedChange, sentimentScore)

	rec := Recommendation{
		Symbol:         symbol,
		Action:         action,
		ExpectedChange: expectedChange,
		Sentiment:      sentimentScore,
		RiskLevel:      riskLevel,
	}
	rec.Text = composeText(rec)
	if profile != nil {
		rec.Text += Personalize(profile)
	}
	return rec
}

// decideAction applies the conservative AND-gate: a strong forecast with
// disagreeing sentiment falls through to hold.
func decideAction(expectedChange, sentimentScore float64) Action {
	switch {
	case expectedChange > buyChangeThreshold && sentimentScore > 0:
		return ActionBuy
	case expectedChange < sellChangeThreshold && sentimentScore < 0:
		return ActionSell
	default:
		return ActionHold
	}
}

// classifyRisk ranks the current 30-day return volatility within the
// asset's own rolling-volatility history. With too little history for a
// single full window the level defaults to medium.
func classifyRisk(closes []float64) RiskLevel {
	rolling := risk.RollingVolatility(risk.Returns(closes), volatilityWindow)
	if len(rolling) == 0 {
		return RiskMedium
	}
	current := rolling[len(rolling)-1]
	return riskLevelForPercentile(risk.PercentileRank(rolling, current))
}

// riskLevelForPercentile buckets a 0-100 percentile rank. The bounds are
// exclusive upper bounds: exactly 33 is medium, exactly 66 is high.
func riskLevelForPercentile(percentile float64) RiskLevel {
	switch {
	case percentile < lowRiskPercentile:
		return RiskLow
	case percentile < mediumRiskPercentile:
		return RiskMedium
	default:
		return RiskHigh
	}
}

func composeText(rec Recommendation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Recommendation for %s:\n", rec.Symbol)
	fmt.Fprintf(&b, "Action: %s\n", titleCase(string(rec.Action)))
	fmt.Fprintf(&b, "Expected price change: %.2f%%\n", rec.ExpectedChange*100)
	fmt.Fprintf(&b, "Current sentiment: %.2f\n", rec.Sentiment)
	fmt.Fprintf(&b, "Risk level: %s\n\n", rec.RiskLevel)

	switch rec.Action {
	case ActionBuy:
		b.WriteString("Rationale: A significant price increase is forecast and market sentiment is positive.")
	case ActionSell:
		b.WriteString("Rationale: A significant price decline is forecast and market sentiment is negative.")
	default:
		b.WriteString("Rationale: No clear buy or sell signal. Keep watching how the situation develops.")
	}

	fmt.Fprintf(&b, "\n\nCaution: the risk level is %s. ", rec.RiskLevel)
	switch rec.RiskLevel {
	case RiskHigh:
		b.WriteString("Be especially careful when making decisions.")
	case RiskMedium:
		b.WriteString("Weigh the pros and cons before acting.")
	default:
		b.WriteString("The risk is relatively low, but always allow for unexpected market moves.")
	}

	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
