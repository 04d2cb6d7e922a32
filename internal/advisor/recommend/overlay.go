package recommend

import (
	"strings"

	"invest-advisor/internal/entity"
)

// Profile-based guidance thresholds on the 1..10 tolerance scale.
const (
	lowRiskTolerance  = 3
	highRiskTolerance = 7
)

// Personalize returns the additive overlay clauses for a profile. Each
// clause is independent; a single profile can trigger several. Mid-range
// risk tolerance contributes nothing.
func Personalize(profile *entity.UserProfile) string {
	var b strings.Builder

	if profile.Experience == entity.ExperienceBeginner {
		b.WriteString("\n\nAs a beginner, be especially careful and consider consulting a financial advisor before making decisions.")
	}

	switch profile.Goal {
	case entity.GoalIncome:
		b.WriteString("\n\nGiven your passive-income goal, pay attention to the company's dividend policy.")
	case entity.GoalGrowth:
		b.WriteString("\n\nTo pursue capital growth, consider the long-term prospects of the company and its industry.")
	}

	if profile.RiskTolerance < lowRiskTolerance {
		b.WriteString("\n\nGiven your low risk tolerance, consider more conservative investment options.")
	} else if profile.RiskTolerance > highRiskTolerance {
		b.WriteString("\n\nYour high risk tolerance allows for more aggressive strategies, but do not forget about diversification.")
	}

	return b.String()
}
