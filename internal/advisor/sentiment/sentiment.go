package sentiment

import (
	"invest-advisor/internal/entity"

	"github.com/grassmudhorses/vader-go/lexicon"
	"github.com/grassmudhorses/vader-go/sentitext"
)

// Result is the aggregate sentiment of one news snapshot. Degraded is
// set when the provider could not be reached and the neutral score was
// substituted.
type Result struct {
	Score    float64 `json:"score"`
	Articles int     `json:"articles"`
	Degraded bool    `json:"degraded"`
}

// Score computes the compound lexical polarity of a text in [-1, 1].
func Score(text string) float64 {
	parsed := sentitext.Parse(text, lexicon.DefaultLexicon)
	return sentitext.PolarityScore(parsed).Compound
}

// Aggregate returns the arithmetic mean polarity over all articles that
// have both a title and a description, scoring their concatenation.
// An empty or unusable batch aggregates to neutral (0).
func Aggregate(articles []entity.NewsArticle) Result {
	var sum float64
	var n int
	for _, a := range articles {
		if !a.Scorable() {
			continue
		}
		sum += Score(a.Title + " " + a.Description)
		n++
	}
	if n == 0 {
		return Result{}
	}
	return Result{Score: sum / float64(n), Articles: n}
}
