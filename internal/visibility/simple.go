package visibility

import (
	"fmt"

	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/model"
)

// prominenceBonus is indexed by min(prominenceIndex, 3): first position
// earns the largest bonus, anything beyond the top 4 earns nothing.
var prominenceBonus = [4]float64{30, 20, 10, 0}

const maxCompetitorPenalty = 20

// SimpleStrategy is the presence/prominence/competition scoring mode.
//
// Semantics: the prominence bonus is capped at 100 BEFORE the competitor
// penalty is applied, so a crowded response can never score above
// 100 - penalty. (Two historical variants of this logic disagreed on the
// ordering; this implementation picks cap-before-penalty.)
type SimpleStrategy struct{}

// NewSimpleStrategy creates the simple scoring strategy
func NewSimpleStrategy() *SimpleStrategy {
	return &SimpleStrategy{}
}

// Name returns the strategy name
func (s *SimpleStrategy) Name() string { return "simple" }

// Score computes the simple visibility score
func (s *SimpleStrategy) Score(in Input) model.VisibilityScore {
	breakdown := map[string]float64{
		model.FactorPresence:    0,
		model.FactorProminence:  0,
		model.FactorCompetition: 0,
	}

	if !in.OrgPresent {
		return model.VisibilityScore{
			Score:     0,
			Breakdown: breakdown,
			Insights:  []string{"Brand not mentioned in this response"},
		}
	}

	base := 100.0
	breakdown[model.FactorPresence] = base

	bonus := 0.0
	if in.ProminenceIndex >= 0 {
		idx := in.ProminenceIndex
		if idx > 3 {
			idx = 3
		}
		bonus = prominenceBonus[idx]
	}
	breakdown[model.FactorProminence] = bonus

	score := base + bonus
	if score > 100 {
		score = 100
	}

	penalty := 5.0 * float64(in.CompetitorCount)
	if penalty > maxCompetitorPenalty {
		penalty = maxCompetitorPenalty
	}
	breakdown[model.FactorCompetition] = -penalty

	score -= penalty
	if score < 0 {
		score = 0
	}

	var insights []string
	if in.ProminenceIndex == 0 {
		insights = append(insights, "Brand is mentioned first in the response")
	}
	if in.CompetitorCount > 0 {
		insights = append(insights, fmt.Sprintf("%d competitor(s) mentioned alongside the brand", in.CompetitorCount))
	}

	return model.VisibilityScore{
		Score:     score,
		Breakdown: breakdown,
		Insights:  insights,
	}
}
