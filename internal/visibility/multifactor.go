package visibility

import (
	"fmt"
	"math"
	"sort"

	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/model"
)

// MultiFactorStrategy is the weighted six-factor scoring mode. Each factor
// produces an independently bounded sub-score; sub-scores are multiplied by
// configurable weights, summed, and clamped to [0,100].
type MultiFactorStrategy struct {
	weights model.ScoringWeights
}

// NewMultiFactorStrategy creates the multi-factor strategy with the given
// weights (zero-value weights fall back to defaults).
func NewMultiFactorStrategy(weights model.ScoringWeights) *MultiFactorStrategy {
	if weights == (model.ScoringWeights{}) {
		weights = model.DefaultScoringWeights()
	}
	return &MultiFactorStrategy{weights: weights}
}

// Name returns the strategy name
func (s *MultiFactorStrategy) Name() string { return "multifactor" }

// Score computes the weighted multi-factor visibility score
func (s *MultiFactorStrategy) Score(in Input) model.VisibilityScore {
	breakdown := make(map[string]float64, 6)

	// Absent brand short-circuits: only the competition penalty applies,
	// keeping the result near zero and strictly below any present-brand score
	if !in.OrgPresent {
		competition := competitionScore(in.CompetitorCount)
		if competition > 0 {
			competition = 0
		}
		breakdown[model.FactorPresence] = 0
		breakdown[model.FactorCompetition] = competition * s.weights.Competition
		total := clamp(breakdown[model.FactorCompetition], 0, 100)
		return model.VisibilityScore{
			Score:     total,
			Breakdown: breakdown,
			Insights:  []string{"Brand not mentioned in this response"},
		}
	}

	breakdown[model.FactorPresence] = 30 * s.weights.Presence

	position := 20.0 - 2.0*float64(in.Position)
	if position < 0 {
		position = 0
	}
	breakdown[model.FactorPosition] = position * s.weights.Position

	breakdown[model.FactorSentiment] = sentimentScore(in.Sentiment, in.SentimentConfidence) * s.weights.Sentiment
	breakdown[model.FactorContext] = contextScore(in.Context) * s.weights.Context
	breakdown[model.FactorCompetition] = competitionScore(in.CompetitorCount) * s.weights.Competition
	breakdown[model.FactorProminence] = 5 * clamp(in.Prominence, 0, 1) * s.weights.Prominence

	total := 0.0
	for _, v := range breakdown {
		total += v
	}
	total = clamp(total, 0, 100)

	return model.VisibilityScore{
		Score:     total,
		Breakdown: breakdown,
		Insights:  factorInsights(breakdown, in),
	}
}

// sentimentScore is +/-25 scaled by confidence, with a flat +5 for neutral
func sentimentScore(polarity model.Sentiment, confidence float64) float64 {
	switch polarity {
	case model.SentimentPositive:
		return 25 * clamp(confidence, 0, 1)
	case model.SentimentNegative:
		return -25 * clamp(confidence, 0, 1)
	default:
		return 5
	}
}

func contextScore(ctx model.MentionContext) float64 {
	switch ctx {
	case model.ContextRecommendation:
		return 10
	case model.ContextComparison:
		return 7
	case model.ContextMention:
		return 5
	case model.ContextExample:
		return 2
	default:
		return 5
	}
}

// competitionScore rewards uncontested responses and penalizes crowded ones
func competitionScore(competitors int) float64 {
	switch {
	case competitors == 0:
		return 5
	case competitors <= 2:
		return 0
	case competitors <= 5:
		return -5
	default:
		return -10
	}
}

// Prominence computes the 0-1 prominence metric from mention frequency,
// earliness of the first mention, and mention density.
func Prominence(mentions, totalBrands, firstPosition, responseLength int) float64 {
	if mentions <= 0 {
		return 0
	}

	frequency := 0.0
	if totalBrands > 0 {
		frequency = math.Min(0.5, float64(mentions)/float64(totalBrands))
	}

	maxPosition := math.Max(10, float64(responseLength)/100)
	position := math.Max(0, 0.3*(1-float64(firstPosition)/maxPosition))

	denom := math.Max(100, float64(responseLength))
	density := math.Min(0.2, 100*float64(mentions)/denom)

	return clamp(frequency+position+density, 0, 1)
}

// factorInsights derives the per-response insight lines from the breakdown
func factorInsights(breakdown map[string]float64, in Input) []string {
	var insights []string
	if in.Sentiment == model.SentimentPositive {
		insights = append(insights, "Brand is described favorably")
	}
	if in.Sentiment == model.SentimentNegative {
		insights = append(insights, "Brand is described unfavorably")
	}
	if in.Context == model.ContextRecommendation {
		insights = append(insights, "Brand is actively recommended")
	}
	if in.CompetitorCount > 5 {
		insights = append(insights, fmt.Sprintf("Crowded response: %d competitors mentioned", in.CompetitorCount))
	}
	if breakdown[model.FactorPosition] >= 15 {
		insights = append(insights, "Brand appears early in the response")
	}
	return insights
}

// BrandScore pairs a brand with its composite score for ranking
type BrandScore struct {
	Brand      string
	IsOrgBrand bool
	Result     model.VisibilityScore
}

// CompetitiveInsights ranks all brand scores descending, reports the tracked
// brand's rank, and surfaces up to 3 top competitors with an advantage label
// derived from their dominant breakdown factor.
func CompetitiveInsights(scores []BrandScore) []string {
	if len(scores) == 0 {
		return nil
	}

	ranked := make([]BrandScore, len(scores))
	copy(ranked, scores)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.Score > ranked[j].Result.Score
	})

	var insights []string
	for rank, bs := range ranked {
		if bs.IsOrgBrand {
			insights = append(insights, fmt.Sprintf("Tracked brand ranks #%d of %d mentioned brands", rank+1, len(ranked)))
			break
		}
	}

	shown := 0
	for _, bs := range ranked {
		if bs.IsOrgBrand || shown >= 3 {
			continue
		}
		insights = append(insights, fmt.Sprintf("%s leads on %s (score %.0f)",
			bs.Brand, advantageLabel(dominantFactor(bs.Result.Breakdown)), bs.Result.Score))
		shown++
	}

	return insights
}

// dominantFactor returns the breakdown factor with the largest value
func dominantFactor(breakdown map[string]float64) string {
	best, bestVal := "", math.Inf(-1)
	// Deterministic iteration for stable insight output
	keys := make([]string, 0, len(breakdown))
	for k := range breakdown {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if breakdown[k] > bestVal {
			best, bestVal = k, breakdown[k]
		}
	}
	return best
}

func advantageLabel(factor string) string {
	switch factor {
	case model.FactorPresence:
		return "consistent presence"
	case model.FactorPosition:
		return "early positioning"
	case model.FactorSentiment:
		return "favorable sentiment"
	case model.FactorContext:
		return "strong recommendations"
	case model.FactorCompetition:
		return "uncontested mentions"
	case model.FactorProminence:
		return "mention prominence"
	default:
		return "overall visibility"
	}
}
