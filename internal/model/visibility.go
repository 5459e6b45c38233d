package model

// Scoring factor names used in visibility score breakdowns
const (
	FactorPresence    = "presence"
	FactorPosition    = "position"
	FactorSentiment   = "sentiment"
	FactorContext     = "context"
	FactorCompetition = "competition"
	FactorProminence  = "prominence"
)

// ScoringWeights holds the six multi-factor scoring coefficients.
// Callers may override individual weights; zero values mean "ignore factor".
type ScoringWeights struct {
	Presence    float64 `json:"presence" yaml:"presence"`
	Position    float64 `json:"position" yaml:"position"`
	Sentiment   float64 `json:"sentiment" yaml:"sentiment"`
	Context     float64 `json:"context" yaml:"context"`
	Competition float64 `json:"competition" yaml:"competition"`
	Prominence  float64 `json:"prominence" yaml:"prominence"`
}

// DefaultScoringWeights returns the fixed default coefficients.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		Presence:    1.0,
		Position:    1.0,
		Sentiment:   1.0,
		Context:     1.0,
		Competition: 1.0,
		Prominence:  1.0,
	}
}

// VisibilityScore is the composite visibility result for one brand.
type VisibilityScore struct {
	Score     float64            `json:"score"`     // [0,100]
	Breakdown map[string]float64 `json:"breakdown"` // Factor name -> contribution
	Insights  []string           `json:"insights"`  // Ranked human-readable insights
}

// CompetitorAdvantage describes why a competitor outranks the tracked brand.
type CompetitorAdvantage struct {
	Brand     string  `json:"brand"`
	Score     float64 `json:"score"`
	Advantage string  `json:"advantage"` // Label derived from the dominant breakdown factor
}
