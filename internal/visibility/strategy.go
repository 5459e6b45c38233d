package visibility

import (
	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/model"
)

// Input carries everything a scoring strategy needs for one brand in one
// response. All fields are derived upstream; strategies are pure functions
// over this struct.
type Input struct {
	OrgPresent bool // Whether the tracked brand survived the relevance filter

	// ProminenceIndex is the tracked brand's rank among all detected brands
	// by first appearance (0 = first). Negative means unknown.
	ProminenceIndex int

	// Position is the ordinal sentence/paragraph position of the first org
	// mention (multi-factor position sub-score input)
	Position int

	Sentiment           model.Sentiment
	SentimentConfidence float64
	Context             model.MentionContext

	CompetitorCount int

	// Prominence is the 0-1 prominence metric (see Prominence)
	Prominence float64
}

// Strategy computes a composite 0-100 visibility score. The two
// implementations are alternatives selected explicitly by the caller,
// never blended.
type Strategy interface {
	Name() string
	Score(in Input) model.VisibilityScore
}

// ForName returns the strategy registered under name, defaulting to
// multi-factor for unknown names.
func ForName(name string, weights model.ScoringWeights) Strategy {
	if name == "simple" {
		return NewSimpleStrategy()
	}
	return NewMultiFactorStrategy(weights)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
