package model

// MatchType classifies how a brand mention was detected
type MatchType string

const (
	MatchExact   MatchType = "exact"   // Direct or normalized word-boundary match
	MatchVariant MatchType = "variant" // Matched via a catalog variant
	MatchFuzzy   MatchType = "fuzzy"   // Edit-distance match (typos)
	MatchPartial MatchType = "partial" // Containment match (one string inside the other)
)

// BrandMention is a single detected brand occurrence in a response.
// Invariant: at most one mention per (brand, position) survives dedup.
type BrandMention struct {
	Brand         string    `json:"brand"`
	Confidence    float64   `json:"confidence"`     // [0,1]
	MatchType     MatchType `json:"match_type"`
	Position      int       `json:"position"`       // Char offset in the response
	ContextWindow string    `json:"context_window"` // Surrounding text used downstream
}

// Sentiment polarity of a brand within a response
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// MentionContext classifies the rhetorical role a brand plays in the response
type MentionContext string

const (
	ContextRecommendation MentionContext = "recommendation" // "you should use X"
	ContextComparison     MentionContext = "comparison"     // "X vs Y"
	ContextExample        MentionContext = "example"        // "such as X"
	ContextMention        MentionContext = "mention"        // Plain reference
)

// BrandSentiment is the per-brand polarity and rhetorical-role annotation.
// One per distinct brand per response, not per raw mention.
type BrandSentiment struct {
	Brand      string         `json:"brand"`
	Sentiment  Sentiment      `json:"sentiment"`
	Confidence float64        `json:"confidence"` // [0,1]
	Context    MentionContext `json:"context"`
	Reasoning  string         `json:"reasoning"` // The sentence the verdict was derived from
}
