package sentiment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/model"
)

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)
	clauseSplitRe   = regexp.MustCompile(`[,;]`)

	// negationRe forces negative polarity regardless of additive scores.
	// Checked before the additive comparison: negation always wins.
	negationRe = regexp.MustCompile(`(?i)(not|n't|never|no)\s+\w*\s*(recommend|suggest|good|great|excellent|best)`)
)

// Classifier annotates one brand per response with polarity and rhetorical
// role, using additive lexicon scoring. Stateless, no model calls.
type Classifier struct{}

// NewClassifier creates a new sentiment classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify produces the BrandSentiment for a brand within a response.
// mentionContext is the fallback sentence when the brand appears in no
// complete sentence of the response.
func (c *Classifier) Classify(brand, mentionContext, fullResponse string) model.BrandSentiment {
	sentence := c.pickSentence(brand, fullResponse)
	if sentence == "" {
		sentence = mentionContext
	}

	// One sentence can carry opposite verdicts for two brands ("try X,
	// though some avoid Y"), so narrow to the clause naming this brand
	sentence = clauseWithBrand(brand, sentence)

	polarity, confidence, reason := c.scoreSentence(brand, sentence)

	return model.BrandSentiment{
		Brand:      brand,
		Sentiment:  polarity,
		Confidence: confidence,
		Context:    c.classifyContext(sentence),
		Reasoning:  reason,
	}
}

// pickSentence returns the first sentence containing the brand (case-
// insensitive substring), or "" if none found.
func (c *Classifier) pickSentence(brand, response string) string {
	lowerBrand := strings.ToLower(brand)
	for _, s := range sentenceSplitRe.Split(response, -1) {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if strings.Contains(strings.ToLower(s), lowerBrand) {
			return s
		}
	}
	return ""
}

// clauseWithBrand returns the first comma/semicolon clause containing the
// brand, or the whole sentence when no clause names it
func clauseWithBrand(brand, sentence string) string {
	lowerBrand := strings.ToLower(brand)
	for _, clause := range clauseSplitRe.Split(sentence, -1) {
		clause = strings.TrimSpace(clause)
		if clause != "" && strings.Contains(strings.ToLower(clause), lowerBrand) {
			return clause
		}
	}
	return sentence
}

// scoreSentence applies the negation override, then additive lexicon scoring
func (c *Classifier) scoreSentence(brand, sentence string) (model.Sentiment, float64, string) {
	if sentence == "" {
		return model.SentimentNeutral, 0.5, "no sentence containing brand"
	}

	lower := strings.ToLower(sentence)

	if negationRe.MatchString(sentence) {
		conf := 0.6
		if conf > 0.8 {
			conf = 0.8
		}
		return model.SentimentNegative, conf,
			fmt.Sprintf("negation pattern in: %q", sentence)
	}

	lowerBrand := strings.ToLower(brand)
	posScore := countWords(lower, positiveWords) + 2*countPatterns(lower, lowerBrand, positivePatterns)
	negScore := countWords(lower, negativeWords) + 2*countPatterns(lower, lowerBrand, negativePatterns)

	switch {
	case posScore > negScore && posScore > 0:
		conf := float64(posScore) * 0.2
		if conf > 0.9 {
			conf = 0.9
		}
		return model.SentimentPositive, conf,
			fmt.Sprintf("positive score %d vs %d in: %q", posScore, negScore, sentence)
	case negScore > posScore && negScore > 0:
		conf := float64(negScore) * 0.2
		if conf > 0.9 {
			conf = 0.9
		}
		return model.SentimentNegative, conf,
			fmt.Sprintf("negative score %d vs %d in: %q", negScore, posScore, sentence)
	default:
		return model.SentimentNeutral, 0.5,
			fmt.Sprintf("no polarity signal in: %q", sentence)
	}
}

// classifyContext applies the ordered pattern priority; first category wins
func (c *Classifier) classifyContext(sentence string) model.MentionContext {
	lower := strings.ToLower(sentence)

	for _, p := range recommendationPatterns {
		if strings.Contains(lower, p) {
			return model.ContextRecommendation
		}
	}
	for _, p := range comparisonPatterns {
		if strings.Contains(lower, p) {
			return model.ContextComparison
		}
	}
	for _, p := range examplePatterns {
		if strings.Contains(lower, p) {
			return model.ContextExample
		}
	}
	return model.ContextMention
}

func countWords(sentence string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(sentence, w) {
			n++
		}
	}
	return n
}

func countPatterns(sentence, brand string, patterns []string) int {
	n := 0
	for _, p := range patterns {
		if strings.Contains(sentence, strings.ReplaceAll(p, "{brand}", brand)) {
			n++
		}
	}
	return n
}
