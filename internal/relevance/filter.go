package relevance

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/model"
)

// DefaultThreshold is the minimum relevance score for a candidate to survive
const DefaultThreshold = 0.3

var (
	domainLikeRe = regexp.MustCompile(`(?i)(^https?://|\.(com|io|net|org|ai)\b)`)
	numericRe    = regexp.MustCompile(`^\d+$`)
)

// Context carries the signals ScoreRelevance needs beyond the mention itself
type Context struct {
	// Industry is the organization's declared industry, if any
	Industry string
	// ResponseLength is used only for diagnostics; position decay normalizes
	// against a fixed 1000-char window
	ResponseLength int
}

// Filter suppresses noise among brand mention candidates. Stateless and
// safe for concurrent use.
type Filter struct {
	threshold float64
}

// NewFilter creates a filter with the given score threshold (0 uses the default)
func NewFilter(threshold float64) *Filter {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Filter{threshold: threshold}
}

// ScoreRelevance scores how likely a candidate mention is a genuine brand
// reference, in [0,1]. Adjustments are multiplicative and compounding.
func (f *Filter) ScoreRelevance(mention model.BrandMention, fctx Context) float64 {
	candidate := strings.ToLower(strings.TrimSpace(mention.Brand))
	context := strings.ToLower(mention.ContextWindow)

	// Hard rejections first
	if commonWords[candidate] {
		return 0
	}
	if len(candidate) < 3 && !hasStrongIndicator(context) {
		return 0
	}

	score := 0.5

	if containsAny(context, examplePatterns) {
		score *= 0.4
	}
	if containsAny(context, listPatterns) {
		score *= 0.7
	}
	if fctx.Industry != "" {
		if brands, ok := industryBrands[strings.ToLower(fctx.Industry)]; ok && brands[candidate] {
			score *= 1.5
		}
	}
	// Positive and negative indicators compound when both fire
	if containsAny(context, positiveIndicators) {
		score *= 1.3
	}
	if containsAny(context, negativeIndicators) {
		score *= 0.3
	}

	// Earlier mentions score higher; decay normalized over 1000 chars
	pos := mention.Position
	if pos > 1000 {
		pos = 1000
	}
	score *= 0.5 + 0.5*(1.0-float64(pos)/1000.0)

	if domainLikeRe.MatchString(mention.Brand) {
		score *= 1.2
	}

	return clamp01(score)
}

// ScoredMention pairs a mention with its relevance score
type ScoredMention struct {
	Mention   model.BrandMention
	Relevance float64
}

// FilterRelevantBrands scores every mention and returns those above the
// threshold, ranked by relevance descending.
func (f *Filter) FilterRelevantBrands(mentions []model.BrandMention, fctx Context) []ScoredMention {
	out := make([]ScoredMention, 0, len(mentions))
	for _, m := range mentions {
		score := f.ScoreRelevance(m, fctx)
		if score >= f.threshold {
			out = append(out, ScoredMention{Mention: m, Relevance: score})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Relevance > out[j].Relevance
	})
	return out
}

// ApplyBrandFilters removes denylisted words, known non-business brands,
// purely numeric tokens, tokens shorter than 2 chars, and case-insensitive
// duplicates, preserving first-seen order.
func ApplyBrandFilters(names []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(names))

	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		lower := strings.ToLower(trimmed)

		if len(trimmed) < 2 {
			continue
		}
		if commonWords[lower] || nonBusinessBrands[lower] {
			continue
		}
		if numericRe.MatchString(trimmed) {
			continue
		}
		if seen[lower] {
			continue
		}
		seen[lower] = true
		out = append(out, trimmed)
	}
	return out
}

func hasStrongIndicator(context string) bool {
	return containsAny(context, strongIndicators)
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
