package match

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/model"
)

const (
	contextRadius = 60 // Chars of surrounding text captured per mention

	minTermLen    = 2 // Normalized terms shorter than this are skipped entirely
	fuzzyTermLen  = 4 // Minimum normalized term length for fuzzy matching
	minOrgTokenLen = 4 // IsOrgMention rejects plain tokens at or below 3 chars
)

var (
	tldSuffixRe  = regexp.MustCompile(`\.(com|io|net|org)\b`)
	punctRe      = regexp.MustCompile(`[^\w\s.-]`)
	edgePunctRe  = regexp.MustCompile(`(^|\s)[.-]+|[.-]+(\s|$)`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	tokenStripRe = regexp.MustCompile(`[^\w.-]`)
)

// Matcher detects brand mentions in free-text assistant responses using a
// catalog of brand names and variants. It is stateless and safe for
// concurrent use.
type Matcher struct{}

// NewMatcher creates a new brand matcher
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Normalize lowercases, strips common TLD suffixes, removes punctuation
// except word-internal '.' and '-', and collapses whitespace. Idempotent.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = tldSuffixRe.ReplaceAllString(s, "")
	s = punctRe.ReplaceAllString(s, "")
	s = edgePunctRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// BoundaryPattern compiles a case-insensitive word-boundary pattern for a
// normalized term. Shared with citation brand correlation.
func BoundaryPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
}

// FindMatches finds all brand mentions in text against the catalog.
// Returned mentions are deduplicated by (brand, position), keeping the
// highest-confidence candidate, and sorted by confidence descending.
// Never errors: empty text or catalog yields an empty slice.
func (m *Matcher) FindMatches(text string, catalog model.Catalog) []model.BrandMention {
	if text == "" || len(catalog) == 0 {
		return []model.BrandMention{}
	}

	var candidates []model.BrandMention
	lowerText := strings.ToLower(text)
	normText := Normalize(text)

	for _, entry := range catalog {
		for i, term := range entry.Terms() {
			normTerm := Normalize(term)
			if len(normTerm) < minTermLen {
				continue // Anti-false-positive floor
			}

			// Canonical name matches are "exact"; variant matches are "variant"
			directType := model.MatchExact
			if i > 0 {
				directType = model.MatchVariant
			}

			// 1. Exact substring (case-insensitive), confidence 1.0
			for _, pos := range allIndexes(lowerText, strings.ToLower(term)) {
				candidates = append(candidates, model.BrandMention{
					Brand:         entry.Name,
					Confidence:    1.0,
					MatchType:     directType,
					Position:      pos,
					ContextWindow: window(text, pos, len(term)),
				})
			}

			// 2. Normalized word-boundary match, confidence 0.9
			for _, loc := range BoundaryPattern(normTerm).FindAllStringIndex(normText, -1) {
				candidates = append(candidates, model.BrandMention{
					Brand:         entry.Name,
					Confidence:    0.9,
					MatchType:     directType,
					Position:      loc[0],
					ContextWindow: window(normText, loc[0], len(normTerm)),
				})
			}

			// 3. Fuzzy token match for longer terms, confidence >= 0.7
			if len(normTerm) >= fuzzyTermLen {
				candidates = append(candidates, m.fuzzyMatches(text, entry.Name, normTerm)...)
			}
		}
	}

	return dedupeMentions(candidates)
}

// fuzzyMatches scans whitespace tokens for near-miss spellings of a term
func (m *Matcher) fuzzyMatches(text, brand, normTerm string) []model.BrandMention {
	var out []model.BrandMention
	maxDist := len(normTerm) / 5 // floor(0.2 * termLength)
	if maxDist == 0 {
		return out
	}

	offset := 0
	for _, raw := range strings.Fields(text) {
		pos := strings.Index(text[offset:], raw) + offset
		offset = pos + len(raw)

		token := tokenStripRe.ReplaceAllString(strings.ToLower(raw), "")
		if token == "" {
			continue
		}

		dist := levenshtein(token, normTerm)
		if dist == 0 || dist > maxDist {
			continue // Distance zero is already covered by the exact pass
		}
		conf := 1.0 - float64(dist)/float64(len(normTerm))
		if conf < 0.7 {
			continue
		}
		out = append(out, model.BrandMention{
			Brand:         brand,
			Confidence:    conf,
			MatchType:     model.MatchFuzzy,
			Position:      pos,
			ContextWindow: window(text, pos, len(raw)),
		})
	}
	return out
}

// MatchUserBrand checks whether a single token refers to any catalog brand,
// with looser rules than FindMatches: partial containment (terms >= 4 chars)
// and a wider fuzzy tolerance (terms >= 3 chars).
func (m *Matcher) MatchUserBrand(token string, catalog model.Catalog) (bool, float64, string) {
	normToken := Normalize(token)
	if normToken == "" || len(catalog) == 0 {
		return false, 0, ""
	}

	for _, entry := range catalog {
		for _, term := range entry.Terms() {
			normTerm := Normalize(term)
			if len(normTerm) < minTermLen {
				continue
			}

			// Exact normalized equality
			if normToken == normTerm {
				return true, 1.0, entry.Name
			}

			// Word-boundary presence inside the token
			if BoundaryPattern(normTerm).MatchString(normToken) {
				return true, 0.9, entry.Name
			}

			// Partial containment for longer terms
			if len(normTerm) >= 4 {
				if strings.Contains(normToken, normTerm) || strings.Contains(normTerm, normToken) {
					longer, shorter := len(normToken), len(normTerm)
					if shorter > longer {
						longer, shorter = shorter, longer
					}
					ratio := float64(longer) / float64(shorter)
					conf := 1.0 / ratio
					if conf > 0.8 {
						conf = 0.8
					}
					if conf >= 0.6 {
						return true, conf, entry.Name
					}
				}
			}

			// Fuzzy branch with wider tolerance
			if len(normTerm) >= 3 {
				maxDist := len(normTerm) / 4 // floor(0.25 * termLength)
				if maxDist > 0 {
					dist := levenshtein(normToken, normTerm)
					if dist > 0 && dist <= maxDist {
						conf := 1.0 - float64(dist)/float64(len(normTerm))
						if conf < 0.5 {
							conf = 0.5
						}
						return true, conf, entry.Name
					}
				}
			}
		}
	}

	return false, 0, ""
}

// IsOrgMention reports whether a token refers to the organization's own
// brand. Plain tokens of length <= 3 are rejected even when catalog-listed;
// longer tokens that embed a matching term are accepted.
func (m *Matcher) IsOrgMention(token string, catalog model.Catalog) bool {
	if len(strings.TrimSpace(token)) < minOrgTokenLen {
		return false
	}
	orgEntries := model.Catalog(catalog.OrgBrands())
	ok, _, _ := m.MatchUserBrand(token, orgEntries)
	return ok
}

// dedupeMentions keeps the highest-confidence candidate per (brand, position)
// and sorts by confidence descending, position ascending for ties.
func dedupeMentions(candidates []model.BrandMention) []model.BrandMention {
	type key struct {
		brand string
		pos   int
	}
	best := make(map[key]model.BrandMention)
	for _, c := range candidates {
		k := key{c.Brand, c.Position}
		if cur, ok := best[k]; !ok || c.Confidence > cur.Confidence {
			best[k] = c
		}
	}

	out := make([]model.BrandMention, 0, len(best))
	for _, c := range best {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].Position < out[j].Position
	})
	return out
}

// allIndexes returns every occurrence index of needle in haystack
func allIndexes(haystack, needle string) []int {
	var idxs []int
	if needle == "" {
		return idxs
	}
	start := 0
	for {
		i := strings.Index(haystack[start:], needle)
		if i < 0 {
			return idxs
		}
		idxs = append(idxs, start+i)
		start += i + len(needle)
	}
}

// window extracts the context window around a match
func window(text string, pos, matchLen int) string {
	start := pos - contextRadius
	if start < 0 {
		start = 0
	}
	end := pos + matchLen + contextRadius
	if end > len(text) {
		end = len(text)
	}
	return text[start:end]
}

// levenshtein computes classic dynamic-programming edit distance
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min3(cur[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
