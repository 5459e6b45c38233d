package citation

import (
	"strings"

	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/match"
	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/model"
)

// Correlation is the result of matching one citation against the catalog
type Correlation struct {
	Verdict    model.MentionVerdict
	Confidence float64
	Brand      string // First catalog brand found, empty for verdict no
	OrgBrand   bool   // Whether the matched brand is the tracked org brand
	Matches    int    // Total boundary matches across all brands
}

// Correlate checks whether a citation's URL, domain, or title mentions any
// catalog brand. Matching runs over the lowercased concatenation of all
// three fields with the matcher's word-boundary pattern; the first brand
// matched wins. Absence of every brand is reported as a confident "no".
func Correlate(c model.Citation, catalog model.Catalog) Correlation {
	haystack := strings.ToLower(c.URL + " " + c.Domain + " " + c.Title)

	var first string
	var firstOrg bool
	total := 0

	for _, entry := range catalog {
		matched := false
		for _, term := range entry.Terms() {
			if len(term) < 2 {
				continue
			}
			n := len(match.BoundaryPattern(strings.ToLower(term)).FindAllStringIndex(haystack, -1))
			if n > 0 {
				matched = true
				total += n
			}
		}
		if matched && first == "" {
			first = entry.Name
			firstOrg = entry.IsOrgBrand
		}
	}

	if first == "" {
		return Correlation{Verdict: model.VerdictNo, Confidence: 0.85}
	}

	conf := 0.6 + 0.15*float64(total)
	if conf > 0.95 {
		conf = 0.95
	}
	return Correlation{
		Verdict:    model.VerdictYes,
		Confidence: conf,
		Brand:      first,
		OrgBrand:   firstOrg,
		Matches:    total,
	}
}
