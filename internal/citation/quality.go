package citation

import (
	"strings"

	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/model"
)

const recencyScore = 15 // No timestamp signal is available upstream

// tier1Domains are encyclopedic, government, academic, major open-source,
// and science sources
var tier1Domains = map[string]int{
	"wikipedia.org":     40,
	"britannica.com":    40,
	"nature.com":        40,
	"sciencedirect.com": 38,
	"arxiv.org":         38,
	"ieee.org":          38,
	"acm.org":           38,
	"github.com":        36,
	"gitlab.com":        35,
	"kernel.org":        36,
	"python.org":        36,
	"golang.org":        36,
	"go.dev":            36,
	"mozilla.org":       36,
	"w3.org":            36,
}

// tier2Domains are major news and technology publications plus developer
// reference sites
var tier2Domains = map[string]bool{
	"nytimes.com":       true,
	"reuters.com":       true,
	"bbc.com":           true,
	"bbc.co.uk":         true,
	"theguardian.com":   true,
	"wsj.com":           true,
	"bloomberg.com":     true,
	"techcrunch.com":    true,
	"wired.com":         true,
	"theverge.com":      true,
	"arstechnica.com":   true,
	"zdnet.com":         true,
	"stackoverflow.com": true,
	"medium.com":        true,
	"dev.to":            true,
}

// tier3Domains are industry analysis and general business sources
var tier3Domains = map[string]bool{
	"forbes.com":       true,
	"businessinsider.com": true,
	"inc.com":          true,
	"entrepreneur.com": true,
	"g2.com":           true,
	"capterra.com":     true,
	"gartner.com":      true,
	"trustradius.com":  true,
	"producthunt.com":  true,
	"crunchbase.com":   true,
}

// QualityScorer computes the quality-factor breakdown for citations
type QualityScorer struct{}

// NewQualityScorer creates a quality scorer with the built-in tier tables
func NewQualityScorer() *QualityScorer {
	return &QualityScorer{}
}

// Score computes the three quality factors for a citation. The total
// (domain authority + recency + relevance) always lands in [0, 100].
func (q *QualityScorer) Score(c model.Citation, corr Correlation) model.QualityFactors {
	return model.QualityFactors{
		DomainAuthority: q.domainAuthority(c.Domain),
		Recency:         recencyScore,
		Relevance:       q.relevance(c, corr),
	}
}

// domainAuthority performs the tiered domain lookup
func (q *QualityScorer) domainAuthority(domain string) int {
	if domain == "" {
		return 10
	}

	if score, ok := tier1Domains[domain]; ok {
		return score
	}
	for d, score := range tier1Domains {
		if strings.HasSuffix(domain, "."+d) {
			return score
		}
	}

	if strings.HasSuffix(domain, ".gov") || strings.HasSuffix(domain, ".edu") ||
		strings.HasSuffix(domain, ".ac.uk") {
		return 35
	}

	if tier2Domains[domain] || hasTierSuffix(domain, tier2Domains) {
		return 30
	}
	if tier3Domains[domain] || hasTierSuffix(domain, tier3Domains) {
		return 20
	}

	if strings.HasSuffix(domain, ".org") {
		return 18
	}

	return 10
}

// relevance combines provider provenance, source type, and brand
// correlation, capped at 30
func (q *QualityScorer) relevance(c model.Citation, corr Correlation) int {
	score := 0

	if c.FromProvider {
		score += 10
	}

	switch c.SourceType {
	case model.SourcePage:
		score += 8
	case model.SourcePDF:
		score += 6
	case model.SourceVideo:
		score += 4
	default:
		score += 2
	}

	if corr.Verdict == model.VerdictYes {
		if corr.OrgBrand {
			score += int(12 * corr.Confidence)
		} else {
			score += int(6 * corr.Confidence)
		}
	}

	if score > 30 {
		score = 30
	}
	return score
}

func hasTierSuffix(domain string, tier map[string]bool) bool {
	for d := range tier {
		if strings.HasSuffix(domain, "."+d) {
			return true
		}
	}
	return false
}
