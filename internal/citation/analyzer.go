package citation

import (
	"net/url"
	"path"
	"strings"

	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/citation/payload"
	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/model"
)

const (
	maxCitationsSimple = 10 // cap for flat-list providers
	maxCitationsRich   = 20 // cap for metadata-rich providers (grounding chunks)
)

// Analyzer extracts citations from provider payloads, infers source types,
// scores quality, and correlates each citation to the brand catalog.
type Analyzer struct {
	registry *payload.Registry
	quality  *QualityScorer
}

// NewAnalyzer creates an analyzer with the default adapter registry
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		registry: payload.NewRegistry(),
		quality:  NewQualityScorer(),
	}
}

// Analyze extracts and enriches citations for one assistant response.
// Structured provider sources are collected in priority order (explicit
// citations, related sources, grounding metadata); the regex text fallback
// runs only when the payload yielded no structured citations at all.
func (a *Analyzer) Analyze(provider string, rawPayload []byte, responseText string, catalog model.Catalog) []model.Citation {
	extraction := a.extract(provider, rawPayload)

	cap := maxCitationsSimple
	if extraction.Rich {
		cap = maxCitationsRich
	}

	seen := make(map[string]bool)
	citations := make([]model.Citation, 0)

	collect := func(sources []payload.Source, fromProvider bool) {
		for _, src := range sources {
			if len(citations) >= cap {
				return
			}
			u := strings.TrimSpace(src.URL)
			if u == "" || seen[u] {
				continue
			}
			seen[u] = true
			citations = append(citations, a.build(u, src.Title, fromProvider, catalog))
		}
	}

	collect(extraction.Citations, true)
	collect(extraction.Related, true)
	collect(extraction.Grounding, true)

	// Fallback extraction only when no structured citations exist at all
	if len(citations) == 0 {
		collect(payload.ExtractFromText(responseText), false)
	}

	return citations
}

// extract runs the provider's adapter, falling through to an empty
// extraction for unknown providers or malformed payloads
func (a *Analyzer) extract(provider string, rawPayload []byte) payload.Extraction {
	if len(rawPayload) == 0 {
		return payload.Extraction{}
	}
	adapter := a.registry.FindAdapter(provider)
	if adapter == nil {
		return payload.Extraction{}
	}
	return adapter.Extract(rawPayload)
}

// build assembles one enriched citation from a deduplicated source URL
func (a *Analyzer) build(rawURL, title string, fromProvider bool, catalog model.Catalog) model.Citation {
	c := model.Citation{
		URL:          rawURL,
		Domain:       domainOf(rawURL),
		Title:        title,
		SourceType:   inferSourceType(rawURL),
		FromProvider: fromProvider,
		BrandMention: model.VerdictUnknown,
	}

	corr := Correlate(c, catalog)
	c.BrandMention = corr.Verdict
	c.BrandMentionConfidence = corr.Confidence
	c.MatchedBrand = corr.Brand

	c.QualityFactors = a.quality.Score(c, corr)
	c.QualityScore = c.QualityFactors.DomainAuthority + c.QualityFactors.Recency + c.QualityFactors.Relevance

	return c
}

// domainOf returns the lowercase host of a URL, trimming any port and a
// leading www prefix; unparseable URLs yield an empty domain
func domainOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	host := strings.ToLower(parsed.Host)
	if idx := strings.Index(host, ":"); idx > 0 {
		host = host[:idx]
	}
	return strings.TrimPrefix(host, "www.")
}

// inferSourceType classifies a citation URL by suffix and host
func inferSourceType(rawURL string) model.SourceType {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return model.SourceUnknown
	}

	lowerPath := strings.ToLower(parsed.Path)
	if strings.HasSuffix(lowerPath, ".pdf") {
		return model.SourcePDF
	}

	host := strings.ToLower(parsed.Host)
	if strings.Contains(host, "youtube.") || strings.Contains(host, "youtu.be") ||
		strings.Contains(host, "vimeo.") || strings.Contains(lowerPath, "/video/") {
		return model.SourceVideo
	}

	// Root paths, .html pages, and extension-less paths are regular pages
	ext := path.Ext(lowerPath)
	if lowerPath == "" || lowerPath == "/" || ext == "" || ext == ".html" || ext == ".htm" {
		return model.SourcePage
	}

	return model.SourceUnknown
}
