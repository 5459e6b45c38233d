package payload

import "encoding/json"

// PerplexityAdapter handles Perplexity-style payloads: a citations array of
// URL strings plus a search_results list treated as related sources.
type PerplexityAdapter struct{}

// NewPerplexityAdapter creates the Perplexity-style adapter
func NewPerplexityAdapter() *PerplexityAdapter {
	return &PerplexityAdapter{}
}

// Name returns the adapter name
func (a *PerplexityAdapter) Name() string { return "perplexity" }

// CanHandle checks the provider identifier
func (a *PerplexityAdapter) CanHandle(provider string) bool {
	return provider == "perplexity" || provider == "sonar"
}

// Extract parses citations and related search results
func (a *PerplexityAdapter) Extract(raw json.RawMessage) Extraction {
	if len(raw) == 0 {
		return Extraction{}
	}

	var body struct {
		Citations     []sourceRef `json:"citations"`
		SearchResults []struct {
			URL   string `json:"url"`
			Title string `json:"title"`
		} `json:"search_results"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return Extraction{}
	}

	out := Extraction{Citations: refsToSources(body.Citations)}
	for _, sr := range body.SearchResults {
		if sr.URL == "" {
			continue
		}
		out.Related = append(out.Related, Source{URL: sr.URL, Title: sr.Title})
	}
	return out
}
