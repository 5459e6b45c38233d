package payload

import "encoding/json"

// GeminiAdapter handles Gemini-style payloads: per-candidate citation
// metadata plus grounding metadata (chunks and attributions). Grounding
// entries are checked for uniqueness against already-collected URLs.
type GeminiAdapter struct{}

// NewGeminiAdapter creates the Gemini-style adapter
func NewGeminiAdapter() *GeminiAdapter {
	return &GeminiAdapter{}
}

// Name returns the adapter name
func (a *GeminiAdapter) Name() string { return "gemini" }

// CanHandle checks the provider identifier
func (a *GeminiAdapter) CanHandle(provider string) bool {
	return provider == "gemini" || provider == "google" || provider == "aioverview"
}

type geminiWeb struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Extract walks candidates, collecting citation metadata first and
// grounding chunks/attributions after
func (a *GeminiAdapter) Extract(raw json.RawMessage) Extraction {
	if len(raw) == 0 {
		return Extraction{}
	}

	var body struct {
		Candidates []struct {
			CitationMetadata struct {
				Citations []geminiWeb `json:"citations"`
			} `json:"citationMetadata"`
			GroundingMetadata struct {
				GroundingChunks []struct {
					Web geminiWeb `json:"web"`
				} `json:"groundingChunks"`
				GroundingAttributions []struct {
					Web geminiWeb `json:"web"`
				} `json:"groundingAttributions"`
				WebSearchQueries []string `json:"webSearchQueries"`
			} `json:"groundingMetadata"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return Extraction{}
	}

	out := Extraction{Rich: true}
	seen := make(map[string]bool)
	add := func(dst *[]Source, w geminiWeb) {
		if w.URI == "" || seen[w.URI] {
			return
		}
		seen[w.URI] = true
		*dst = append(*dst, Source{URL: w.URI, Title: w.Title})
	}

	for _, cand := range body.Candidates {
		for _, c := range cand.CitationMetadata.Citations {
			add(&out.Citations, c)
		}
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			add(&out.Grounding, chunk.Web)
		}
		for _, attr := range cand.GroundingMetadata.GroundingAttributions {
			add(&out.Grounding, attr.Web)
		}
	}
	return out
}
