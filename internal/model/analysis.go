package model

import "time"

// Analysis is the complete output bundle for one assistant response.
// This is the artifact consumed by the external storage/reporting layer.
type Analysis struct {
	ResponseID string    `json:"response_id,omitempty"` // Caller-supplied identifier
	Provider   string    `json:"provider,omitempty"`    // Upstream assistant provider name
	AnalyzedAt time.Time `json:"analyzed_at"`

	Mentions   []BrandMention   `json:"mentions"`
	Sentiments []BrandSentiment `json:"sentiments"`
	Visibility VisibilityScore  `json:"visibility"`
	Citations  []Citation       `json:"citations"`

	// OrgBrandPresent records whether any org-brand mention survived filtering
	OrgBrandPresent bool `json:"org_brand_present"`
}

// StoredResponse is one persisted assistant response awaiting analysis or
// citation verification. Owned by the external store; passed read-only into
// the engine.
type StoredResponse struct {
	ID           string    `json:"id"`
	OrgID        string    `json:"org_id"`
	Provider     string    `json:"provider"`
	PromptText   string    `json:"prompt_text,omitempty"`
	ResponseText string    `json:"response_text"`
	RawPayload   []byte    `json:"raw_payload,omitempty"` // Provider payload as received
	Citations    []Citation `json:"citations,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
