package model

// SourceType classifies what kind of resource a citation points at
type SourceType string

const (
	SourcePage    SourceType = "page"
	SourcePDF     SourceType = "pdf"
	SourceVideo   SourceType = "video"
	SourceUnknown SourceType = "unknown"
)

// MentionVerdict is the tri-state brand-mention verdict for a citation
type MentionVerdict string

const (
	VerdictUnknown MentionVerdict = "unknown" // Not yet verified
	VerdictYes     MentionVerdict = "yes"     // Tracked brand present
	VerdictNo      MentionVerdict = "no"      // Checked, tracked brand absent
)

// QualityFactors is the transparent breakdown of a citation quality score
type QualityFactors struct {
	DomainAuthority int `json:"domain_authority"` // 0-40
	Recency         int `json:"recency"`          // 0-30
	Relevance       int `json:"relevance"`        // 0-30
}

// Citation is one source URL extracted from a provider payload or response
// text, quality-scored and correlated to the brand catalog.
// Citations are deduplicated by exact URL (first occurrence wins).
type Citation struct {
	URL                    string         `json:"url"`
	Domain                 string         `json:"domain"`
	Title                  string         `json:"title,omitempty"`
	SourceType             SourceType     `json:"source_type"`
	FromProvider           bool           `json:"from_provider"` // Provider-supplied vs text fallback
	BrandMention           MentionVerdict `json:"brand_mention"`
	BrandMentionConfidence float64        `json:"brand_mention_confidence"`
	MatchedBrand           string         `json:"matched_brand,omitempty"` // First catalog brand found, if any
	QualityScore           int            `json:"quality_score"`           // 0-100
	QualityFactors         QualityFactors `json:"quality_factors"`
}
