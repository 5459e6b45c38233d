// Package payload models provider response payloads as a tagged union of
// typed variants, one adapter per provider shape, with a regex text-extraction
// fallback. Unknown or malformed payloads degrade to the fallback path
// rather than erroring.
package payload

import (
	"encoding/json"
	"strings"
)

// Source is one raw citation reference before quality scoring
type Source struct {
	URL   string
	Title string
}

// Extraction groups the sources an adapter found, by extraction priority:
// explicit citations first, then related sources, then grounding metadata.
type Extraction struct {
	Citations []Source // Provider-native explicit citation list
	Related   []Source // Provider "related sources"
	Grounding []Source // Structured grounding/citation metadata
	Rich      bool     // Metadata-rich provider (raises the citation cap)
}

// Empty reports whether the adapter found no structured sources at all
func (e Extraction) Empty() bool {
	return len(e.Citations) == 0 && len(e.Related) == 0 && len(e.Grounding) == 0
}

// Adapter parses one provider payload variant
type Adapter interface {
	// Name returns the adapter name
	Name() string

	// CanHandle checks if this adapter handles the given provider identifier
	CanHandle(provider string) bool

	// Extract parses the raw payload. A failed parse returns an empty
	// Extraction, never an error: the caller falls back to text extraction.
	Extract(raw json.RawMessage) Extraction
}

// Registry manages provider payload adapters
type Registry struct {
	adapters []Adapter
}

// NewRegistry creates a registry with the built-in adapters
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(NewChatAdapter())
	r.Register(NewPerplexityAdapter())
	r.Register(NewGeminiAdapter())
	return r
}

// Register registers an adapter
func (r *Registry) Register(a Adapter) {
	r.adapters = append(r.adapters, a)
}

// FindAdapter returns the adapter for a provider identifier, or nil when no
// structured adapter applies (callers then use text fallback only).
func (r *Registry) FindAdapter(provider string) Adapter {
	p := strings.ToLower(strings.TrimSpace(provider))
	for _, a := range r.adapters {
		if a.CanHandle(p) {
			return a
		}
	}
	return nil
}

// sourceRef unmarshals a citation entry that may be a bare URL string or an
// object carrying url/link and an optional title
type sourceRef struct {
	URL   string
	Title string
}

func (s *sourceRef) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		s.URL = str
		return nil
	}

	var obj struct {
		URL   string `json:"url"`
		Link  string `json:"link"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	s.URL = obj.URL
	if s.URL == "" {
		s.URL = obj.Link
	}
	s.Title = obj.Title
	return nil
}

func refsToSources(refs []sourceRef) []Source {
	var out []Source
	for _, r := range refs {
		if strings.TrimSpace(r.URL) == "" {
			continue
		}
		out = append(out, Source{URL: r.URL, Title: r.Title})
	}
	return out
}
