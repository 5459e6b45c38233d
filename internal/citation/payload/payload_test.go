package payload

import (
	"encoding/json"
	"testing"
)

func TestChatAdapter_StringAndObjectCitations(t *testing.T) {
	raw := json.RawMessage(`{
		"citations": [
			"https://example.com/a",
			{"url": "https://example.com/b", "title": "B"},
			{"link": "https://example.com/c"}
		]
	}`)

	got := NewChatAdapter().Extract(raw)
	if len(got.Citations) != 3 {
		t.Fatalf("got %d citations, want 3", len(got.Citations))
	}
	if got.Citations[1].Title != "B" {
		t.Errorf("object citation title = %q, want B", got.Citations[1].Title)
	}
	if got.Citations[2].URL != "https://example.com/c" {
		t.Errorf("link-keyed citation url = %q", got.Citations[2].URL)
	}
}

func TestChatAdapter_MalformedPayload(t *testing.T) {
	got := NewChatAdapter().Extract(json.RawMessage(`{"citations": "nope"`))
	if !got.Empty() {
		t.Error("malformed payload should yield empty extraction, not error")
	}
}

func TestPerplexityAdapter(t *testing.T) {
	raw := json.RawMessage(`{
		"citations": ["https://example.com/a"],
		"search_results": [{"url": "https://example.com/b", "title": "Result B"}]
	}`)

	got := NewPerplexityAdapter().Extract(raw)
	if len(got.Citations) != 1 || len(got.Related) != 1 {
		t.Fatalf("got %d citations, %d related; want 1, 1", len(got.Citations), len(got.Related))
	}
	if got.Related[0].Title != "Result B" {
		t.Errorf("related title = %q", got.Related[0].Title)
	}
	if got.Rich {
		t.Error("perplexity payloads are not metadata-rich")
	}
}

func TestGeminiAdapter(t *testing.T) {
	raw := json.RawMessage(`{
		"candidates": [{
			"citationMetadata": {"citations": [{"uri": "https://example.com/a", "title": "A"}]},
			"groundingMetadata": {
				"groundingChunks": [
					{"web": {"uri": "https://example.com/b"}},
					{"web": {"uri": "https://example.com/a"}}
				],
				"groundingAttributions": [{"web": {"uri": "https://example.com/c"}}],
				"webSearchQueries": ["best tools"]
			}
		}]
	}`)

	got := NewGeminiAdapter().Extract(raw)
	if len(got.Citations) != 1 {
		t.Fatalf("got %d citations, want 1", len(got.Citations))
	}
	// The duplicated grounding chunk is filtered by the uniqueness check
	if len(got.Grounding) != 2 {
		t.Fatalf("got %d grounding sources, want 2", len(got.Grounding))
	}
	if !got.Rich {
		t.Error("gemini payloads are metadata-rich")
	}
}

func TestRegistry_FindAdapter(t *testing.T) {
	r := NewRegistry()

	if a := r.FindAdapter("OpenAI"); a == nil || a.Name() != "chat" {
		t.Error("expected chat adapter for openai")
	}
	if a := r.FindAdapter("gemini"); a == nil || a.Name() != "gemini" {
		t.Error("expected gemini adapter")
	}
	if a := r.FindAdapter("unknown-provider"); a != nil {
		t.Errorf("expected nil adapter for unknown provider, got %s", a.Name())
	}
}

func TestExtractFromText(t *testing.T) {
	text := "See [the docs](https://docs.example.com/guide) and https://example.com/page. " +
		"Repeated: https://example.com/page."

	got := ExtractFromText(text)
	if len(got) != 2 {
		t.Fatalf("got %d sources, want 2", len(got))
	}
	if got[0].Title != "the docs" {
		t.Errorf("markdown title = %q", got[0].Title)
	}
	if got[1].URL != "https://example.com/page" {
		t.Errorf("bare url = %q, want trailing punctuation trimmed", got[1].URL)
	}
}

func TestExtractFromText_Empty(t *testing.T) {
	if got := ExtractFromText("no links in this response"); len(got) != 0 {
		t.Errorf("got %d sources, want 0", len(got))
	}
}
