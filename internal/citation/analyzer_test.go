package citation

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/model"
)

func testCatalog() model.Catalog {
	return model.Catalog{
		{Name: "Acme Corp", Variants: []string{"acme"}, IsOrgBrand: true},
		{Name: "TechCorp"},
	}
}

func TestAnalyze_ProviderCitationsWin(t *testing.T) {
	payload := json.RawMessage(`{"citations": ["https://example.com/a", "https://example.com/b"]}`)
	text := "See also https://example.com/fallback for details."

	got := NewAnalyzer().Analyze("openai", payload, text, testCatalog())
	if len(got) != 2 {
		t.Fatalf("got %d citations, want 2", len(got))
	}
	for _, c := range got {
		if !c.FromProvider {
			t.Errorf("citation %s should be provider-supplied", c.URL)
		}
		if c.URL == "https://example.com/fallback" {
			t.Error("text fallback must not run when structured citations exist")
		}
	}
}

func TestAnalyze_TextFallback(t *testing.T) {
	text := "Check [Acme docs](https://docs.acme.com/start) and https://example.com/review."

	got := NewAnalyzer().Analyze("openai", nil, text, testCatalog())
	if len(got) != 2 {
		t.Fatalf("got %d citations, want 2", len(got))
	}
	if got[0].FromProvider {
		t.Error("fallback citations should not be marked provider-supplied")
	}
}

func TestAnalyze_DedupFirstWins(t *testing.T) {
	payload := json.RawMessage(`{
		"citations": [
			{"url": "https://example.com/a", "title": "First"},
			{"url": "https://example.com/a", "title": "Second"},
			"https://example.com/b"
		]
	}`)

	got := NewAnalyzer().Analyze("chatgpt", payload, "", testCatalog())
	if len(got) != 2 {
		t.Fatalf("got %d citations, want 2", len(got))
	}
	if got[0].Title != "First" {
		t.Errorf("dedup kept %q, want first occurrence", got[0].Title)
	}
}

func TestAnalyze_SimpleProviderCap(t *testing.T) {
	urls := make([]string, 15)
	for i := range urls {
		urls[i] = fmt.Sprintf(`"https://example.com/page-%d"`, i)
	}
	payload := json.RawMessage(`{"citations": [` + joinComma(urls) + `]}`)

	got := NewAnalyzer().Analyze("perplexity", payload, "", testCatalog())
	if len(got) != maxCitationsSimple {
		t.Errorf("got %d citations, want cap %d", len(got), maxCitationsSimple)
	}
}

func TestAnalyze_UnknownProviderFallsBack(t *testing.T) {
	got := NewAnalyzer().Analyze("mystery", json.RawMessage(`{"citations":["https://x.com/a"]}`),
		"body with https://example.com/only", testCatalog())
	if len(got) != 1 || got[0].URL != "https://example.com/only" {
		t.Fatalf("unknown provider should use text fallback, got %v", got)
	}
}

func TestInferSourceType(t *testing.T) {
	tests := []struct {
		url  string
		want model.SourceType
	}{
		{"https://example.com/report.pdf", model.SourcePDF},
		{"https://www.youtube.com/watch?v=abc", model.SourceVideo},
		{"https://vimeo.com/12345", model.SourceVideo},
		{"https://news.example.com/video/launch", model.SourceVideo},
		{"https://example.com/about.html", model.SourcePage},
		{"https://example.com/", model.SourcePage},
		{"https://example.com/pricing", model.SourcePage},
		{"https://example.com/data.csv", model.SourceUnknown},
	}
	for _, tt := range tests {
		if got := inferSourceType(tt.url); got != tt.want {
			t.Errorf("inferSourceType(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestDomainOf(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.Example.com/path", "example.com"},
		{"https://docs.acme.com:8080/x", "docs.acme.com"},
		{"not a url at all", ""},
	}
	for _, tt := range tests {
		if got := domainOf(tt.url); got != tt.want {
			t.Errorf("domainOf(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestCorrelate(t *testing.T) {
	catalog := testCatalog()

	// Org brand in domain and title: 3 matches (url host, domain field, title)
	c := model.Citation{
		URL:    "https://acme.com/features",
		Domain: "acme.com",
		Title:  "Acme feature overview",
	}
	got := Correlate(c, catalog)
	if got.Verdict != model.VerdictYes || !got.OrgBrand {
		t.Fatalf("expected org-brand yes verdict, got %+v", got)
	}
	if got.Brand != "Acme Corp" {
		t.Errorf("matched brand = %q", got.Brand)
	}
	want := 0.6 + 0.15*float64(got.Matches)
	if want > 0.95 {
		want = 0.95
	}
	if got.Confidence != want {
		t.Errorf("confidence = %v, want %v for %d matches", got.Confidence, want, got.Matches)
	}

	// No brand at all is a confident no
	got = Correlate(model.Citation{URL: "https://example.com", Domain: "example.com"}, catalog)
	if got.Verdict != model.VerdictNo || got.Confidence != 0.85 {
		t.Errorf("expected confident no, got %+v", got)
	}

	// Confidence saturates at 0.95
	many := model.Citation{
		URL:    "https://acme.com/acme/acme/acme",
		Domain: "acme.com",
		Title:  "acme acme acme",
	}
	if got := Correlate(many, catalog); got.Confidence != 0.95 {
		t.Errorf("confidence = %v, want saturation at 0.95", got.Confidence)
	}
}

func TestQualityScore_Tiers(t *testing.T) {
	q := NewQualityScorer()
	tests := []struct {
		domain string
		want   int
	}{
		{"wikipedia.org", 40},
		{"en.wikipedia.org", 40},
		{"nasa.gov", 35},
		{"mit.edu", 35},
		{"techcrunch.com", 30},
		{"forbes.com", 20},
		{"some-charity.org", 18},
		{"random-blog.net", 10},
		{"", 10},
	}
	for _, tt := range tests {
		if got := q.domainAuthority(tt.domain); got != tt.want {
			t.Errorf("domainAuthority(%q) = %d, want %d", tt.domain, got, tt.want)
		}
	}
}

func TestQualityScore_Bounds(t *testing.T) {
	payload := json.RawMessage(`{"citations": ["https://en.wikipedia.org/wiki/Acme_Corp"]}`)
	got := NewAnalyzer().Analyze("openai", payload, "", testCatalog())
	if len(got) != 1 {
		t.Fatal("expected one citation")
	}
	c := got[0]
	if c.QualityScore < 0 || c.QualityScore > 100 {
		t.Errorf("quality score %d out of [0,100]", c.QualityScore)
	}
	if c.QualityFactors.Relevance > 30 {
		t.Errorf("relevance %d exceeds cap 30", c.QualityFactors.Relevance)
	}
	if sum := c.QualityFactors.DomainAuthority + c.QualityFactors.Recency + c.QualityFactors.Relevance; sum != c.QualityScore {
		t.Errorf("quality score %d != factor sum %d", c.QualityScore, sum)
	}
}

// Quality score is monotonically non-decreasing in domain authority when
// the other factors are fixed
func TestQualityScore_AuthorityMonotonic(t *testing.T) {
	q := NewQualityScorer()
	base := model.Citation{SourceType: model.SourcePage, FromProvider: true}
	corr := Correlation{Verdict: model.VerdictNo, Confidence: 0.85}

	prev := -1
	for _, domain := range []string{"random-blog.net", "some-charity.org", "forbes.com", "techcrunch.com", "nasa.gov", "wikipedia.org"} {
		c := base
		c.Domain = domain
		f := q.Score(c, corr)
		total := f.DomainAuthority + f.Recency + f.Relevance
		if total < prev {
			t.Errorf("quality decreased at %s: %d < %d", domain, total, prev)
		}
		prev = total
	}
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ","
		}
		out += p
	}
	return out
}
