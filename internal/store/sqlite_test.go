package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_ResponseRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	resp := model.StoredResponse{
		ID:           "resp-1",
		OrgID:        "org-1",
		Provider:     "perplexity",
		PromptText:   "best crm tools?",
		ResponseText: "Acme Corp is a solid choice.",
		RawPayload:   []byte(`{"citations":["https://example.com"]}`),
		Citations: []model.Citation{
			{URL: "https://example.com", Domain: "example.com", BrandMention: model.VerdictUnknown},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := s.SaveResponse(ctx, resp); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.GetResponse(ctx, "resp-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.OrgID != resp.OrgID || got.ResponseText != resp.ResponseText {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if len(got.Citations) != 1 || got.Citations[0].URL != "https://example.com" {
		t.Errorf("citations lost: %+v", got.Citations)
	}
	if string(got.RawPayload) != string(resp.RawPayload) {
		t.Errorf("raw payload mismatch: %s", got.RawPayload)
	}
}

func TestSQLiteStore_GetResponseNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetResponse(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStore_UpdateCitations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_ = s.SaveResponse(ctx, model.StoredResponse{
		ID: "resp-1", OrgID: "org-1", Provider: "openai", ResponseText: "text",
		Citations: []model.Citation{{URL: "https://example.com", BrandMention: model.VerdictUnknown}},
	})

	enriched := []model.Citation{
		{URL: "https://example.com", BrandMention: model.VerdictYes, BrandMentionConfidence: 0.9, MatchedBrand: "Acme Corp"},
	}
	if err := s.UpdateCitations(ctx, "resp-1", enriched); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, _ := s.GetResponse(ctx, "resp-1")
	if got.Citations[0].BrandMention != model.VerdictYes {
		t.Errorf("verdict = %v, want yes", got.Citations[0].BrandMention)
	}

	if err := s.UpdateCitations(ctx, "missing", enriched); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStore_CatalogRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	catalog := model.Catalog{
		{Name: "Acme Corp", Variants: []string{"acme"}, IsOrgBrand: true},
		{Name: "TechCorp"},
	}
	if err := s.SaveCatalog(ctx, "org-1", catalog); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.GetCatalog(ctx, "org-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Acme Corp" || !got[0].IsOrgBrand {
		t.Errorf("catalog mismatch: %+v", got)
	}

	if _, err := s.GetCatalog(ctx, "org-2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStore_SaveAnalysis(t *testing.T) {
	s := newTestStore(t)

	analysis := model.Analysis{
		ResponseID: "resp-1",
		Provider:   "openai",
		AnalyzedAt: time.Now().UTC(),
		Visibility: model.VisibilityScore{Score: 85},
	}
	if err := s.SaveAnalysis(context.Background(), analysis); err != nil {
		t.Fatalf("save analysis: %v", err)
	}
}
