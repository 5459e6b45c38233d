package assistant

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/model"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		config   model.AssistantConfig
		wantNil  bool
		wantErr  bool
		wantName string
	}{
		{name: "openai", config: model.AssistantConfig{Provider: "openai", APIKey: "sk-test"}, wantName: "openai"},
		{name: "perplexity", config: model.AssistantConfig{Provider: "Perplexity", APIKey: "pplx-test"}, wantName: "perplexity"},
		{name: "disabled", config: model.AssistantConfig{}, wantNil: true},
		{name: "unknown", config: model.AssistantConfig{Provider: "gemini-ultra"}, wantErr: true},
		{name: "missing key", config: model.AssistantConfig{Provider: "openai"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.config)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil {
				if p != nil {
					t.Fatal("expected nil provider when unconfigured")
				}
				return
			}
			if p.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", p.Name(), tt.wantName)
			}
		})
	}
}

// countingProvider fails with a fixed error a number of times before
// succeeding
type countingProvider struct {
	failures int
	err      error
	calls    int
}

func (p *countingProvider) Name() string                            { return "counting" }
func (p *countingProvider) IsAvailable(ctx context.Context) bool    { return true }
func (p *countingProvider) Ask(ctx context.Context, req AskRequest) (*AskResponse, error) {
	p.calls++
	if p.calls <= p.failures {
		return nil, p.err
	}
	return &AskResponse{Text: "ok"}, nil
}

func TestAskWithRetry_RateLimitRetries(t *testing.T) {
	p := &countingProvider{
		failures: 2,
		err:      &ProviderError{Provider: "counting", Kind: KindRateLimit, Err: errors.New("429")},
	}

	resp, err := AskWithRetry(context.Background(), p, AskRequest{Prompt: "q"}, 3)
	if err != nil {
		t.Fatalf("expected eventual success, got %v", err)
	}
	if resp.Text != "ok" || p.calls != 3 {
		t.Errorf("calls = %d, want 3", p.calls)
	}
}

func TestAskWithRetry_AuthFailsFast(t *testing.T) {
	p := &countingProvider{
		failures: 10,
		err:      &ProviderError{Provider: "counting", Kind: KindAuth, Err: errors.New("401")},
	}

	_, err := AskWithRetry(context.Background(), p, AskRequest{Prompt: "q"}, 3)
	if !IsAuthError(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if p.calls != 1 {
		t.Errorf("auth failure retried: calls = %d, want 1", p.calls)
	}
}

func TestAskWithRetry_GenericFailsFast(t *testing.T) {
	p := &countingProvider{
		failures: 10,
		err:      &ProviderError{Provider: "counting", Kind: KindGeneric, Err: errors.New("boom")},
	}

	if _, err := AskWithRetry(context.Background(), p, AskRequest{Prompt: "q"}, 3); err == nil {
		t.Fatal("expected error")
	}
	if p.calls != 1 {
		t.Errorf("generic failure retried: calls = %d, want 1", p.calls)
	}
}

func TestAskWithRetry_Exhaustion(t *testing.T) {
	p := &countingProvider{
		failures: 10,
		err:      &ProviderError{Provider: "counting", Kind: KindRateLimit, Err: errors.New("429")},
	}

	// maxRetries 0 means a single attempt
	if _, err := AskWithRetry(context.Background(), p, AskRequest{Prompt: "q"}, 0); err == nil {
		t.Fatal("expected exhaustion error")
	}
	if p.calls != 1 {
		t.Errorf("calls = %d, want 1", p.calls)
	}
}

func TestPerplexityProvider_Ask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer pplx-test" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"model": "sonar",
			"choices": [{"message": {"content": "Acme Corp is a popular choice."}}],
			"citations": ["https://example.com/review"],
			"usage": {"total_tokens": 42}
		}`))
	}))
	defer srv.Close()

	p, err := NewPerplexityProvider(model.AssistantConfig{
		Provider: "perplexity",
		APIKey:   "pplx-test",
		BaseURL:  srv.URL,
	})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	resp, err := p.Ask(context.Background(), AskRequest{Prompt: "best tools?"})
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if resp.Text != "Acme Corp is a popular choice." {
		t.Errorf("text = %q", resp.Text)
	}
	if resp.TokensUsed != 42 {
		t.Errorf("tokens = %d, want 42", resp.TokensUsed)
	}
	// The verbatim body keeps the citations field for the analyzer
	if len(resp.RawPayload) == 0 {
		t.Error("raw payload missing")
	}
}

func TestPerplexityProvider_ErrorClasses(t *testing.T) {
	tests := []struct {
		status    int
		wantAuth  bool
		wantLimit bool
	}{
		{http.StatusUnauthorized, true, false},
		{http.StatusForbidden, true, false},
		{http.StatusTooManyRequests, false, true},
		{http.StatusPaymentRequired, false, true},
		{http.StatusInternalServerError, false, false},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))

		p, _ := NewPerplexityProvider(model.AssistantConfig{APIKey: "k", BaseURL: srv.URL})
		_, err := p.Ask(context.Background(), AskRequest{Prompt: "q"})
		srv.Close()

		if err == nil {
			t.Fatalf("status %d: expected error", tt.status)
		}
		if IsAuthError(err) != tt.wantAuth {
			t.Errorf("status %d: IsAuthError = %v, want %v", tt.status, IsAuthError(err), tt.wantAuth)
		}
		if IsRateLimitError(err) != tt.wantLimit {
			t.Errorf("status %d: IsRateLimitError = %v, want %v", tt.status, IsRateLimitError(err), tt.wantLimit)
		}
	}
}
