package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/model"
)

const defaultPerplexityURL = "https://api.perplexity.ai"

// PerplexityProvider implements the Provider interface against
// Perplexity's OpenAI-compatible endpoint. The raw response body is kept
// verbatim because it carries the citations and search_results fields the
// citation analyzer reads.
type PerplexityProvider struct {
	httpClient *http.Client
	config     model.AssistantConfig
	baseURL    string
}

// NewPerplexityProvider creates a new Perplexity provider
func NewPerplexityProvider(config model.AssistantConfig) (*PerplexityProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Perplexity API key is required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultPerplexityURL
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &PerplexityProvider{
		httpClient: &http.Client{Timeout: timeout},
		config:     config,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Name returns the provider name
func (p *PerplexityProvider) Name() string {
	return "perplexity"
}

// IsAvailable checks that the API key is accepted
func (p *PerplexityProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.Ask(ctx, AskRequest{Prompt: "ping", MaxTokens: 1})
	return err == nil || !IsAuthError(err)
}

type perplexityRequest struct {
	Model     string              `json:"model"`
	Messages  []perplexityMessage `json:"messages"`
	MaxTokens int                 `json:"max_tokens,omitempty"`
}

type perplexityMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type perplexityResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

// Ask sends one prompt to the chat completions endpoint
func (p *PerplexityProvider) Ask(ctx context.Context, req AskRequest) (*AskResponse, error) {
	chatModel := req.Model
	if chatModel == "" {
		chatModel = p.config.Model
	}
	if chatModel == "" {
		chatModel = "sonar"
	}

	body, err := json.Marshal(perplexityRequest{
		Model:     chatModel,
		Messages:  []perplexityMessage{{Role: "user", Content: req.Prompt}},
		MaxTokens: req.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.config.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Kind: KindGeneric, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{Provider: p.Name(), Kind: KindGeneric, Err: fmt.Errorf("read body: %w", err)}
	}

	if err := classifyStatus(p.Name(), resp.StatusCode, raw); err != nil {
		return nil, err
	}

	var parsed perplexityResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &ProviderError{Provider: p.Name(), Kind: KindGeneric, Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(parsed.Choices) == 0 {
		return nil, &ProviderError{Provider: p.Name(), Kind: KindGeneric, Err: fmt.Errorf("no response choices")}
	}

	return &AskResponse{
		Text:       strings.TrimSpace(parsed.Choices[0].Message.Content),
		Model:      parsed.Model,
		RawPayload: raw,
		TokensUsed: parsed.Usage.TotalTokens,
	}, nil
}

// classifyStatus maps HTTP status codes onto retry classes
func classifyStatus(provider string, status int, body []byte) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &ProviderError{Provider: provider, Kind: KindAuth, Err: fmt.Errorf("status %d: %s", status, truncateBody(body))}
	case status == http.StatusTooManyRequests || status == http.StatusPaymentRequired:
		return &ProviderError{Provider: provider, Kind: KindRateLimit, Err: fmt.Errorf("status %d: %s", status, truncateBody(body))}
	default:
		return &ProviderError{Provider: provider, Kind: KindGeneric, Err: fmt.Errorf("status %d: %s", status, truncateBody(body))}
	}
}

func truncateBody(body []byte) string {
	const max = 200
	s := string(body)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
