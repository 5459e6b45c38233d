package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/model"
)

// OpenAIProvider implements the Provider interface over the Chat
// Completions API
type OpenAIProvider struct {
	client *openai.Client
	config model.AssistantConfig
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(config model.AssistantConfig) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListModels(ctx)
	return err == nil
}

// Ask sends one prompt through the Chat Completions API
func (p *OpenAIProvider) Ask(ctx context.Context, req AskRequest) (*AskResponse, error) {
	chatModel := req.Model
	if chatModel == "" {
		chatModel = p.config.Model
	}
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1000
	}

	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}

	chatReq := openai.ChatCompletionRequest{
		Model: chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Prompt,
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.3,
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, &ProviderError{Provider: p.Name(), Kind: KindGeneric, Err: fmt.Errorf("no response choices")}
	}

	// go-openai strips unknown fields, so re-serialize what we got; the
	// citation analyzer falls back to text extraction when no structured
	// citations are present
	raw, _ := json.Marshal(resp)

	return &AskResponse{
		Text:       strings.TrimSpace(resp.Choices[0].Message.Content),
		Model:      resp.Model,
		RawPayload: raw,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}

// classifyOpenAIError maps API errors onto retry classes
func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &ProviderError{Provider: "openai", Kind: KindAuth, Err: err}
		case http.StatusTooManyRequests, http.StatusPaymentRequired:
			return &ProviderError{Provider: "openai", Kind: KindRateLimit, Err: err}
		}
	}
	return &ProviderError{Provider: "openai", Kind: KindGeneric, Err: err}
}
