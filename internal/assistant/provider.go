package assistant

import (
	"context"
)

// Provider defines the interface for AI assistant providers whose
// responses get analyzed for brand visibility
type Provider interface {
	// Name returns the provider name as understood by the citation
	// analyzer's adapter registry
	Name() string

	// Ask sends one prompt and returns the assistant's response
	Ask(ctx context.Context, req AskRequest) (*AskResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// AskRequest contains the input for one assistant call
type AskRequest struct {
	// Prompt is the user question sent verbatim
	Prompt string

	// Model overrides the configured model when set
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// AskResponse contains the assistant's answer plus the raw payload the
// citation analyzer needs
type AskResponse struct {
	// Text is the assistant's answer
	Text string

	// Model is the model that generated the response
	Model string

	// RawPayload is the provider's response serialized back to JSON, fed
	// to the citation payload adapters
	RawPayload []byte

	// TokensUsed tracks token consumption
	TokensUsed int
}
