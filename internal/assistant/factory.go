package assistant

import (
	"fmt"
	"strings"

	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/model"
)

// NewProvider creates an assistant provider based on configuration
func NewProvider(config model.AssistantConfig) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "perplexity":
		return NewPerplexityProvider(config)

	case "":
		// No provider configured; analysis of stored responses still works
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown assistant provider: %s (supported: openai, perplexity)", config.Provider)
	}
}
