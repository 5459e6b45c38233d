package payload

import "encoding/json"

// ChatAdapter handles ChatCompletions-style payloads carrying a flat
// citation list of URL strings or {url|link, title?} objects.
type ChatAdapter struct{}

// NewChatAdapter creates the ChatCompletions-style adapter
func NewChatAdapter() *ChatAdapter {
	return &ChatAdapter{}
}

// Name returns the adapter name
func (a *ChatAdapter) Name() string { return "chat" }

// CanHandle checks the provider identifier
func (a *ChatAdapter) CanHandle(provider string) bool {
	switch provider {
	case "openai", "chatgpt", "chat", "azure-openai":
		return true
	}
	return false
}

// Extract parses the flat citation list
func (a *ChatAdapter) Extract(raw json.RawMessage) Extraction {
	if len(raw) == 0 {
		return Extraction{}
	}

	var body struct {
		Citations []sourceRef `json:"citations"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return Extraction{}
	}

	return Extraction{Citations: refsToSources(body.Citations)}
}
