package chat

import "fmt"

// Supported provider names.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// Options holds provider construction settings. Zero values defer to the
// provider's environment variables.
type Options struct {
	APIKey  string
	BaseURL string
}

// New resolves the configured provider name to a Gateway. The selection
// happens exactly once at startup; callers hold the returned Gateway for
// the lifetime of the run.
func New(provider string, opts Options) (Gateway, error) {
	switch provider {
	case ProviderAnthropic:
		return NewAnthropicGateway(opts)
	case ProviderOpenAI:
		return NewOpenAIGateway(opts)
	default:
		return nil, fmt.Errorf("unknown provider %q (expected %q or %q)", provider, ProviderAnthropic, ProviderOpenAI)
	}
}
