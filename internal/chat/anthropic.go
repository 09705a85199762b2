package chat

import (
	"errors"
	"os"

	"github.com/tmc/langchaingo/llms/anthropic"
)

// NewAnthropicGateway constructs a Gateway backed by the Anthropic API.
// The key comes from the options or, failing that, ANTHROPIC_API_KEY.
func NewAnthropicGateway(opts Options) (Gateway, error) {
	apiKey := opts.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("anthropic: no API key configured (set ANTHROPIC_API_KEY)")
	}

	clientOpts := []anthropic.Option{anthropic.WithToken(apiKey)}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, anthropic.WithBaseURL(opts.BaseURL))
	}

	client, err := anthropic.New(clientOpts...)
	if err != nil {
		return nil, &ProviderError{Provider: ProviderAnthropic, Err: err}
	}

	return &langchainGateway{provider: ProviderAnthropic, model: client}, nil
}
