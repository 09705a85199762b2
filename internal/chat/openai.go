package chat

import (
	"errors"
	"os"

	"github.com/tmc/langchaingo/llms/openai"
)

// NewOpenAIGateway constructs a Gateway backed by the OpenAI API. The key
// comes from the options or, failing that, OPENAI_API_KEY. BaseURL allows
// pointing at OpenAI-compatible endpoints.
func NewOpenAIGateway(opts Options) (Gateway, error) {
	apiKey := opts.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("openai: no API key configured (set OPENAI_API_KEY)")
	}

	clientOpts := []openai.Option{openai.WithToken(apiKey)}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, openai.WithBaseURL(opts.BaseURL))
	}

	client, err := openai.New(clientOpts...)
	if err != nil {
		return nil, &ProviderError{Provider: ProviderOpenAI, Err: err}
	}

	return &langchainGateway{provider: ProviderOpenAI, model: client}, nil
}
