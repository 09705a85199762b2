// Package chat provides a uniform request/response abstraction over remote
// conversational-completion providers.
package chat

import (
	"context"
	"fmt"

	"github.com/keiko-dev/keiko/internal/models"
)

// Request carries one chat completion request. The message sequence is
// replayed in full on every call; the gateway keeps no state between calls.
type Request struct {
	Model     string
	Messages  []models.Message
	System    string
	MaxTokens int
}

// Gateway is the single capability every provider backend implements.
// Implementations perform no retries; retry policy belongs to the caller.
type Gateway interface {
	Send(ctx context.Context, req Request) (string, error)
}

// ProviderError wraps any transport or API failure from a provider,
// carrying enough context to identify which backend and model failed.
type ProviderError struct {
	Provider string
	Model    string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s (model %s): %v", e.Provider, e.Model, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
