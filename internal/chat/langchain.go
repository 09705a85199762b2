package chat

import (
	"context"
	"errors"

	"github.com/keiko-dev/keiko/internal/models"
	"github.com/tmc/langchaingo/llms"
)

// langchainGateway adapts a langchaingo llms.Model to the Gateway contract.
// Both provider backends share this implementation; they differ only in how
// the underlying client is constructed.
type langchainGateway struct {
	provider string
	model    llms.Model
}

func (g *langchainGateway) Send(ctx context.Context, req Request) (string, error) {
	resp, err := g.model.GenerateContent(ctx, toMessageContent(req), callOptions(req)...)
	if err != nil {
		return "", &ProviderError{Provider: g.provider, Model: req.Model, Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &ProviderError{Provider: g.provider, Model: req.Model, Err: errors.New("empty response: no choices returned")}
	}

	return resp.Choices[0].Content, nil
}

// toMessageContent converts a Request into langchaingo message content,
// prepending the system text when present.
func toMessageContent(req Request) []llms.MessageContent {
	out := make([]llms.MessageContent, 0, len(req.Messages)+1)

	if req.System != "" {
		out = append(out, llms.MessageContent{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(req.System)},
		})
	}

	for _, msg := range req.Messages {
		role := llms.ChatMessageTypeHuman
		if msg.Role == models.RoleAssistant {
			role = llms.ChatMessageTypeAI
		}
		out = append(out, llms.MessageContent{
			Role:  role,
			Parts: []llms.ContentPart{llms.TextPart(msg.Content)},
		})
	}

	return out
}

func callOptions(req Request) []llms.CallOption {
	opts := make([]llms.CallOption, 0, 2)
	if req.Model != "" {
		opts = append(opts, llms.WithModel(req.Model))
	}
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}
	return opts
}
