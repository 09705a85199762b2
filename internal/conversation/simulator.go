package conversation

import (
	"context"

	"github.com/keiko-dev/keiko/internal/chat"
	"github.com/keiko-dev/keiko/internal/models"
)

const simulatorMaxTokens = 512

// UserSimulator generates the next synthetic user utterance given behavior
// instructions and the conversation so far.
type UserSimulator interface {
	NextMessage(ctx context.Context, transcript models.Transcript, instructions string) (string, error)
}

// Simulator asks a simulator-class model for exactly the next user
// utterance and returns the raw text unmodified. It is explicitly a
// stochastic participant; determinism is neither guaranteed nor required.
type Simulator struct {
	gateway chat.Gateway
	model   string
}

// NewSimulator creates a Simulator using the given model.
func NewSimulator(gateway chat.Gateway, model string) *Simulator {
	return &Simulator{gateway: gateway, model: model}
}

// NextMessage implements [UserSimulator].
func (s *Simulator) NextMessage(ctx context.Context, transcript models.Transcript, instructions string) (string, error) {
	prompt := fill(simulatorPromptTemplate, map[string]string{
		"instructions":    instructions,
		"transcript_text": transcript.Format(),
	})

	return s.gateway.Send(ctx, chat.Request{
		Model:     s.model,
		Messages:  []models.Message{{Role: models.RoleUser, Content: prompt}},
		MaxTokens: simulatorMaxTokens,
	})
}
