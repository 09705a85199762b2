package conversation

import (
	"context"
	"strings"

	"github.com/keiko-dev/keiko/internal/chat"
	"github.com/keiko-dev/keiko/internal/models"
)

const oracleMaxTokens = 16

// TerminationOracle decides, from a transcript, whether the dialogue is
// waiting on the user or finished.
type TerminationOracle interface {
	NeedsUserInput(ctx context.Context, transcript models.Transcript) (bool, error)
}

// Oracle asks a judge-class model a binary WAITING/DONE question. The
// answer is a heuristic: a reply containing the token "WAITING" means the
// assistant is waiting on the user, anything else (including a malformed
// reply) counts as done. A false negative ends a conversation early and a
// false positive burns the turn budget; both are acceptable degraded
// outcomes. Transport failures are not swallowed.
type Oracle struct {
	gateway chat.Gateway
	model   string
}

// NewOracle creates an Oracle using the given judge-class model.
func NewOracle(gateway chat.Gateway, model string) *Oracle {
	return &Oracle{gateway: gateway, model: model}
}

// NeedsUserInput implements [TerminationOracle].
func (o *Oracle) NeedsUserInput(ctx context.Context, transcript models.Transcript) (bool, error) {
	prompt := fill(oraclePromptTemplate, map[string]string{
		"transcript_text": transcript.Format(),
	})

	reply, err := o.gateway.Send(ctx, chat.Request{
		Model:     o.model,
		Messages:  []models.Message{{Role: models.RoleUser, Content: prompt}},
		MaxTokens: oracleMaxTokens,
	})
	if err != nil {
		return false, err
	}

	// Substring match on the literal token. Known weakness: a reply that
	// discusses "waiting" without the uppercase token reads as DONE.
	return strings.Contains(reply, "WAITING"), nil
}
