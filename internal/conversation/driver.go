// Package conversation drives simulated multi-turn dialogues between an
// artifact-under-test and a synthetic user.
package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/keiko-dev/keiko/internal/chat"
	"github.com/keiko-dev/keiko/internal/models"
)

const (
	// DefaultMaxTurns bounds the conversation when the spec doesn't.
	DefaultMaxTurns = 10

	artifactMaxTokens = 4096
)

// Driver orchestrates turns between the artifact-under-test, the
// termination oracle, and the user simulator, up to a turn budget. A Driver
// holds no per-scenario state and may run scenarios back to back, but each
// individual conversation is strictly sequential: user and assistant turns
// are causally dependent.
type Driver struct {
	gateway   chat.Gateway
	oracle    TerminationOracle
	simulator UserSimulator

	// artifactModel executes the artifact-under-test.
	artifactModel string

	// systemPrompt is the optimized artifact supplied as system instructions.
	systemPrompt string

	maxTurns int
}

// NewDriver creates a conversation driver. maxTurns <= 0 falls back to
// DefaultMaxTurns.
func NewDriver(gateway chat.Gateway, oracle TerminationOracle, simulator UserSimulator, artifactModel, systemPrompt string, maxTurns int) *Driver {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Driver{
		gateway:       gateway,
		oracle:        oracle,
		simulator:     simulator,
		artifactModel: artifactModel,
		systemPrompt:  systemPrompt,
		maxTurns:      maxTurns,
	}
}

// Run executes one scenario and returns the accumulated transcript. Errors
// from the artifact model, the oracle, or the simulator abort the scenario
// without retry; budget exhaustion is recorded, not raised.
func (d *Driver) Run(ctx context.Context, scenario *models.Scenario) (*models.ConversationResult, error) {
	transcript := models.Transcript{
		{Role: models.RoleUser, Content: openingMessage(scenario)},
	}

	reply, err := d.invokeArtifact(ctx, transcript)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: first assistant turn: %w", scenario.Name, err)
	}
	transcript = append(transcript, models.Message{Role: models.RoleAssistant, Content: reply})

	turns := 1

	// Single-shot scenario: no simulated user, one turn is the whole
	// conversation.
	if scenario.SimulatorInstructions == "" {
		return &models.ConversationResult{Transcript: transcript, Turns: turns}, nil
	}

	for turns < d.maxTurns {
		waiting, err := d.oracle.NeedsUserInput(ctx, transcript)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: termination oracle: %w", scenario.Name, err)
		}
		if !waiting {
			slog.Debug("oracle reported conversation done", "scenario", scenario.Name, "turns", turns)
			return &models.ConversationResult{Transcript: transcript, Turns: turns}, nil
		}

		userMsg, err := d.simulator.NextMessage(ctx, transcript, scenario.SimulatorInstructions)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: user simulator: %w", scenario.Name, err)
		}
		transcript = append(transcript, models.Message{Role: models.RoleUser, Content: userMsg})

		reply, err := d.invokeArtifact(ctx, transcript)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: assistant turn %d: %w", scenario.Name, turns+1, err)
		}
		transcript = append(transcript, models.Message{Role: models.RoleAssistant, Content: reply})

		turns++
	}

	slog.Debug("turn budget exhausted", "scenario", scenario.Name, "turns", turns)
	return &models.ConversationResult{
		Transcript:      transcript,
		Turns:           turns,
		BudgetExhausted: true,
	}, nil
}

func (d *Driver) invokeArtifact(ctx context.Context, transcript models.Transcript) (string, error) {
	return d.gateway.Send(ctx, chat.Request{
		Model:     d.artifactModel,
		Messages:  transcript,
		System:    d.systemPrompt,
		MaxTokens: artifactMaxTokens,
	})
}

// openingMessage builds the first user turn: context files (sorted by name
// for a stable order) concatenated before the scenario's initial message.
func openingMessage(scenario *models.Scenario) string {
	if len(scenario.ContextFiles) == 0 {
		return scenario.InitialMessage
	}

	names := make([]string, 0, len(scenario.ContextFiles))
	for name := range scenario.ContextFiles {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for i, name := range names {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "File: `%s`\n```\n%s\n```", name, scenario.ContextFiles[name])
	}
	sb.WriteString("\n\n")
	sb.WriteString(scenario.InitialMessage)
	return sb.String()
}
