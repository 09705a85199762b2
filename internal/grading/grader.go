// Package grading scores finished transcripts against behavioral rubrics,
// with a layered parsing fallback for the judge's free-text reply.
package grading

import (
	"context"
	"strings"

	"github.com/keiko-dev/keiko/internal/chat"
	"github.com/keiko-dev/keiko/internal/models"
)

const judgeMaxTokens = 1024

const graderPromptTemplate = `Evaluate this conversation transcript against expected behaviors.

EXPECTED BEHAVIORS:
{expected_behaviors}

TRANSCRIPT:
{transcript_text}

For each expected behavior, determine if it occurred in the transcript.
Then provide an overall score from 1-5:
- 5: All behaviors occurred correctly
- 4: Most behaviors occurred, minor issues
- 3: Some behaviors occurred, some missing
- 2: Few behaviors occurred, major issues
- 1: Behaviors did not occur or were incorrect

Output your analysis as JSON:
{
  "reasoning": "<brief explanation>",
  "behavior_results": [
    {"behavior": "<behavior text>", "present": true/false, "evidence": "<quote or explanation>"}
  ],
  "overall": <1-5>
}`

// Grader grades transcripts using a judge-class model.
type Grader struct {
	gateway chat.Gateway
	model   string
}

// NewGrader creates a Grader using the given judge model.
func NewGrader(gateway chat.Gateway, model string) *Grader {
	return &Grader{gateway: gateway, model: model}
}

// Grade builds the rubric prompt, asks the judge, and interprets its reply.
// Parsing never fails: an unusable reply degrades to the neutral fallback
// judgment. Only a provider transport failure returns an error.
func (g *Grader) Grade(ctx context.Context, transcript models.Transcript, expectedBehaviors []string) (*models.Judgment, error) {
	prompt := buildGraderPrompt(transcript, expectedBehaviors)

	reply, err := g.gateway.Send(ctx, chat.Request{
		Model:     g.model,
		Messages:  []models.Message{{Role: models.RoleUser, Content: prompt}},
		MaxTokens: judgeMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	return ParseJudgment(reply), nil
}

func buildGraderPrompt(transcript models.Transcript, expectedBehaviors []string) string {
	var behaviors strings.Builder
	for i, b := range expectedBehaviors {
		if i > 0 {
			behaviors.WriteString("\n")
		}
		behaviors.WriteString("- ")
		behaviors.WriteString(b)
	}

	prompt := graderPromptTemplate
	prompt = strings.ReplaceAll(prompt, "{expected_behaviors}", behaviors.String())
	prompt = strings.ReplaceAll(prompt, "{transcript_text}", transcript.Format())
	return prompt
}
