package grading

import (
	"context"
	"errors"
	"testing"

	"github.com/keiko-dev/keiko/internal/chat"
	"github.com/keiko-dev/keiko/internal/models"
	"github.com/stretchr/testify/require"
)

var gradedTranscript = models.Transcript{
	{Role: models.RoleUser, Content: "Write me a haiku"},
	{Role: models.RoleAssistant, Content: "Leaves drift on water"},
}

func TestGraderGrade(t *testing.T) {
	gw := chat.NewScriptedGateway()
	gw.Queue("judge-model", `{"reasoning": "good", "overall": 4, "behavior_results": [{"behavior": "produces a haiku", "present": true, "evidence": "Leaves drift"}]}`)

	grader := NewGrader(gw, "judge-model")
	j, err := grader.Grade(context.Background(), gradedTranscript, []string{"produces a haiku"})
	require.NoError(t, err)
	require.Equal(t, 4, j.Overall)
	require.Len(t, j.BehaviorResults, 1)
}

func TestGraderPromptContents(t *testing.T) {
	gw := chat.NewScriptedGateway()
	gw.Queue("judge-model", `{"overall": 5}`)

	grader := NewGrader(gw, "judge-model")
	_, err := grader.Grade(context.Background(), gradedTranscript, []string{"produces a haiku", "stays brief"})
	require.NoError(t, err)

	reqs := gw.Requests()
	require.Len(t, reqs, 1)
	prompt := reqs[0].Messages[0].Content
	require.Contains(t, prompt, "- produces a haiku\n- stays brief")
	require.Contains(t, prompt, "USER: Write me a haiku")
	require.Contains(t, prompt, "ASSISTANT: Leaves drift on water")
	require.NotContains(t, prompt, "{expected_behaviors}")
	require.NotContains(t, prompt, "{transcript_text}")
}

func TestGraderUnparseableReplyIsNeutral(t *testing.T) {
	gw := chat.NewScriptedGateway()
	gw.Queue("judge-model", "the vibes were good")

	grader := NewGrader(gw, "judge-model")
	j, err := grader.Grade(context.Background(), gradedTranscript, []string{"anything"})
	require.NoError(t, err)
	require.Equal(t, NeutralScore, j.Overall)
}

func TestGraderTransportError(t *testing.T) {
	gw := chat.NewScriptedGateway()
	gw.Err = errors.New("overloaded")

	grader := NewGrader(gw, "judge-model")
	_, err := grader.Grade(context.Background(), gradedTranscript, []string{"anything"})
	require.ErrorContains(t, err, "overloaded")
}
