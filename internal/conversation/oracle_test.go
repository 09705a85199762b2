package conversation

import (
	"context"
	"errors"
	"testing"

	"github.com/keiko-dev/keiko/internal/chat"
	"github.com/keiko-dev/keiko/internal/models"
	"github.com/stretchr/testify/require"
)

var oracleTranscript = models.Transcript{
	{Role: models.RoleUser, Content: "Write me a haiku"},
	{Role: models.RoleAssistant, Content: "What season should it evoke?"},
}

func TestOracleNeedsUserInput(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  bool
	}{
		{"waiting token", "WAITING", true},
		{"waiting with prose", "The answer is WAITING.", true},
		{"done token", "DONE", false},
		{"ambiguous reply defaults to done", "I am not sure what state this is in", false},
		{"lowercase waiting reads as done", "waiting", false},
		{"empty reply reads as done", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := chat.NewScriptedGateway()
			gw.Queue("oracle-model", tt.reply)

			oracle := NewOracle(gw, "oracle-model")
			waiting, err := oracle.NeedsUserInput(context.Background(), oracleTranscript)
			require.NoError(t, err)
			require.Equal(t, tt.want, waiting)
		})
	}
}

func TestOraclePromptContainsTranscript(t *testing.T) {
	gw := chat.NewScriptedGateway()
	gw.Queue("oracle-model", "DONE")

	oracle := NewOracle(gw, "oracle-model")
	_, err := oracle.NeedsUserInput(context.Background(), oracleTranscript)
	require.NoError(t, err)

	reqs := gw.Requests()
	require.Len(t, reqs, 1)
	require.Contains(t, reqs[0].Messages[0].Content, "USER: Write me a haiku")
	require.Contains(t, reqs[0].Messages[0].Content, "ASSISTANT: What season should it evoke?")
	// The template placeholder must not leak through.
	require.NotContains(t, reqs[0].Messages[0].Content, "{transcript_text}")
}

func TestOracleTransportErrorPropagates(t *testing.T) {
	gw := chat.NewScriptedGateway()
	gw.Err = errors.New("rate limited")

	oracle := NewOracle(gw, "oracle-model")
	_, err := oracle.NeedsUserInput(context.Background(), oracleTranscript)
	require.ErrorContains(t, err, "rate limited")
}
