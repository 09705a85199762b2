package grading

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseJudgmentJSON(t *testing.T) {
	reply := `{
		"reasoning": "all behaviors present",
		"behavior_results": [
			{"behavior": "asks about tone", "present": true, "evidence": "What tone?"}
		],
		"overall": 4
	}`

	j := ParseJudgment(reply)
	require.Equal(t, 4, j.Overall)
	require.Equal(t, "all behaviors present", j.Reasoning)
	require.Len(t, j.BehaviorResults, 1)
	require.True(t, j.BehaviorResults[0].Present)
	require.Equal(t, "What tone?", j.BehaviorResults[0].Evidence)
}

func TestParseJudgmentFencedJSON(t *testing.T) {
	reply := "Here is my analysis:\n```json\n{\"reasoning\": \"ok\", \"overall\": 5}\n```\nHope that helps!"

	j := ParseJudgment(reply)
	require.Equal(t, 5, j.Overall)
	require.Equal(t, "ok", j.Reasoning)
}

func TestParseJudgmentEmbeddedJSON(t *testing.T) {
	reply := `After careful review I conclude {"overall": 2, "reasoning": "missing behaviors"} as stated.`

	j := ParseJudgment(reply)
	require.Equal(t, 2, j.Overall)
}

func TestParseJudgmentFloatOverall(t *testing.T) {
	// Judges sometimes emit 4.0; the weakly typed decode accepts it.
	j := ParseJudgment(`{"overall": 4.0, "reasoning": "fine"}`)
	require.Equal(t, 4, j.Overall)
}

func TestParseJudgmentScoreLineFallback(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  int
	}{
		{"plain score line", "The skill handled the request well.\nSCORE: 2", 2},
		{"score line with whitespace", "analysis...\n  SCORE:  5  \ntrailing prose", 5},
		{"last score line wins", "SCORE: 1\nrevised:\nSCORE: 4", 4},
		{"json without overall falls through to score line", `{"reasoning": "hmm"}` + "\nSCORE: 3", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := ParseJudgment(tt.reply)
			require.Equal(t, tt.want, j.Overall)
		})
	}
}

func TestParseJudgmentNeutralFallback(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"prose only", "I think this conversation went quite well overall."},
		{"empty", ""},
		{"malformed score line", "SCORE: five"},
		{"broken json", `{"overall": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := ParseJudgment(tt.reply)
			require.Equal(t, NeutralScore, j.Overall)
			require.NotEmpty(t, j.Reasoning)
		})
	}
}

func TestParseJudgmentOutOfRangePassesThrough(t *testing.T) {
	// Out-of-range scores are surfaced as-is; the judge prompt bounds the
	// scale and downstream consumers see what the judge actually said.
	j := ParseJudgment(`{"overall": 7}`)
	require.Equal(t, 7, j.Overall)

	j = ParseJudgment("SCORE: 0")
	require.Equal(t, 0, j.Overall)
}
