package grading

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{
			name:  "bare object",
			input: `{"a": 1}`,
			want:  `{"a": 1}`,
			ok:    true,
		},
		{
			name:  "json fence",
			input: "prose\n```json\n{\"a\": 1}\n```\nmore prose",
			want:  `{"a": 1}`,
			ok:    true,
		},
		{
			name:  "untagged fence",
			input: "```\n{\"a\": 1}\n```",
			want:  `{"a": 1}`,
			ok:    true,
		},
		{
			name:  "embedded in prose",
			input: `the result is {"a": {"b": 2}} according to my analysis`,
			want:  `{"a": {"b": 2}}`,
			ok:    true,
		},
		{
			name:  "braces inside strings",
			input: `{"text": "a { tricky } value"}`,
			want:  `{"text": "a { tricky } value"}`,
			ok:    true,
		},
		{
			name:  "escaped quotes",
			input: `{"text": "she said \"hi\""}`,
			want:  `{"text": "she said \"hi\""}`,
			ok:    true,
		},
		{
			name:  "no json",
			input: "just some prose",
			ok:    false,
		},
		{
			name:  "unbalanced",
			input: `{"a": 1`,
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSONObject(tt.input)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestExtractJSONObjectPrefersFencedBlock(t *testing.T) {
	// A fenced block wins over an earlier inline object.
	input := "ignore {\"wrong\": true} this\n```json\n{\"right\": true}\n```"
	got, ok := extractJSONObject(input)
	require.True(t, ok)
	require.JSONEq(t, `{"right": true}`, got)
}
