package models

import (
	"fmt"
	"strings"
)

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single utterance in a conversation.
type Message struct {
	Role    Role   `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

// Transcript is the ordered message history of one scenario's conversation.
// Roles alternate strictly, starting with user.
type Transcript []Message

// Format renders the transcript as role-labeled text, the form consumed by
// the oracle, simulator, and judge prompts.
func (t Transcript) Format() string {
	parts := make([]string, 0, len(t))
	for _, msg := range t {
		parts = append(parts, fmt.Sprintf("%s: %s", strings.ToUpper(string(msg.Role)), msg.Content))
	}
	return strings.Join(parts, "\n\n")
}

// Alternates reports whether the transcript starts with a user message and
// strictly alternates user/assistant thereafter.
func (t Transcript) Alternates() bool {
	for i, msg := range t {
		want := RoleUser
		if i%2 == 1 {
			want = RoleAssistant
		}
		if msg.Role != want {
			return false
		}
	}
	return true
}

// ConversationResult is the outcome of driving one scenario to completion.
type ConversationResult struct {
	Transcript Transcript `json:"transcript"`

	// Turns is the number of assistant replies produced.
	Turns int `json:"turns"`

	// BudgetExhausted records that the turn budget ran out before the
	// termination oracle reported the conversation done. Not an error.
	BudgetExhausted bool `json:"budget_exhausted"`
}
