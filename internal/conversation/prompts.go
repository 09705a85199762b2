package conversation

import "strings"

// Prompt templates with named substitution points. Any text value is legal;
// the model's free-text reply is interpreted by the caller.

const oraclePromptTemplate = `Analyze this conversation between a user and an AI assistant.

Determine if the assistant is:
1. WAITING for user input (asked a question, requested confirmation, needs information)
2. DONE (task complete, or assistant is working autonomously without needing input)

Conversation:
{transcript_text}

Reply with exactly one word: WAITING or DONE`

const simulatorPromptTemplate = `You are simulating a user interacting with an AI assistant.

Instructions for how to behave:
{instructions}

The conversation so far:
{transcript_text}

Generate the next user response. Be concise and natural. Output ONLY the response, nothing else.`

// fill substitutes {name} placeholders in a template.
func fill(template string, vars map[string]string) string {
	out := template
	for name, value := range vars {
		out = strings.ReplaceAll(out, "{"+name+"}", value)
	}
	return out
}
