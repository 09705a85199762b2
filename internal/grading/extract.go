package grading

import (
	"encoding/json"
	"regexp"
	"strings"
)

// codeBlockPattern matches markdown code blocks with an optional language tag.
var codeBlockPattern = regexp.MustCompile("(?s)```(\\w*)\\s*\\n(.+?)\\n```")

// extractJSONObject pulls a JSON object out of a judge reply that may wrap
// it in markdown fences or surrounding prose. Fenced blocks are preferred;
// otherwise the first balanced {...} in the text is used.
func extractJSONObject(reply string) (string, bool) {
	for _, match := range codeBlockPattern.FindAllStringSubmatch(reply, -1) {
		lang := strings.ToLower(match[1])
		if lang != "" && lang != "json" {
			continue
		}
		content := strings.TrimSpace(match[2])
		if strings.HasPrefix(content, "{") && isValidJSON(content) {
			return content, true
		}
	}

	start := strings.Index(reply, "{")
	if start < 0 {
		return "", false
	}
	candidate := balancedObject(reply[start:])
	if candidate != "" && isValidJSON(candidate) {
		return candidate, true
	}

	return "", false
}

// balancedObject returns the prefix of s that forms a brace-balanced JSON
// object, accounting for strings and escapes. Empty when unbalanced.
func balancedObject(s string) string {
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}

	return ""
}

func isValidJSON(s string) bool {
	var js json.RawMessage
	return json.Unmarshal([]byte(s), &js) == nil
}
