// Package artifact loads the prompt/skill text being evaluated and builds
// the system instructions handed to the artifact-under-test.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Artifact is the optimized prompt/skill under evaluation, read once per
// run and treated as immutable.
type Artifact struct {
	Path    string
	Content string

	// Title is the first markdown heading, used as a display name in
	// logs and reports. Falls back to the file's base name.
	Title string
}

// Load reads the artifact file.
func Load(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading artifact: %w", err)
	}

	content := string(data)
	title := firstHeading(data)
	if title == "" {
		title = filepath.Base(path)
	}

	return &Artifact{Path: path, Content: content, Title: title}, nil
}

// BuildSystemPrompt returns the artifact content with any reference
// documents appended. References are *.md files from referencesDir, sorted
// by name; a missing or empty directory contributes nothing.
func (a *Artifact) BuildSystemPrompt(referencesDir string) (string, error) {
	system := a.Content

	if referencesDir == "" {
		return system, nil
	}

	matches, err := filepath.Glob(filepath.Join(referencesDir, "*.md"))
	if err != nil {
		return "", fmt.Errorf("globbing references: %w", err)
	}
	if len(matches) == 0 {
		return system, nil
	}
	sort.Strings(matches)

	var sb strings.Builder
	sb.WriteString(system)
	sb.WriteString("\n\n# References")
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading reference %s: %w", path, err)
		}
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		fmt.Fprintf(&sb, "\n\n---\n## Reference: %s\n\n%s", stem, string(data))
	}

	return sb.String(), nil
}

// firstHeading parses markdown and returns the text of the first heading.
func firstHeading(source []byte) string {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			var sb strings.Builder
			for c := h.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					sb.Write(t.Segment.Value(source))
				}
			}
			title = strings.TrimSpace(sb.String())
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})

	return title
}
