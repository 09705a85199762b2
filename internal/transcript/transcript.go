package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/keiko-dev/keiko/internal/models"
)

// timestampLayout matches the filename and record timestamp format.
const timestampLayout = "20060102_150405"

// Record is the per-scenario JSON file written for inspection. Files are
// write-once: no versioning or update path.
type Record struct {
	Scenario   string            `json:"scenario"`
	Score      int               `json:"score"`
	Timestamp  string            `json:"timestamp"`
	Transcript models.Transcript `json:"transcript"`
}

// sanitize replaces characters that are unsafe in filenames.
var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

func sanitizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "-")
	s = unsafeChars.ReplaceAllString(s, "")
	if s == "" {
		s = "unnamed"
	}
	return s
}

// Filename returns the transcript filename for a scenario: timestamp,
// sanitized scenario name, and score.
func Filename(scenarioName string, score int, ts time.Time) string {
	return fmt.Sprintf("%s_%s_score%d.json", ts.Format(timestampLayout), sanitizeName(scenarioName), score)
}

// Write serializes a scenario transcript and writes it to dir, returning
// the filename.
func Write(dir, scenarioName string, score int, t models.Transcript, ts time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create transcript dir: %w", err)
	}

	record := Record{
		Scenario:   scenarioName,
		Score:      score,
		Timestamp:  ts.Format(timestampLayout),
		Transcript: t,
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal transcript: %w", err)
	}

	name := Filename(scenarioName, score, ts)
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}

	return name, nil
}
