package transcript

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/keiko-dev/keiko/internal/models"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 8, 30, 14, 5, 9, 0, time.UTC)

func TestFilename(t *testing.T) {
	tests := []struct {
		name         string
		scenarioName string
		score        int
		want         string
	}{
		{"simple", "basic-request", 4, "20260830_140509_basic-request_score4.json"},
		{"spaces become dashes", "Basic Request", 5, "20260830_140509_basic-request_score5.json"},
		{"unsafe chars stripped", "edge/case: #1!", 2, "20260830_140509_edgecase-1_score2.json"},
		{"empty name", "///", 1, "20260830_140509_unnamed_score1.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Filename(tt.scenarioName, tt.score, testTime))
		})
	}
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "transcripts")

	tr := models.Transcript{
		{Role: models.RoleUser, Content: "hello"},
		{Role: models.RoleAssistant, Content: "hi there"},
	}

	name, err := Write(dir, "My Scenario", 4, tr, testTime)
	require.NoError(t, err)
	require.Equal(t, "20260830_140509_my-scenario_score4.json", name)

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)

	var record Record
	require.NoError(t, json.Unmarshal(data, &record))
	require.Equal(t, "My Scenario", record.Scenario)
	require.Equal(t, 4, record.Score)
	require.Equal(t, "20260830_140509", record.Timestamp)
	require.Equal(t, tr, record.Transcript)
}
