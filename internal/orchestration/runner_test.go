package orchestration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/keiko-dev/keiko/internal/models"
	"github.com/stretchr/testify/require"
)

// stubDriver returns canned results keyed by scenario name.
type stubDriver struct {
	results map[string]*models.ConversationResult
	errs    map[string]error
}

func (d *stubDriver) Run(_ context.Context, scenario *models.Scenario) (*models.ConversationResult, error) {
	if err := d.errs[scenario.Name]; err != nil {
		return nil, err
	}
	if r, ok := d.results[scenario.Name]; ok {
		return r, nil
	}
	return &models.ConversationResult{
		Transcript: models.Transcript{
			{Role: models.RoleUser, Content: "hi"},
			{Role: models.RoleAssistant, Content: "hello"},
		},
		Turns: 1,
	}, nil
}

// stubGrader scores everything 4, or fails every call when err is set.
type stubGrader struct {
	err error
}

func (g *stubGrader) Grade(_ context.Context, _ models.Transcript, _ []string) (*models.Judgment, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &models.Judgment{Overall: 4}, nil
}

type scoreByOrderGrader struct {
	scores []int
	idx    int
}

func (g *scoreByOrderGrader) Grade(_ context.Context, _ models.Transcript, _ []string) (*models.Judgment, error) {
	score := g.scores[g.idx]
	g.idx++
	return &models.Judgment{Overall: score}, nil
}

func scenarios(names ...string) []models.Scenario {
	out := make([]models.Scenario, 0, len(names))
	for _, n := range names {
		out = append(out, models.Scenario{
			Name:              n,
			InitialMessage:    "go",
			ExpectedBehaviors: []string{"works"},
		})
	}
	return out
}

func TestRunnerMean(t *testing.T) {
	runner := NewRunner("skill_quality", scenarios("s1", "s2", "s3"),
		&stubDriver{},
		&scoreByOrderGrader{scores: []int{5, 4, 3}},
	)

	outcome := runner.Run(context.Background())
	require.Equal(t, "skill_quality", outcome.Metric)
	require.InDelta(t, 4.0, outcome.Mean, 1e-9)
	require.Len(t, outcome.Scenarios, 3)
	require.Zero(t, outcome.Failures)
}

func TestRunnerFailedScenarioIsPunitive(t *testing.T) {
	driver := &stubDriver{
		errs: map[string]error{"s2": errors.New("api exploded")},
	}
	runner := NewRunner("q", scenarios("s1", "s2", "s3"), driver, &stubGrader{})

	outcome := runner.Run(context.Background())

	// s1 and s3 score 4; s2 takes the punitive score and the run continues.
	require.InDelta(t, float64(4+PunitiveScore+4)/3, outcome.Mean, 1e-9)
	require.Equal(t, 1, outcome.Failures)
	require.Equal(t, PunitiveScore, outcome.Scenarios[1].Score)
	require.Contains(t, outcome.Scenarios[1].ErrorMsg, "api exploded")
	require.Empty(t, outcome.Scenarios[0].ErrorMsg)
}

func TestRunnerGradingFailureIsPunitive(t *testing.T) {
	runner := NewRunner("q", scenarios("s1"), &stubDriver{}, &stubGrader{err: errors.New("judge down")})

	outcome := runner.Run(context.Background())
	require.Equal(t, float64(PunitiveScore), outcome.Mean)
	require.Equal(t, 1, outcome.Failures)
}

func TestRunnerEmptyScenarios(t *testing.T) {
	runner := NewRunner("q", nil, &stubDriver{}, &stubGrader{})

	outcome := runner.Run(context.Background())
	require.Zero(t, outcome.Mean)
	require.Empty(t, outcome.Scenarios)
}

func TestRunnerWritesTranscripts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "transcripts")
	fixed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	runner := NewRunner("q", scenarios("saved"), &stubDriver{}, &stubGrader{},
		WithTranscriptDir(dir),
		WithClock(func() time.Time { return fixed }),
	)

	outcome := runner.Run(context.Background())
	require.Equal(t, "20260830_120000_saved_score4.json", outcome.Scenarios[0].TranscriptFile)

	_, err := os.Stat(filepath.Join(dir, outcome.Scenarios[0].TranscriptFile))
	require.NoError(t, err)
}

func TestRunnerTranscriptWriteFailureIsPunitive(t *testing.T) {
	// A file where the transcript dir should be makes MkdirAll fail.
	blocker := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	runner := NewRunner("q", scenarios("s1"), &stubDriver{}, &stubGrader{},
		WithTranscriptDir(blocker),
	)

	outcome := runner.Run(context.Background())
	require.Equal(t, PunitiveScore, outcome.Scenarios[0].Score)
	require.Equal(t, 1, outcome.Failures)
}

func TestRunnerParallelMatchesSequential(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e"}

	sequential := NewRunner("q", scenarios(names...), &stubDriver{}, &stubGrader{})
	parallel := NewRunner("q", scenarios(names...), &stubDriver{}, &stubGrader{}, WithWorkers(3))

	seqOut := sequential.Run(context.Background())
	parOut := parallel.Run(context.Background())

	require.Equal(t, seqOut.Mean, parOut.Mean)
	require.Len(t, parOut.Scenarios, len(names))

	// Outcome order follows scenario order regardless of worker scheduling.
	for i, name := range names {
		require.Equal(t, name, parOut.Scenarios[i].Scenario)
	}
}
