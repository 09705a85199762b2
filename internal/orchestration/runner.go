// Package orchestration runs every configured scenario through the
// conversation driver and transcript grader and aggregates a single metric.
package orchestration

import (
	"context"
	"log/slog"
	"time"

	"github.com/keiko-dev/keiko/internal/models"
	"github.com/keiko-dev/keiko/internal/transcript"
	"golang.org/x/sync/errgroup"
)

// PunitiveScore is substituted when a scenario fails outright. One bad
// scenario must not invalidate the entire evaluation run.
const PunitiveScore = 1

// ConversationRunner drives one scenario to a finished transcript.
type ConversationRunner interface {
	Run(ctx context.Context, scenario *models.Scenario) (*models.ConversationResult, error)
}

// TranscriptGrader scores a finished transcript against expected behaviors.
type TranscriptGrader interface {
	Grade(ctx context.Context, t models.Transcript, expectedBehaviors []string) (*models.Judgment, error)
}

// ScenarioOutcome records how one scenario fared.
type ScenarioOutcome struct {
	Scenario        string           `json:"scenario"`
	Score           int              `json:"score"`
	Turns           int              `json:"turns"`
	BudgetExhausted bool             `json:"budget_exhausted,omitempty"`
	TranscriptFile  string           `json:"transcript_file,omitempty"`
	Judgment        *models.Judgment `json:"judgment,omitempty"`
	ErrorMsg        string           `json:"error_msg,omitempty"`
}

// Outcome is the aggregate result of a full evaluation run.
type Outcome struct {
	Metric    string            `json:"metric"`
	Mean      float64           `json:"mean"`
	Scenarios []ScenarioOutcome `json:"scenarios"`
	Failures  int               `json:"failures"`
}

// Runner iterates scenarios, invoking the driver and grader, and owns the
// aggregate score exclusively. No other component mutates it.
type Runner struct {
	scenarios     []models.Scenario
	metric        string
	driver        ConversationRunner
	grader        TranscriptGrader
	transcriptDir string
	workers       int
	now           func() time.Time
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithTranscriptDir enables per-scenario transcript persistence.
func WithTranscriptDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.transcriptDir = dir
	}
}

// WithWorkers enables scenario-level concurrency. Turns within one
// scenario always run sequentially regardless.
func WithWorkers(n int) RunnerOption {
	return func(r *Runner) {
		r.workers = n
	}
}

// WithClock overrides the timestamp source, for tests.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) {
		r.now = now
	}
}

// NewRunner creates a scenario runner.
func NewRunner(metric string, scenarios []models.Scenario, driver ConversationRunner, grader TranscriptGrader, opts ...RunnerOption) *Runner {
	r := &Runner{
		scenarios: scenarios,
		metric:    metric,
		driver:    driver,
		grader:    grader,
		workers:   1,
		now:       time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run processes every scenario. Scenario failures are contained: they score
// PunitiveScore and the run continues. The returned mean is 0 when no
// scenarios were processed.
func (r *Runner) Run(ctx context.Context) *Outcome {
	outcomes := make([]ScenarioOutcome, len(r.scenarios))

	if r.workers > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.workers)
		for i := range r.scenarios {
			g.Go(func() error {
				outcomes[i] = r.runScenario(gctx, &r.scenarios[i], i)
				return nil
			})
		}
		// Workers never return errors; failures land in their outcome.
		_ = g.Wait()
	} else {
		for i := range r.scenarios {
			outcomes[i] = r.runScenario(ctx, &r.scenarios[i], i)
		}
	}

	total := 0
	failures := 0
	for _, o := range outcomes {
		total += o.Score
		if o.ErrorMsg != "" {
			failures++
		}
	}

	mean := 0.0
	if len(outcomes) > 0 {
		mean = float64(total) / float64(len(outcomes))
	}

	return &Outcome{
		Metric:    r.metric,
		Mean:      mean,
		Scenarios: outcomes,
		Failures:  failures,
	}
}

// runScenario drives, grades, and persists one scenario. Any error is
// absorbed here into a punitive outcome.
func (r *Runner) runScenario(ctx context.Context, scenario *models.Scenario, index int) ScenarioOutcome {
	slog.Info("running scenario", "scenario", scenario.Name, "num", index+1, "total", len(r.scenarios))

	result, err := r.driver.Run(ctx, scenario)
	if err != nil {
		slog.Error("scenario conversation failed", "scenario", scenario.Name, "error", err)
		return ScenarioOutcome{Scenario: scenario.Name, Score: PunitiveScore, ErrorMsg: err.Error()}
	}

	judgment, err := r.grader.Grade(ctx, result.Transcript, scenario.ExpectedBehaviors)
	if err != nil {
		slog.Error("scenario grading failed", "scenario", scenario.Name, "error", err)
		return ScenarioOutcome{Scenario: scenario.Name, Score: PunitiveScore, ErrorMsg: err.Error()}
	}

	outcome := ScenarioOutcome{
		Scenario:        scenario.Name,
		Score:           judgment.Overall,
		Turns:           result.Turns,
		BudgetExhausted: result.BudgetExhausted,
		Judgment:        judgment,
	}

	if r.transcriptDir != "" {
		filename, err := transcript.Write(r.transcriptDir, scenario.Name, judgment.Overall, result.Transcript, r.now())
		if err != nil {
			slog.Error("scenario transcript write failed", "scenario", scenario.Name, "error", err)
			return ScenarioOutcome{Scenario: scenario.Name, Score: PunitiveScore, ErrorMsg: err.Error()}
		}
		outcome.TranscriptFile = filename
	}

	slog.Info("scenario complete", "scenario", scenario.Name, "score", outcome.Score, "turns", outcome.Turns)
	return outcome
}
