package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/keiko-dev/keiko/internal/artifact"
	"github.com/keiko-dev/keiko/internal/chat"
	"github.com/keiko-dev/keiko/internal/conversation"
	"github.com/keiko-dev/keiko/internal/grading"
	"github.com/keiko-dev/keiko/internal/models"
	"github.com/keiko-dev/keiko/internal/orchestration"
	"github.com/keiko-dev/keiko/internal/projectconfig"
	"github.com/keiko-dev/keiko/internal/validation"
	"github.com/spf13/cobra"
)

var (
	runTranscriptDir  string
	runParallel       bool
	runWorkers        int
	runMaxTurns       int
	runSkipValidation bool
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <eval.yaml>",
		Short: "Run an evaluation and emit its metric",
		Long: `Run every scenario in an eval spec through the conversation harness,
grade the transcripts, and emit the aggregate metric on stdout as:

    <metric_name>: <value>

Transcripts are saved per scenario for inspection.`,
		Args: cobra.ExactArgs(1),
		RunE: runCommandE,
	}

	cmd.Flags().StringVar(&runTranscriptDir, "transcript-dir", "", "Directory for per-scenario transcript JSON files (overrides spec)")
	cmd.Flags().BoolVar(&runParallel, "parallel", false, "Run scenarios concurrently")
	cmd.Flags().IntVar(&runWorkers, "workers", 0, "Number of concurrent workers (requires --parallel)")
	cmd.Flags().IntVar(&runMaxTurns, "max-turns", 0, "Turn budget per scenario (overrides spec)")
	cmd.Flags().BoolVar(&runSkipValidation, "skip-validation", false, "Skip the model availability preflight")

	return cmd
}

func runCommandE(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	specPath := args[0]

	projCfg, err := projectconfig.Load(filepath.Dir(specPath))
	if err != nil {
		return err
	}

	spec, err := loadSpec(specPath, projCfg)
	if err != nil {
		// Emit the sentinel when the spec parsed far enough to name its
		// metric; the optimizer reads a zero rather than nothing.
		if spec != nil && spec.Metric != "" {
			emitMetric(cmd.OutOrStdout(), spec.Metric, 0.0)
		}
		return err
	}

	// Once the metric name is known, the optimizer still expects a metric
	// line even when setup fails; emit the sentinel before failing.
	fail := func(err error) error {
		emitMetric(cmd.OutOrStdout(), spec.Metric, 0.0)
		return err
	}

	gateway, err := chat.New(spec.Provider, chat.Options{})
	if err != nil {
		return fail(err)
	}

	if !runSkipValidation {
		if err := validation.ValidateModels(ctx, gateway, spec.Models.All()); err != nil {
			return fail(err)
		}
	}

	specDir := filepath.Dir(specPath)
	art, err := artifact.Load(resolvePath(specDir, spec.ArtifactPath))
	if err != nil {
		return fail(err)
	}

	referencesDir := ""
	if spec.ReferencesDir != "" {
		referencesDir = resolvePath(specDir, spec.ReferencesDir)
	}
	systemPrompt, err := art.BuildSystemPrompt(referencesDir)
	if err != nil {
		return fail(err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Evaluating %q (%d scenarios)\n", art.Title, len(spec.Scenarios))

	driver := conversation.NewDriver(
		gateway,
		conversation.NewOracle(gateway, spec.Models.Oracle),
		conversation.NewSimulator(gateway, spec.Models.Simulator),
		spec.Models.Artifact,
		systemPrompt,
		spec.MaxTurns,
	)
	grader := grading.NewGrader(gateway, spec.Models.Judge)

	opts := []orchestration.RunnerOption{}
	if dir := transcriptDir(specDir, spec); dir != "" {
		opts = append(opts, orchestration.WithTranscriptDir(dir))
	}
	parallel := runParallel
	if !parallel && projCfg.Defaults.Parallel != nil {
		parallel = *projCfg.Defaults.Parallel
	}
	if parallel {
		workers := runWorkers
		if workers <= 0 {
			workers = projCfg.Defaults.Workers
		}
		opts = append(opts, orchestration.WithWorkers(workers))
	}

	runner := orchestration.NewRunner(spec.Metric, spec.Scenarios, driver, grader, opts...)
	outcome := runner.Run(ctx)

	printSummary(cmd.ErrOrStderr(), outcome)
	emitMetric(cmd.OutOrStdout(), outcome.Metric, outcome.Mean)

	return nil
}

// loadSpec parses the eval spec, fills unset fields from project config
// defaults, then runs schema and semantic validation. On a validation
// failure the parsed spec is still returned so the caller can name the
// metric in its sentinel output.
func loadSpec(specPath string, projCfg *projectconfig.ProjectConfig) (*models.EvalSpec, error) {
	spec, err := models.ParseEvalSpec(specPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load eval spec: %w", err)
	}

	applyProjectDefaults(spec, projCfg)

	if runMaxTurns > 0 {
		spec.MaxTurns = runMaxTurns
	}

	validationErrs, err := validation.ValidateEvalFile(specPath)
	if err != nil {
		return spec, err
	}
	if len(validationErrs) > 0 {
		return spec, fmt.Errorf("eval spec %s is invalid:\n  %s", specPath, strings.Join(validationErrs, "\n  "))
	}

	if err := spec.Validate(); err != nil {
		return spec, err
	}

	return spec, nil
}

func applyProjectDefaults(spec *models.EvalSpec, projCfg *projectconfig.ProjectConfig) {
	if spec.Metric == "" {
		spec.Metric = projCfg.Defaults.Metric
	}
	if spec.Provider == "" {
		spec.Provider = projCfg.Defaults.Provider
	}
	if spec.MaxTurns == 0 {
		spec.MaxTurns = projCfg.Defaults.MaxTurns
	}
	if spec.Models.Artifact == "" {
		spec.Models.Artifact = projCfg.Models.Artifact
	}
	if spec.Models.Simulator == "" {
		spec.Models.Simulator = projCfg.Models.Simulator
	}
	if spec.Models.Oracle == "" {
		spec.Models.Oracle = projCfg.Models.Oracle
	}
	if spec.Models.Judge == "" {
		spec.Models.Judge = projCfg.Models.Judge
	}
	if spec.TranscriptDir == "" {
		spec.TranscriptDir = projCfg.Paths.Transcripts
	}
}

// transcriptDir resolves the transcript directory, with the CLI flag
// taking precedence over the spec.
func transcriptDir(specDir string, spec *models.EvalSpec) string {
	if runTranscriptDir != "" {
		return runTranscriptDir
	}
	if spec.TranscriptDir != "" {
		return resolvePath(specDir, spec.TranscriptDir)
	}
	return ""
}

func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
