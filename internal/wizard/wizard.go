// Package wizard collects eval scaffolding input interactively.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/charmbracelet/huh"
	"github.com/keiko-dev/keiko/internal/chat"
	"github.com/keiko-dev/keiko/internal/projectconfig"
	"golang.org/x/term"
)

// EvalScaffold holds all fields collected during the interactive wizard.
type EvalScaffold struct {
	Name          string
	Metric        string
	Provider      string
	ArtifactPath  string
	ArtifactModel string
	JudgeModel    string
}

const evalYAMLTemplate = `name: {{ .Name }}
metric: {{ .Metric }}
provider: {{ .Provider }}

models:
  artifact: {{ .ArtifactModel }}
  simulator: {{ .SimulatorModel }}
  oracle: {{ .OracleModel }}
  judge: {{ .JudgeModel }}

max_turns: {{ .MaxTurns }}
artifact: {{ .ArtifactPath }}
transcript_dir: transcripts/

# Cover: happy path, edge cases, clarification needed, constraint tests.
scenarios:
  - name: example-scenario
    initial_message: Replace with an actual user request
    user_simulator_instructions: |
      - When asked for a preference, pick the simplest option
      - Approve reasonable suggestions
    expected_behaviors:
      - Replace with expected behavior 1
      - Replace with expected behavior 2
`

// Run collects eval metadata via a huh form. Defaults come from the
// project config.
func Run(in io.Reader, out io.Writer, cfg *projectconfig.ProjectConfig) (*EvalScaffold, error) {
	scaffold := &EvalScaffold{
		Metric:        cfg.Defaults.Metric,
		Provider:      cfg.Defaults.Provider,
		ArtifactModel: cfg.Models.Artifact,
		JudgeModel:    cfg.Models.Judge,
		ArtifactPath:  "optimize.md",
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Eval name").
				Description("A kebab-case name for this evaluation").
				Placeholder("my-skill-eval").
				Value(&scaffold.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Metric name").
				Description("The metric line emitted for the optimizer").
				Value(&scaffold.Metric),
			huh.NewSelect[string]().
				Title("Provider").
				Options(
					huh.NewOption("anthropic", chat.ProviderAnthropic),
					huh.NewOption("openai", chat.ProviderOpenAI),
				).
				Value(&scaffold.Provider),
			huh.NewInput().
				Title("Artifact path").
				Description("The prompt/skill file being optimized").
				Value(&scaffold.ArtifactPath),
			huh.NewInput().
				Title("Artifact model").
				Description("Model that runs the artifact under test").
				Value(&scaffold.ArtifactModel),
			huh.NewInput().
				Title("Judge model").
				Description("Model that grades transcripts (use a capable model)").
				Value(&scaffold.JudgeModel),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	scaffold.Name = strings.TrimSpace(scaffold.Name)
	return scaffold, nil
}

const projectYAMLTemplate = `# Project-wide defaults, discovered by walking up from the eval spec.
defaults:
  provider: {{ .Defaults.Provider }}
  metric: {{ .Defaults.Metric }}
  max_turns: {{ .Defaults.MaxTurns }}
  workers: {{ .Defaults.Workers }}

models:
  artifact: {{ .Models.Artifact }}
  simulator: {{ .Models.Simulator }}
  oracle: {{ .Models.Oracle }}
  judge: {{ .Models.Judge }}

paths:
  transcripts: {{ .Paths.Transcripts }}
`

// GenerateProjectYAML renders a .keiko.yaml with the given config values
// spelled out.
func GenerateProjectYAML(cfg *projectconfig.ProjectConfig) (string, error) {
	tmpl, err := template.New("project").Parse(projectYAMLTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, cfg); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}

// GenerateEvalYAML renders an eval spec template from the scaffold.
func GenerateEvalYAML(scaffold *EvalScaffold, cfg *projectconfig.ProjectConfig) (string, error) {
	tmpl, err := template.New("eval").Parse(evalYAMLTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	data := struct {
		*EvalScaffold
		SimulatorModel string
		OracleModel    string
		MaxTurns       int
	}{
		EvalScaffold:   scaffold,
		SimulatorModel: cfg.Models.Simulator,
		OracleModel:    cfg.Models.Oracle,
		MaxTurns:       cfg.Defaults.MaxTurns,
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}
