package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a single named test case: an initial request, optional
// attached context files, instructions for the simulated user, and the
// rubric of behaviors the artifact is expected to exhibit. Scenarios are
// read once and treated as read-only for the duration of a run.
type Scenario struct {
	Name           string `yaml:"name" json:"name"`
	InitialMessage string `yaml:"initial_message" json:"initial_message"`

	// ContextFiles maps filename → content; inserted verbatim before the
	// initial message in the first user turn, sorted by name.
	ContextFiles map[string]string `yaml:"context_files,omitempty" json:"context_files,omitempty"`

	// SimulatorInstructions tells the user simulator how to behave. When
	// empty the scenario runs single-shot: one turn, no simulated user.
	SimulatorInstructions string `yaml:"user_simulator_instructions,omitempty" json:"user_simulator_instructions,omitempty"`

	ExpectedBehaviors []string `yaml:"expected_behaviors" json:"expected_behaviors"`
}

// Validate checks the scenario has the fields the driver and grader need.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario is missing a name")
	}
	if s.InitialMessage == "" {
		return fmt.Errorf("scenario %q is missing initial_message", s.Name)
	}
	if len(s.ExpectedBehaviors) == 0 {
		return fmt.Errorf("scenario %q has no expected_behaviors", s.Name)
	}
	return nil
}

// ModelRoles assigns a model id to each role the harness plays.
type ModelRoles struct {
	// Artifact runs the artifact-under-test.
	Artifact string `yaml:"artifact" json:"artifact"`
	// Simulator generates synthetic user turns. A cheaper model is fine.
	Simulator string `yaml:"simulator,omitempty" json:"simulator,omitempty"`
	// Oracle decides whether the assistant is waiting on the user.
	Oracle string `yaml:"oracle,omitempty" json:"oracle,omitempty"`
	// Judge grades finished transcripts.
	Judge string `yaml:"judge" json:"judge"`
}

// All returns the distinct model ids across all roles.
func (m ModelRoles) All() []string {
	seen := map[string]bool{}
	var out []string
	for _, id := range []string{m.Artifact, m.Simulator, m.Oracle, m.Judge} {
		if id != "" && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// EvalSpec is a complete evaluation specification loaded from YAML.
type EvalSpec struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Metric is the name emitted in the final `<metric>: <value>` line.
	Metric string `yaml:"metric" json:"metric"`

	// Provider selects the chat backend: "anthropic" or "openai".
	Provider string `yaml:"provider" json:"provider"`

	Models   ModelRoles `yaml:"models" json:"models"`
	MaxTurns int        `yaml:"max_turns,omitempty" json:"max_turns,omitempty"`

	// ArtifactPath points at the prompt/skill text being optimized,
	// resolved relative to the spec file.
	ArtifactPath string `yaml:"artifact" json:"artifact"`

	// ReferencesDir optionally holds *.md files appended to the system
	// prompt alongside the artifact.
	ReferencesDir string `yaml:"references_dir,omitempty" json:"references_dir,omitempty"`

	// TranscriptDir is where per-scenario transcript records are written.
	TranscriptDir string `yaml:"transcript_dir,omitempty" json:"transcript_dir,omitempty"`

	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}

// ParseEvalSpec reads an eval spec from a YAML file without validating it.
// Callers that overlay defaults should validate after the overlay.
func ParseEvalSpec(path string) (*EvalSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading eval spec: %w", err)
	}

	var spec EvalSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing eval spec: %w", err)
	}

	return &spec, nil
}

// LoadEvalSpec loads and validates an eval spec from a YAML file.
func LoadEvalSpec(path string) (*EvalSpec, error) {
	spec, err := ParseEvalSpec(path)
	if err != nil {
		return nil, err
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}

	return spec, nil
}

// Validate checks that the spec can actually drive an evaluation. An empty
// scenario list is a configuration failure, not an empty result.
func (s *EvalSpec) Validate() error {
	if s.Metric == "" {
		return fmt.Errorf("eval spec is missing metric name")
	}
	if s.Provider == "" {
		return fmt.Errorf("eval spec is missing provider")
	}
	if s.Models.Artifact == "" {
		return fmt.Errorf("eval spec is missing models.artifact")
	}
	if s.Models.Judge == "" {
		return fmt.Errorf("eval spec is missing models.judge")
	}
	if s.ArtifactPath == "" {
		return fmt.Errorf("eval spec is missing artifact path")
	}
	if len(s.Scenarios) == 0 {
		return fmt.Errorf("eval spec has no scenarios configured")
	}
	if s.MaxTurns < 0 {
		return fmt.Errorf("max_turns must be non-negative, got %d", s.MaxTurns)
	}

	for i := range s.Scenarios {
		if err := s.Scenarios[i].Validate(); err != nil {
			return err
		}
		if s.Scenarios[i].SimulatorInstructions != "" {
			if s.Models.Simulator == "" {
				return fmt.Errorf("scenario %q needs a user simulator but models.simulator is not set", s.Scenarios[i].Name)
			}
			if s.Models.Oracle == "" {
				return fmt.Errorf("scenario %q needs a termination oracle but models.oracle is not set", s.Scenarios[i].Name)
			}
		}
	}

	return nil
}
