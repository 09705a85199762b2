// Package projectconfig provides the ProjectConfig struct and loader for
// .keiko.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultProvider = "anthropic"

	DefaultArtifactModel  = "claude-sonnet-4-5"
	DefaultSimulatorModel = "claude-haiku-4-5"
	DefaultOracleModel    = "claude-haiku-4-5"
	DefaultJudgeModel     = "claude-sonnet-4-5"

	DefaultMaxTurns      = 10
	DefaultMetric        = "skill_quality"
	DefaultTranscriptDir = "transcripts/"
	DefaultWorkers       = 4
)

// ModelsConfig holds default model ids per harness role.
type ModelsConfig struct {
	Artifact  string `yaml:"artifact,omitempty"`
	Simulator string `yaml:"simulator,omitempty"`
	Oracle    string `yaml:"oracle,omitempty"`
	Judge     string `yaml:"judge,omitempty"`
}

// DefaultsConfig holds default execution parameters.
type DefaultsConfig struct {
	Provider string `yaml:"provider,omitempty"`
	MaxTurns int    `yaml:"max_turns,omitempty"`
	Metric   string `yaml:"metric,omitempty"`
	Parallel *bool  `yaml:"parallel,omitempty"`
	Workers  int    `yaml:"workers,omitempty"`
}

// PathsConfig holds directory paths.
type PathsConfig struct {
	Transcripts string `yaml:"transcripts,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .keiko.yaml.
type ProjectConfig struct {
	Defaults DefaultsConfig `yaml:"defaults,omitempty"`
	Models   ModelsConfig   `yaml:"models,omitempty"`
	Paths    PathsConfig    `yaml:"paths,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Defaults: DefaultsConfig{
			Provider: DefaultProvider,
			MaxTurns: DefaultMaxTurns,
			Metric:   DefaultMetric,
			Parallel: boolPtr(false),
			Workers:  DefaultWorkers,
		},
		Models: ModelsConfig{
			Artifact:  DefaultArtifactModel,
			Simulator: DefaultSimulatorModel,
			Oracle:    DefaultOracleModel,
			Judge:     DefaultJudgeModel,
		},
		Paths: PathsConfig{
			Transcripts: DefaultTranscriptDir,
		},
	}
}

// Load finds .keiko.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults. If no config
// file is found, returns defaults with a nil error. Real I/O errors (e.g.
// permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading .keiko.yaml: %w", err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing .keiko.yaml: %w", err)
	}

	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for .keiko.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) ([]byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ".keiko.yaml")
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Defaults.Provider != "" {
		dst.Defaults.Provider = src.Defaults.Provider
	}
	if src.Defaults.MaxTurns != 0 {
		dst.Defaults.MaxTurns = src.Defaults.MaxTurns
	}
	if src.Defaults.Metric != "" {
		dst.Defaults.Metric = src.Defaults.Metric
	}
	if src.Defaults.Parallel != nil {
		dst.Defaults.Parallel = src.Defaults.Parallel
	}
	if src.Defaults.Workers != 0 {
		dst.Defaults.Workers = src.Defaults.Workers
	}

	if src.Models.Artifact != "" {
		dst.Models.Artifact = src.Models.Artifact
	}
	if src.Models.Simulator != "" {
		dst.Models.Simulator = src.Models.Simulator
	}
	if src.Models.Oracle != "" {
		dst.Models.Oracle = src.Models.Oracle
	}
	if src.Models.Judge != "" {
		dst.Models.Judge = src.Models.Judge
	}

	if src.Paths.Transcripts != "" {
		dst.Paths.Transcripts = src.Paths.Transcripts
	}
}

func boolPtr(b bool) *bool {
	return &b
}
