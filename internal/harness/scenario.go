package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/vsgen/internal/project"
	"github.com/roach88/vsgen/internal/provider"
)

// DefaultProjectDir is where scenarios place their project.
const DefaultProjectDir = "/work/Example"

// Scenario defines one sync scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// ProjectDir defaults to DefaultProjectDir.
	ProjectDir string `yaml:"project_dir,omitempty"`

	// Style is a project style name; empty means automatic.
	Style string `yaml:"style,omitempty"`

	// PlayerProjects enables player variants.
	PlayerProjects bool `yaml:"player_projects,omitempty"`

	// LangVersion pins the emitted language version.
	LangVersion string `yaml:"lang_version,omitempty"`

	// Manifest is the initial assembly model.
	Manifest provider.Manifest `yaml:"manifest"`

	// Files seeds the project before the first step.
	Files map[string]string `yaml:"files,omitempty"`

	// Steps drive the engine in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final files.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one engine interaction.
type Step struct {
	Action string `yaml:"action"`

	// Changed and Reimported feed sync_if_needed.
	Changed    []string `yaml:"changed,omitempty"`
	Reimported []string `yaml:"reimported,omitempty"`

	// Expect is the expected sync_if_needed result.
	Expect *bool `yaml:"expect,omitempty"`

	// Manifest replaces the model for set_manifest.
	Manifest *provider.Manifest `yaml:"manifest,omitempty"`

	// Path and Content serve delete_file and write_file.
	Path    string `yaml:"path,omitempty"`
	Content string `yaml:"content,omitempty"`

	// Paths serve fail_writes and heal_writes.
	Paths []string `yaml:"paths,omitempty"`
}

// Assertion validates the final files.
type Assertion struct {
	Type  string `yaml:"type"`
	Path  string `yaml:"path"`
	Text  string `yaml:"text,omitempty"`
	Count int    `yaml:"count,omitempty"`
}

// Step actions.
const (
	StepSync         = "sync"
	StepSyncIfNeeded = "sync_if_needed"
	StepSetManifest  = "set_manifest"
	StepDeleteFile   = "delete_file"
	StepWriteFile    = "write_file"
	StepFailWrites   = "fail_writes"
	StepHealWrites   = "heal_writes"
	StepResetCounts  = "reset_counts"
)

// Assertion types.
const (
	AssertFileContains    = "file_contains"
	AssertFileNotContains = "file_not_contains"
	AssertFileExists      = "file_exists"
	AssertFileAbsent      = "file_absent"
	AssertWriteCount      = "write_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	if scenario.ProjectDir == "" {
		scenario.ProjectDir = DefaultProjectDir
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	if _, err := project.ParseStyle(s.Style); err != nil {
		return err
	}
	if err := s.Manifest.Validate(); err != nil {
		return fmt.Errorf("manifest: %w", err)
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}
	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(index int, s *Step) error {
	switch s.Action {
	case StepSync, StepResetCounts:
	case StepSyncIfNeeded:
		if len(s.Changed) == 0 && len(s.Reimported) == 0 && s.Expect == nil {
			return fmt.Errorf("steps[%d]: sync_if_needed needs changed, reimported or expect", index)
		}
	case StepSetManifest:
		if s.Manifest == nil {
			return fmt.Errorf("steps[%d]: manifest is required for set_manifest", index)
		}
		if err := s.Manifest.Validate(); err != nil {
			return fmt.Errorf("steps[%d].manifest: %w", index, err)
		}
	case StepDeleteFile, StepWriteFile:
		if s.Path == "" {
			return fmt.Errorf("steps[%d]: path is required for %s", index, s.Action)
		}
	case StepFailWrites, StepHealWrites:
		if len(s.Paths) == 0 {
			return fmt.Errorf("steps[%d]: paths list is required for %s", index, s.Action)
		}
	case "":
		return fmt.Errorf("steps[%d]: action is required", index)
	default:
		return fmt.Errorf("steps[%d]: unknown action %q", index, s.Action)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}
	if a.Path == "" {
		return fmt.Errorf("assertions[%d]: path is required", index)
	}

	switch a.Type {
	case AssertFileContains, AssertFileNotContains:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for %s", index, a.Type)
		}
	case AssertFileExists, AssertFileAbsent:
	case AssertWriteCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for write_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
