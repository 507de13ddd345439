// Package config loads vsgen settings.
//
// Settings are layered: DefaultConfig, then vsgen.yaml, then a .env file
// next to it, then the process environment. Later layers win.
package config

import (
	"github.com/roach88/vsgen/internal/discovery"
)

// Config is the complete vsgen configuration.
type Config struct {
	ProjectDir             string                   `yaml:"project_dir"`
	Manifest               string                   `yaml:"manifest"`
	Style                  string                   `yaml:"style"`
	PreferredStyle         string                   `yaml:"preferred_style"`
	LangVersion            string                   `yaml:"lang_version"`
	UserExtensions         []string                 `yaml:"user_extensions"`
	RootNamespace          string                   `yaml:"root_namespace"`
	GeneratePlayerProjects bool                     `yaml:"generate_player_projects"`
	PathSeparator          string                   `yaml:"path_separator"`
	Analyzers              AnalyzersConfig          `yaml:"analyzers"`
	Journal                string                   `yaml:"journal"`
	StateCacheSize         int                      `yaml:"state_cache_size"`
	Installations          []discovery.Installation `yaml:"installations"`
	ProbeInstallations     bool                     `yaml:"probe_installations"`
	EditorPath             string                   `yaml:"editor_path"`
}

// AnalyzersConfig is the project-wide analyzer setup.
type AnalyzersConfig struct {
	Paths           []string `yaml:"paths"`
	AdditionalFiles []string `yaml:"additional_files"`
	Ruleset         string   `yaml:"ruleset"`
	Config          string   `yaml:"config"`
}
