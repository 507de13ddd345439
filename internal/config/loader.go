package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/roach88/vsgen/internal/discovery"
	"github.com/roach88/vsgen/internal/paths"
	"github.com/roach88/vsgen/internal/project"
)

// Environment variables overriding the file.
const (
	EnvProjectDir = "VSGEN_PROJECT_DIR"
	EnvManifest   = "VSGEN_MANIFEST"
	EnvStyle      = "VSGEN_STYLE"
	EnvJournal    = "VSGEN_JOURNAL"
	EnvLang       = "VSGEN_LANG_VERSION"
	EnvPlayer     = "VSGEN_PLAYER_PROJECTS"
)

// Load builds the configuration.
//
// An empty path looks for FileName in the working directory and tolerates
// its absence. An explicit path must exist. Relative manifest and journal
// paths are resolved against the project directory.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = FileName
	}
	if err := loadFile(path, cfg); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	env, err := readDotEnv(filepath.Join(filepath.Dir(path), ".env"))
	if err != nil {
		return nil, err
	}
	if err := applyEnv(cfg, env); err != nil {
		return nil, err
	}

	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return decode(path, data, cfg)
}

func decode(name string, data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", name, err)
	}
	return nil
}

// readDotEnv returns the variables of a .env file merged under the process
// environment, which wins. A missing file yields the process environment.
func readDotEnv(path string) (func(string) (string, bool), error) {
	file, err := godotenv.Read(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set(EnvProjectDir, &cfg.ProjectDir)
	set(EnvManifest, &cfg.Manifest)
	set(EnvStyle, &cfg.Style)
	set(EnvJournal, &cfg.Journal)
	set(EnvLang, &cfg.LangVersion)

	if v, ok := lookup(EnvPlayer); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPlayer, err)
		}
		cfg.GeneratePlayerProjects = b
	}
	return nil
}

func (c *Config) resolve() error {
	dir, err := filepath.Abs(c.ProjectDir)
	if err != nil {
		return fmt.Errorf("resolve project dir: %w", err)
	}
	c.ProjectDir = dir
	c.Manifest = c.within(c.Manifest)
	c.Journal = c.within(c.Journal)
	return nil
}

func (c *Config) within(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ProjectDir, p)
}

// Validate rejects values no component can use.
func (c *Config) Validate() error {
	if _, err := project.ParseStyle(c.Style); err != nil {
		return fmt.Errorf("style: %w", err)
	}
	if _, err := project.ParseStyle(c.PreferredStyle); err != nil {
		return fmt.Errorf("preferred_style: %w", err)
	}
	if _, err := c.Separator(); err != nil {
		return err
	}
	if c.StateCacheSize < 0 {
		return fmt.Errorf("state_cache_size: must not be negative, got %d", c.StateCacheSize)
	}
	for i, inst := range c.Installations {
		if strings.TrimSpace(inst.Path) == "" {
			return fmt.Errorf("installations[%d]: path is required", i)
		}
	}
	return nil
}

// ProjectStyle returns the parsed style.
func (c *Config) ProjectStyle() project.Style {
	s, _ := project.ParseStyle(c.Style)
	return s
}

// Preferred returns the parsed preferred style.
func (c *Config) Preferred() project.Style {
	s, _ := project.ParseStyle(c.PreferredStyle)
	return s
}

// Separator returns the path separator byte.
func (c *Config) Separator() (byte, error) {
	switch strings.ToLower(strings.TrimSpace(c.PathSeparator)) {
	case "", `\`, "windows":
		return paths.WindowsSeparator, nil
	case "/", "unix":
		return paths.UnixSeparator, nil
	default:
		return 0, fmt.Errorf("path_separator: unknown separator %q (want \\ or /)", c.PathSeparator)
	}
}

// Discoverer returns the installation source described by the config.
func (c *Config) Discoverer() discovery.Discoverer {
	if c.ProbeInstallations {
		return discovery.ProbeDiscoverer{Candidates: c.Installations}
	}
	return discovery.StaticDiscoverer{Installations: c.Installations}
}
