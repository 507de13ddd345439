package discovery

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Installation is one IDE installation.
type Installation struct {
	Name                  string `yaml:"name" json:"name"`
	Path                  string `yaml:"path" json:"path"`
	Version               string `yaml:"version" json:"version"`
	LatestLanguageVersion string `yaml:"latest_language_version" json:"latest_language_version"`
	SupportsAnalyzers     bool   `yaml:"supports_analyzers" json:"supports_analyzers"`
}

// Discoverer enumerates installations.
type Discoverer interface {
	Discover(ctx context.Context) ([]Installation, error)
}

// StaticDiscoverer returns a fixed list, typically from configuration.
type StaticDiscoverer struct {
	Installations []Installation
}

// Discover implements Discoverer.
func (s StaticDiscoverer) Discover(ctx context.Context) ([]Installation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]Installation(nil), s.Installations...), nil
}

// ProbeDiscoverer keeps the candidates whose Path exists on disk.
type ProbeDiscoverer struct {
	Candidates []Installation

	// Stat defaults to os.Stat.
	Stat func(path string) (os.FileInfo, error)
}

// Discover implements Discoverer.
func (p ProbeDiscoverer) Discover(ctx context.Context) ([]Installation, error) {
	stat := p.Stat
	if stat == nil {
		stat = os.Stat
	}
	var found []Installation
	for _, c := range p.Candidates {
		if err := ctx.Err(); err != nil {
			return found, fmt.Errorf("probe interrupted: %w", err)
		}
		if c.Path == "" {
			continue
		}
		if _, err := stat(c.Path); err != nil {
			continue
		}
		found = append(found, c)
	}
	return found, nil
}

// CompareVersions compares dotted numeric versions. Missing components
// count as zero and non-numeric components compare as zero.
func CompareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) || i < len(bs); i++ {
		x, y := component(as, i), component(bs, i)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
	}
	return 0
}

func component(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
	if err != nil {
		return 0
	}
	return n
}
