package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Snapshot renders the step log and every final file as one text document.
// Files are emitted in path order with their content verbatim.
func Snapshot(name string, result *Result) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# scenario: %s\n", name)
	for _, s := range result.Steps {
		fmt.Fprintf(&sb, "# step %d %s ran=%v written=%d unchanged=%d deleted=%d failed=%d\n",
			s.Index, s.Action, s.Ran, s.Written, s.Unchanged, s.Deleted, s.Failed)
	}
	for _, path := range sortedKeys(result.Files) {
		fmt.Fprintf(&sb, "=== %s (writes=%d) ===\n", path, result.Writes[path])
		sb.WriteString(result.Files[path])
		if !strings.HasSuffix(result.Files[path], "\n") {
			sb.WriteString("\n")
		}
	}
	return []byte(sb.String())
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, Snapshot(name, result))
}
