package harness

import (
	"fmt"
	"sort"
	"strings"
)

// AssertionError is returned when an assertion fails.
// It includes the files present to help debug the failure.
type AssertionError struct {
	Type     string   // Assertion type for categorization
	Path     string   // Project-relative document path
	Expected string   // Human-readable expected outcome
	Actual   string   // Human-readable actual outcome
	Files    []string // Files present after the scenario
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s %s\n", e.Type, e.Path)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	fmt.Fprintf(&buf, "\nFiles:\n")
	for _, f := range e.Files {
		fmt.Fprintf(&buf, "  %s\n", f)
	}
	return buf.String()
}

func evaluate(result *Result, a Assertion) error {
	content, exists := result.Files[a.Path]
	fail := func(expected, actual string) error {
		return &AssertionError{
			Type:     a.Type,
			Path:     a.Path,
			Expected: expected,
			Actual:   actual,
			Files:    sortedKeys(result.Files),
		}
	}

	switch a.Type {
	case AssertFileExists:
		if !exists {
			return fail("file exists", "file missing")
		}
	case AssertFileAbsent:
		if exists {
			return fail("file absent", "file exists")
		}
	case AssertFileContains:
		if !exists {
			return fail(fmt.Sprintf("file containing %q", a.Text), "file missing")
		}
		if !strings.Contains(content, a.Text) {
			return fail(fmt.Sprintf("file containing %q", a.Text), "text not found")
		}
	case AssertFileNotContains:
		if exists && strings.Contains(content, a.Text) {
			return fail(fmt.Sprintf("file without %q", a.Text), "text found")
		}
	case AssertWriteCount:
		if got := result.Writes[a.Path]; got != a.Count {
			return fail(fmt.Sprintf("%d writes", a.Count), fmt.Sprintf("%d writes", got))
		}
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
