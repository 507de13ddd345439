package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/vsgen/internal/provider"
	"github.com/roach88/vsgen/internal/syncer"
)

// SolutionInfo locates the solution file.
type SolutionInfo struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

// NewSolutionCommand creates the solution command.
func NewSolutionCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solution",
		Short: "Print the solution file path",
		Long: `Print the path of the solution file for the configured project
directory. The solution is named after the directory.

Examples:
  vsgen solution
  vsgen solution --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolution(rootOpts, cmd)
		},
	}

	return cmd
}

func runSolution(opts *RootOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts, overrides{})
	if err != nil {
		return err
	}

	s := syncer.New(cfg.ProjectDir, provider.NewManifestProvider(nil))
	info := SolutionInfo{Path: s.SolutionFile()}
	if _, err := os.Stat(info.Path); err == nil {
		info.Exists = true
	}

	out := formatter(opts, cmd)
	return out.Success(info, func(w io.Writer) {
		fmt.Fprintln(w, info.Path)
		if !info.Exists {
			out.VerboseLog("(not generated yet)")
		}
	})
}
