package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/vsgen/internal/classify"
	"github.com/roach88/vsgen/internal/provider"
)

// ClassifyOptions holds flags for the classify command.
type ClassifyOptions struct {
	*RootOptions
}

// Classification is the verdict for one path.
type Classification struct {
	Path           string `json:"path"`
	Kind           string `json:"kind"`
	TriggersResync bool   `json:"triggers_resync"`
}

// NewClassifyCommand creates the classify command.
func NewClassifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ClassifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "classify <path>...",
		Short: "Show how paths are treated in project documents",
		Long: `Classify each path as compile, tracked or ignored.

User extensions come from the config and, when it exists, the manifest.

Examples:
  vsgen classify Assets/Scripts/Player.cs Assets/Shaders/Water.shader`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(opts, cmd, args)
		},
	}

	return cmd
}

func runClassify(opts *ClassifyOptions, cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(opts.RootOptions, overrides{})
	if err != nil {
		return err
	}

	c := classify.New(cfg.UserExtensions)
	m, err := provider.LoadManifest(cfg.Manifest)
	switch {
	case err == nil:
		c = c.WithUserExtensions(append(c.UserExtensions(), m.UserExtensions...))
	case manifestMissing(err):
		newLogger(opts.RootOptions, cmd.ErrOrStderr()).Debug("no manifest, using config extensions only", "path", cfg.Manifest)
	default:
		return WrapExitError(ExitCommandError, "failed to load manifest", err)
	}

	out := formatter(opts.RootOptions, cmd)
	out.VerboseLog("user extensions: %v", c.UserExtensions())

	results := make([]Classification, 0, len(args))
	for _, p := range args {
		results = append(results, Classification{
			Path:           p,
			Kind:           c.Classify(p).String(),
			TriggersResync: c.TriggersResync(p),
		})
	}

	return out.Success(results, func(w io.Writer) {
		for _, r := range results {
			fmt.Fprintf(w, "%-8s %s\n", r.Kind, r.Path)
		}
	})
}
