package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/vsgen/internal/syncer"
)

// SyncOptions holds flags for the sync command.
type SyncOptions struct {
	*RootOptions
	Style    string
	Manifest string
}

// SyncResult is the outcome of one pass as printed by the CLI.
type SyncResult struct {
	Full       bool          `json:"full"`
	Assemblies int           `json:"assemblies"`
	Solution   string        `json:"solution"`
	Written    []string      `json:"written"`
	Unchanged  []string      `json:"unchanged"`
	Deleted    []string      `json:"deleted"`
	Failures   []FailureInfo `json:"failures"`
	Seq        int64         `json:"seq,omitempty"`
}

// FailureInfo describes one failed file operation.
type FailureInfo struct {
	Code  string `json:"code"`
	Path  string `json:"path"`
	Error string `json:"error"`
}

// NewSyncCommand creates the sync command.
func NewSyncCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SyncOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Regenerate every project and the solution",
		Long: `Run a full pass over the manifest.

Every project document and the solution are rendered. Files whose
content is unchanged on disk are left alone. Projects for assemblies
that left the manifest are deleted.

Exits with code 1 when any file operation failed.

Examples:
  vsgen sync
  vsgen sync --style sdk
  vsgen sync --manifest export/manifest.cue --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Style, "style", "", "project style (legacy|sdk|automatic)")
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "path to the assembly manifest")

	return cmd
}

func runSync(opts *SyncOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	env, err := openEnvironment(ctx, opts.RootOptions, overrides{Style: opts.Style, Manifest: opts.Manifest}, logger)
	if err != nil {
		return err
	}
	defer env.Close()

	report := env.syncer.Sync()
	result := env.result(report)

	out := formatter(opts.RootOptions, cmd)
	if !report.Failed() {
		return out.Success(result, func(w io.Writer) { printSyncResult(out, w, result) })
	}

	msg := fmt.Sprintf("%s failed", pluralize(len(report.Failures), "file operation"))
	if err := out.Error(string(report.Failures[0].Code), msg, result, func(w io.Writer) { printSyncResult(out, w, result) }); err != nil {
		return err
	}
	return &ExitError{Code: ExitFailure, Message: msg, Reported: true}
}

func (e *environment) result(report *syncer.Report) SyncResult {
	r := SyncResult{
		Full:       report.Full,
		Assemblies: report.Assemblies,
		Solution:   e.rel(e.syncer.SolutionFile()),
		Written:    e.relAll(report.Written),
		Unchanged:  e.relAll(report.Unchanged),
		Deleted:    e.relAll(report.Deleted),
		Failures:   []FailureInfo{},
	}
	for _, f := range report.Failures {
		info := FailureInfo{Code: string(f.Code), Path: e.rel(f.Path)}
		if f.Err != nil {
			info.Error = f.Err.Error()
		}
		r.Failures = append(r.Failures, info)
	}
	if e.journal != nil {
		r.Seq = e.journal.LastSeq()
	}
	return r
}

func (e *environment) relAll(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, e.rel(p))
	}
	return out
}

func printSyncResult(out *OutputFormatter, w io.Writer, r SyncResult) {
	scope := "full"
	if !r.Full {
		scope = "partial"
	}
	fmt.Fprintf(w, "Synced %s (%s pass): %d written, %d unchanged, %d deleted, %d failed\n",
		pluralize(r.Assemblies, "project"), scope,
		len(r.Written), len(r.Unchanged), len(r.Deleted), len(r.Failures))

	for _, p := range r.Written {
		out.VerboseLog("  written   %s", p)
	}
	for _, p := range r.Deleted {
		out.VerboseLog("  deleted   %s", p)
	}
	for _, f := range r.Failures {
		fmt.Fprintf(w, "  FAILED    %s [%s] %s\n", f.Path, f.Code, f.Error)
	}
	if r.Seq > 0 {
		fmt.Fprintf(w, "Recorded as pass %d\n", r.Seq)
	}
}
