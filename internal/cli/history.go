package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/vsgen/internal/journal"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int
	Seq   int64
	File  string
}

// PassInfo is one journaled pass as printed by the CLI.
type PassInfo struct {
	Seq        int64      `json:"seq"`
	Kind       string     `json:"kind"`
	Full       bool       `json:"full"`
	Assemblies int        `json:"assemblies"`
	Written    int        `json:"written"`
	Unchanged  int        `json:"unchanged"`
	Deleted    int        `json:"deleted"`
	Failed     int        `json:"failed"`
	StartedAt  string     `json:"started_at"`
	Files      []FileInfo `json:"files,omitempty"`
}

// FileInfo is one file outcome as printed by the CLI.
type FileInfo struct {
	Seq     int64  `json:"seq"`
	Path    string `json:"path"`
	Outcome string `json:"outcome"`
	Hash    string `json:"hash,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List journaled sync passes",
		Long: `List the passes recorded in the journal, newest first.

Requires a journal path in the config or VSGEN_JOURNAL.

Examples:
  vsgen history
  vsgen history --limit 5
  vsgen history --seq 12
  vsgen history --file Assembly-CSharp.csproj`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum passes to list (0 for all)")
	cmd.Flags().Int64Var(&opts.Seq, "seq", 0, "show one pass with its files")
	cmd.Flags().StringVar(&opts.File, "file", "", "show the outcomes recorded for one document")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(opts.RootOptions, overrides{})
	if err != nil {
		return err
	}
	if cfg.Journal == "" {
		return NewExitError(ExitCommandError, "no journal configured (set journal in vsgen.yaml or VSGEN_JOURNAL)")
	}

	j, err := journal.Open(cfg.Journal)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer j.Close()

	switch {
	case opts.Seq > 0:
		return showPass(ctx, opts, cmd, j, cfg.ProjectDir)
	case opts.File != "":
		return showFile(ctx, opts, cmd, j, cfg.ProjectDir)
	}

	passes, err := j.Recent(ctx, opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}
	infos := make([]PassInfo, 0, len(passes))
	for _, p := range passes {
		infos = append(infos, passInfo(p, cfg.ProjectDir))
	}

	return formatter(opts.RootOptions, cmd).Success(infos, func(w io.Writer) {
		if len(infos) == 0 {
			fmt.Fprintln(w, "No passes recorded")
			return
		}
		for _, p := range infos {
			printPassLine(w, p)
		}
	})
}

func showPass(ctx context.Context, opts *HistoryOptions, cmd *cobra.Command, j *journal.Journal, dir string) error {
	p, ok, err := j.Get(ctx, opts.Seq)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}
	if !ok {
		return NewExitError(ExitCommandError, fmt.Sprintf("pass %d not found", opts.Seq))
	}
	info := passInfo(p, dir)

	return formatter(opts.RootOptions, cmd).Success(info, func(w io.Writer) {
		printPassLine(w, info)
		for _, f := range info.Files {
			printFileLine(w, f)
		}
	})
}

func showFile(ctx context.Context, opts *HistoryOptions, cmd *cobra.Command, j *journal.Journal, dir string) error {
	path := opts.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	outcomes, err := j.FileHistory(ctx, path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}
	infos := make([]FileInfo, 0, len(outcomes))
	for _, o := range outcomes {
		infos = append(infos, fileInfo(o, dir))
	}

	return formatter(opts.RootOptions, cmd).Success(infos, func(w io.Writer) {
		if len(infos) == 0 {
			fmt.Fprintf(w, "No outcomes recorded for %s\n", opts.File)
			return
		}
		for _, f := range infos {
			printFileLine(w, f)
		}
	})
}

func passInfo(p journal.Pass, dir string) PassInfo {
	info := PassInfo{
		Seq:        p.Seq,
		Kind:       p.Kind,
		Full:       p.Full,
		Assemblies: p.Assemblies,
		Written:    p.Written,
		Unchanged:  p.Unchanged,
		Deleted:    p.Deleted,
		Failed:     p.Failed,
		StartedAt:  p.StartedAt.Format(time.RFC3339),
	}
	for _, f := range p.Files {
		info.Files = append(info.Files, fileInfo(f, dir))
	}
	return info
}

func fileInfo(f journal.FileOutcome, dir string) FileInfo {
	return FileInfo{
		Seq:     f.PassSeq,
		Path:    relTo(dir, f.Path),
		Outcome: f.Outcome,
		Hash:    f.ContentHash,
		Error:   f.Error,
	}
}

func printPassLine(w io.Writer, p PassInfo) {
	scope := "full"
	if !p.Full {
		scope = "partial"
	}
	fmt.Fprintf(w, "#%-4d %s  %-14s %-7s %d written, %d unchanged, %d deleted, %d failed\n",
		p.Seq, p.StartedAt, p.Kind, scope, p.Written, p.Unchanged, p.Deleted, p.Failed)
}

func printFileLine(w io.Writer, f FileInfo) {
	line := fmt.Sprintf("  #%-4d %-9s %s", f.Seq, f.Outcome, f.Path)
	if f.Error != "" {
		line += " (" + f.Error + ")"
	}
	fmt.Fprintln(w, line)
}
