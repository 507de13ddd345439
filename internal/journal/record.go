package journal

import (
	"context"
	"fmt"
	"time"
)

// Kinds of pass.
const (
	KindSync         = "sync"
	KindSyncIfNeeded = "sync_if_needed"
)

// File outcomes.
const (
	OutcomeWritten   = "written"
	OutcomeUnchanged = "unchanged"
	OutcomeDeleted   = "deleted"
	OutcomeFailed    = "failed"
)

// Pass is one recorded sync pass.
type Pass struct {
	Seq        int64
	Kind       string
	Full       bool
	Assemblies int
	Written    int
	Unchanged  int
	Deleted    int
	Failed     int
	StartedAt  time.Time
	Files      []FileOutcome
}

// FileOutcome is what a pass did to one document.
type FileOutcome struct {
	PassSeq     int64
	Path        string
	Outcome     string
	ContentHash string
	Error       string
}

// Record appends p and its file outcomes in one transaction.
// Seq and StartedAt are assigned by the journal; the assigned seq is returned.
func (j *Journal) Record(ctx context.Context, p Pass) (int64, error) {
	seq := j.clock.Next()
	started := j.now().UTC().Format(time.RFC3339Nano)

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("record pass: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO passes
		(seq, kind, full_pass, assemblies, written, unchanged, deleted, failed, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		seq, p.Kind, boolToInt(p.Full), p.Assemblies,
		p.Written, p.Unchanged, p.Deleted, p.Failed, started,
	)
	if err != nil {
		return 0, fmt.Errorf("record pass: %w", err)
	}

	for _, f := range p.Files {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO pass_files
			(pass_seq, path, outcome, content_hash, error)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(pass_seq, path) DO NOTHING
		`, seq, f.Path, f.Outcome, f.ContentHash, f.Error)
		if err != nil {
			return 0, fmt.Errorf("record pass file %s: %w", f.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("record pass: %w", err)
	}
	return seq, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
