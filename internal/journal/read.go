package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Recent returns up to limit passes, newest first, without file outcomes.
// A non-positive limit returns every pass.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Pass, error) {
	query := `
		SELECT seq, kind, full_pass, assemblies, written, unchanged, deleted, failed, started_at
		FROM passes
		ORDER BY seq DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query passes: %w", err)
	}
	defer rows.Close()

	passes := []Pass{}
	for rows.Next() {
		p, err := scanPass(rows)
		if err != nil {
			return nil, err
		}
		passes = append(passes, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate passes: %w", err)
	}
	return passes, nil
}

// Get returns one pass with its file outcomes.
func (j *Journal) Get(ctx context.Context, seq int64) (Pass, bool, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT seq, kind, full_pass, assemblies, written, unchanged, deleted, failed, started_at
		FROM passes
		WHERE seq = ?
	`, seq)
	p, err := scanPass(row)
	if err == sql.ErrNoRows {
		return Pass{}, false, nil
	}
	if err != nil {
		return Pass{}, false, err
	}

	files, err := j.queryFiles(ctx, `
		SELECT pass_seq, path, outcome, content_hash, error
		FROM pass_files
		WHERE pass_seq = ?
		ORDER BY path COLLATE BINARY ASC
	`, seq)
	if err != nil {
		return Pass{}, false, err
	}
	p.Files = files
	return p, true, nil
}

// FileHistory returns every recorded outcome for path, oldest first.
func (j *Journal) FileHistory(ctx context.Context, path string) ([]FileOutcome, error) {
	return j.queryFiles(ctx, `
		SELECT pass_seq, path, outcome, content_hash, error
		FROM pass_files
		WHERE path = ?
		ORDER BY pass_seq ASC
	`, path)
}

func (j *Journal) queryFiles(ctx context.Context, query string, args ...any) ([]FileOutcome, error) {
	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query pass files: %w", err)
	}
	defer rows.Close()

	files := []FileOutcome{}
	for rows.Next() {
		var f FileOutcome
		if err := rows.Scan(&f.PassSeq, &f.Path, &f.Outcome, &f.ContentHash, &f.Error); err != nil {
			return nil, fmt.Errorf("scan pass file: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pass files: %w", err)
	}
	return files, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPass(s scanner) (Pass, error) {
	var (
		p       Pass
		full    int
		started string
	)
	err := s.Scan(&p.Seq, &p.Kind, &full, &p.Assemblies, &p.Written, &p.Unchanged, &p.Deleted, &p.Failed, &started)
	if err == sql.ErrNoRows {
		return Pass{}, err
	}
	if err != nil {
		return Pass{}, fmt.Errorf("scan pass: %w", err)
	}
	p.Full = full == 1
	if t, perr := time.Parse(time.RFC3339Nano, started); perr == nil {
		p.StartedAt = t
	}
	return p, nil
}
