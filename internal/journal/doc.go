// Package journal provides a SQLite-backed audit trail of sync passes.
//
// The journal is append-only:
//   - passes: one row per Sync or SyncIfNeeded call that ran a pass
//   - pass_files: the outcome of every document the pass considered
//
// It records what happened; it is never consulted to decide what to write.
// Content state lives only in the engine's in-memory SyncState.
//
// # Critical Patterns
//
// Logical ordering:
//   - Passes are numbered by a monotonic logical clock (seq), never by wall time
//   - started_at is informational only
//
// Deterministic query results:
//   - Pass queries order by seq; file queries add path COLLATE BINARY
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package journal
