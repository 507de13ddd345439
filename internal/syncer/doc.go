// Package syncer implements the project synchronization decision engine.
//
// A Synchronizer owns the SyncState of one project directory. It renders a
// project document per qualifying assembly plus the solution document, and
// writes only the documents whose rendered text differs from what it last
// knew to be on disk.
//
// ARCHITECTURE:
//
// Passes:
// 1. Enumerate the assembly snapshot from the Provider (compile sources only)
// 2. Attribute tracked assets outside the source lists to their assembly
// 3. Render each project document that the pass covers
// 4. Diff each rendering against SyncState (disk read on a miss) and write
// 5. Delete project files of assemblies that left the snapshot
// 6. Render the solution, or delete it when no assembly qualifies
//
// Sync always covers every assembly. SyncIfNeeded covers only the assemblies
// owning the relevant changed paths, plus assemblies new since the last pass,
// and falls back to a full pass when a path cannot be attributed.
//
// CRITICAL PATTERNS:
//
// Single caller:
// Sync and SyncIfNeeded are never called concurrently. SyncState has no
// locks. The only concurrent collaborator is the discovery Cache, which is
// read through non-blocking Ready/Current calls.
//
// Per-file failure:
// A failed read, write or delete becomes a WriteError in Report.Failures and
// is logged as a warning. The pass continues. SyncState for that file is left
// as it was, so the next pass retries through the normal content diff.
//
// No double writes:
// A document whose content hash equals the SyncState entry is not written
// again, unless the file has disappeared from disk.
package syncer
