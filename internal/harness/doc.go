// Package harness runs sync scenarios against an in-memory project.
//
// A scenario declares a manifest, a sequence of steps driving a Synchronizer,
// and assertions over the files left behind.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	style: legacy
//	manifest:
//	  assemblies:
//	    - name: Game
//	      source_files: [Assets/Game.cs]
//	steps:
//	  - action: sync
//	  - action: sync_if_needed
//	    reimported: [Assets/Water.shader]
//	    expect: true
//	assertions:
//	  - type: file_contains
//	    path: Game.csproj
//	    text: Water.shader
//
// # Step Actions
//
//   - sync: runs a full pass
//   - sync_if_needed: runs the incremental check; expect compares its result
//   - set_manifest: replaces the manifest served to the engine
//   - delete_file: removes a file behind the engine's back
//   - write_file: writes a file behind the engine's back
//   - fail_writes / heal_writes: toggles injected write failures
//   - reset_counts: zeroes the write counters
//
// # Assertion Types
//
//   - file_contains / file_not_contains: substring checks on a document
//   - file_exists / file_absent: presence of a document
//   - write_count: number of successful writes to a document
//
// Paths in steps and assertions are relative to the project directory.
//
// # Deterministic Testing
//
// Every scenario runs against a fresh testutil.MemFS with readable fixed
// GUIDs, so produced documents are byte-identical across runs and can be
// compared against golden files with RunWithGolden.
package harness
