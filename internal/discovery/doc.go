// Package discovery finds IDE installations in the background.
//
// The Cache is owned by whoever constructs it and is populated exactly once.
// Readers never block: before discovery finishes they see "not ready" and
// proceed with defaults. Discovery only affects rendering details such as the
// language version and analyzer support, never whether projects are written.
package discovery
