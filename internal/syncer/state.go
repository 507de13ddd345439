package syncer

import (
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultStateSize bounds the number of content hashes kept in memory.
const DefaultStateSize = 4096

// SyncState is what the engine last knew to be on disk.
//
// Hashes are bounded by an LRU; an evicted entry costs one disk read on the
// next pass. State lives for the lifetime of the Synchronizer and is never
// persisted.
type SyncState struct {
	hashes *lru.Cache[string, string]
	names  map[string]bool
	synced bool
}

func newSyncState(size int) *SyncState {
	if size <= 0 {
		size = DefaultStateSize
	}
	// lru.New only fails for a non-positive size.
	hashes, _ := lru.New[string, string](size)
	return &SyncState{hashes: hashes, names: make(map[string]bool)}
}

// Hash returns the last known content hash of path.
func (s *SyncState) Hash(path string) (string, bool) {
	return s.hashes.Get(path)
}

// Len returns the number of files with a known hash.
func (s *SyncState) Len() int {
	return s.hashes.Len()
}

// Names returns the project names of the last pass, sorted.
func (s *SyncState) Names() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Synced reports whether a pass has completed.
func (s *SyncState) Synced() bool {
	return s.synced
}

func (s *SyncState) remember(path, hash string) {
	s.hashes.Add(path, hash)
}

func (s *SyncState) forget(path string) {
	s.hashes.Remove(path)
}

func (s *SyncState) setNames(names []string) {
	s.names = make(map[string]bool, len(names))
	for _, n := range names {
		s.names[n] = true
	}
}
