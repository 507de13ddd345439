package testutil

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/roach88/vsgen/internal/fileio"
)

// ErrInjected is returned for operations on paths marked as failing.
var ErrInjected = errors.New("injected failure")

// MemFS is an in-memory fileio.FileIO that counts operations per path.
//
// Content is stored without a BOM. Paths are compared byte for byte.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type MemFS struct {
	mu          sync.Mutex
	files       map[string]string
	writes      map[string]int
	reads       map[string]int
	deletes     map[string]int
	failWrites  map[string]bool
	failReads   map[string]bool
	failDeletes map[string]bool
}

// NewMemFS creates an empty file system.
func NewMemFS() *MemFS {
	return &MemFS{
		files:       make(map[string]string),
		writes:      make(map[string]int),
		reads:       make(map[string]int),
		deletes:     make(map[string]int),
		failWrites:  make(map[string]bool),
		failReads:   make(map[string]bool),
		failDeletes: make(map[string]bool),
	}
}

// Exists implements fileio.FileIO.
func (m *MemFS) Exists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok
}

// ReadAllText implements fileio.FileIO.
func (m *MemFS) ReadAllText(path string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads[path]++
	if m.failReads[path] {
		return "", fmt.Errorf("read %s: %w", path, ErrInjected)
	}
	content, ok := m.files[path]
	if !ok {
		return "", fmt.Errorf("read %s: file does not exist", path)
	}
	return content, nil
}

// WriteAllText implements fileio.FileIO.
func (m *MemFS) WriteAllText(path, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites[path] {
		return fmt.Errorf("write %s: %w", path, ErrInjected)
	}
	m.writes[path]++
	m.files[path] = content
	return nil
}

// Delete implements fileio.FileIO.
func (m *MemFS) Delete(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDeletes[path] {
		return fmt.Errorf("delete %s: %w", path, ErrInjected)
	}
	if _, ok := m.files[path]; ok {
		m.deletes[path]++
		delete(m.files, path)
	}
	return nil
}

// Set stores content without counting a write. Used to seed existing files
// or to simulate external edits.
func (m *MemFS) Set(path, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = content
}

// Remove deletes path without counting. Used to simulate external deletes.
func (m *MemFS) Remove(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path)
}

// Content returns the stored content of path.
func (m *MemFS) Content(path string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.files[path]
	return c, ok
}

// Paths returns every stored path, sorted.
func (m *MemFS) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.files))
	for p := range m.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// WriteCount returns the number of successful writes to path.
func (m *MemFS) WriteCount(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes[path]
}

// ReadCount returns the number of reads of path.
func (m *MemFS) ReadCount(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads[path]
}

// DeleteCount returns the number of deletes of an existing path.
func (m *MemFS) DeleteCount(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deletes[path]
}

// TotalWrites returns the number of successful writes across all paths.
func (m *MemFS) TotalWrites() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.writes {
		total += n
	}
	return total
}

// FailWrites makes writes to paths fail until HealWrites.
func (m *MemFS) FailWrites(paths ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range paths {
		m.failWrites[p] = true
	}
}

// HealWrites lets writes to paths succeed again.
func (m *MemFS) HealWrites(paths ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range paths {
		delete(m.failWrites, p)
	}
}

// FailReads makes reads of paths fail.
func (m *MemFS) FailReads(paths ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range paths {
		m.failReads[p] = true
	}
}

// FailDeletes makes deletes of paths fail.
func (m *MemFS) FailDeletes(paths ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range paths {
		m.failDeletes[p] = true
	}
}

// ResetCounts zeroes every counter, keeping content and failure marks.
func (m *MemFS) ResetCounts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes = make(map[string]int)
	m.reads = make(map[string]int)
	m.deletes = make(map[string]int)
}

var _ fileio.FileIO = (*MemFS)(nil)
