package model

import "sort"

// Snapshot is an immutable view of the assemblies present in one sync pass.
//
// INVARIANTS:
//   - Assemblies are sorted by ProjectName (ordinal) and project names are unique
//   - ProjectName equals Name except for player variants
//   - The snapshot never changes after NewSnapshot returns
type Snapshot struct {
	assemblies []*Assembly
	byName     map[string]*Assembly
}

// NewSnapshot builds a snapshot from the host enumeration.
// Later duplicates of a project name are dropped so the first occurrence wins.
func NewSnapshot(assemblies []*Assembly) *Snapshot {
	s := &Snapshot{byName: make(map[string]*Assembly, len(assemblies))}
	for _, a := range assemblies {
		if a == nil {
			continue
		}
		key := a.ProjectName()
		if _, dup := s.byName[key]; dup {
			continue
		}
		s.byName[key] = a
		s.assemblies = append(s.assemblies, a)
	}
	sort.SliceStable(s.assemblies, func(i, j int) bool {
		return s.assemblies[i].ProjectName() < s.assemblies[j].ProjectName()
	})
	return s
}

// Assemblies returns the assemblies sorted by name.
// The returned slice is a copy; the assemblies themselves are shared.
func (s *Snapshot) Assemblies() []*Assembly {
	out := make([]*Assembly, len(s.assemblies))
	copy(out, s.assemblies)
	return out
}

// Lookup returns the assembly with the given project name.
func (s *Snapshot) Lookup(name string) (*Assembly, bool) {
	a, ok := s.byName[name]
	return a, ok
}

// Len returns the number of assemblies.
func (s *Snapshot) Len() int {
	return len(s.assemblies)
}

// Names returns project names in sorted order.
func (s *Snapshot) Names() []string {
	names := make([]string, len(s.assemblies))
	for i, a := range s.assemblies {
		names[i] = a.ProjectName()
	}
	return names
}

// Filter returns a new snapshot holding only assemblies for which keep is true.
func (s *Snapshot) Filter(keep func(*Assembly) bool) *Snapshot {
	var kept []*Assembly
	for _, a := range s.assemblies {
		if keep(a) {
			kept = append(kept, a)
		}
	}
	return NewSnapshot(kept)
}
