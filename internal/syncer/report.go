package syncer

// Report summarizes one pass.
type Report struct {
	// Full is false for a pass restricted to affected assemblies.
	Full bool

	// Assemblies is the number of projects in the solution.
	Assemblies int

	Written   []string
	Unchanged []string
	Deleted   []string
	Failures  []*WriteError
}

// Changed reports whether the pass altered anything on disk.
func (r *Report) Changed() bool {
	return len(r.Written) > 0 || len(r.Deleted) > 0
}

// Failed reports whether any file operation failed.
func (r *Report) Failed() bool {
	return len(r.Failures) > 0
}
