package harness

// StepResult records what one step did.
type StepResult struct {
	Index     int    `json:"index"`
	Action    string `json:"action"`
	Ran       bool   `json:"ran,omitempty"`
	Written   int    `json:"written,omitempty"`
	Unchanged int    `json:"unchanged,omitempty"`
	Deleted   int    `json:"deleted,omitempty"`
	Failed    int    `json:"failed,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expect clause and assertion held.
	Pass bool `json:"pass"`

	// Steps holds one entry per executed step, in order.
	Steps []StepResult `json:"steps"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Files maps project-relative paths to final content.
	Files map[string]string `json:"files"`

	// Writes maps project-relative paths to successful write counts.
	Writes map[string]int `json:"writes"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Steps:  []StepResult{},
		Errors: []string{},
		Files:  make(map[string]string),
		Writes: make(map[string]int),
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
