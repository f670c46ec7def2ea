package harness

// TraceEvent records one executed step.
type TraceEvent struct {
	Seq  int64   `json:"seq"`
	Op   string  `json:"op"`
	Arg  string  `json:"arg,omitempty"`
	Rate float64 `json:"rate,omitempty"`

	// Times is set when the step repeated.
	Times int `json:"times,omitempty"`

	// At is the host clock reading a tick was issued with.
	At float64 `json:"at,omitempty"`

	// Steps is the number of fixed steps a tick integrated.
	Steps int `json:"steps,omitempty"`

	// OK is the outcome for operations that report one. It is false if any
	// repetition failed.
	OK *bool `json:"ok,omitempty"`

	// Messages are the log messages the step produced, oldest first.
	Messages []string `json:"messages,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace contains the executed steps in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Final is the game snapshot after the last step.
	Final map[string]any `json:"final,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Messages returns every log message in the trace, oldest first.
func (r *Result) Messages() []string {
	var out []string
	for _, ev := range r.Trace {
		out = append(out, ev.Messages...)
	}
	return out
}
