package domain

import "time"

// Outcome is the terminal event of a simulation.
type Outcome string

const (
	OutcomeAccepted   Outcome = "accepted"    // An accepting configuration was reached
	OutcomeRejected   Outcome = "rejected"    // The frontier emptied
	OutcomeStepLimit  Outcome = "step_limit"  // A next frontier reached max_steps
	OutcomeDepthLimit Outcome = "depth_limit" // All levels up to max_depth were explored
)

// Report is the result of one simulation.
type Report struct {
	ID        string    `json:"id,omitempty"`
	Machine   string    `json:"machine"`
	Input     string    `json:"input"`
	Outcome   Outcome   `json:"outcome"`
	Steps     int       `json:"steps"`
	Path      []string  `json:"path,omitempty"`
	States    []string  `json:"states,omitempty"` // State of each Path entry
	Lines     []string  `json:"lines"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Clone returns a deep copy of the report.
func (r *Report) Clone() *Report {
	if r == nil {
		return nil
	}
	c := *r
	c.Path = append([]string(nil), r.Path...)
	c.States = append([]string(nil), r.States...)
	c.Lines = append([]string(nil), r.Lines...)
	return &c
}
