package domain

// RunParameters are the per-run settings read from the parameter file.
type RunParameters struct {
	InputStrings []string `param:"input_strings" json:"input_strings"`
	MaxDepth     Limit    `param:"max_depth" json:"max_depth"`
	MaxSteps     Limit    `param:"max_steps" json:"max_steps"`
	Debug        bool     `param:"debug" json:"debug"`

	// Machine optionally points at the machine description, relative to the
	// parameter file.
	Machine string `param:"machine" json:"machine,omitempty"`

	// Extra keeps unrecognised keys verbatim.
	Extra map[string]string `param:",remain" json:"extra,omitempty"`
}
