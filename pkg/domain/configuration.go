package domain

import "strings"

// Configuration is the instantaneous snapshot of one computation branch.
// Head is always a valid index into Tape and Tape is never empty; configurations
// whose head would leave the tape are pruned before they are built.
type Configuration struct {
	State string
	Tape  []string
	Head  int
}

// NewConfiguration builds a configuration without validation; the caller
// guarantees a non-empty tape and an in-range head.
func NewConfiguration(state string, tape []string, head int) *Configuration {
	return &Configuration{State: state, Tape: tape, Head: head}
}

// InitialConfiguration places the head on the first symbol of input followed by
// a single blank.
func InitialConfiguration(state, input string) *Configuration {
	tape := make([]string, 0, len(input)+1)
	for _, r := range input {
		tape = append(tape, string(r))
	}
	tape = append(tape, Blank)
	return NewConfiguration(state, tape, 0)
}

// Symbol returns the symbol under the head.
func (c *Configuration) Symbol() string {
	return c.Tape[c.Head]
}

// Fork applies a transition to a private copy of the tape. It reports false when
// the head would move off the tape, in which case no configuration is built.
// The returned int is the attempted head position.
func (c *Configuration) Fork(t Transition) (*Configuration, int, bool) {
	head := c.Head + t.Move.Offset()
	if head < 0 || head >= len(c.Tape) {
		return nil, head, false
	}
	tape := make([]string, len(c.Tape))
	copy(tape, c.Tape)
	tape[c.Head] = t.Write
	return NewConfiguration(t.Next, tape, head), head, true
}

// String renders the debug form: left(state,symbol)right.
func (c *Configuration) String() string {
	var sb strings.Builder
	sb.WriteString(strings.Join(c.Tape[:c.Head], ""))
	sb.WriteString("(")
	sb.WriteString(c.State)
	sb.WriteString(",")
	sb.WriteString(c.Symbol())
	sb.WriteString(")")
	sb.WriteString(strings.Join(c.Tape[c.Head+1:], ""))
	return sb.String()
}

// PathString renders the compact trace form: left state symbol right.
func (c *Configuration) PathString() string {
	return strings.Join(c.Tape[:c.Head], "") + c.State + c.Symbol() + strings.Join(c.Tape[c.Head+1:], "")
}
