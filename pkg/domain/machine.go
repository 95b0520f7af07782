package domain

// Machine is the static description of a non-deterministic Turing machine.
// It must not be mutated once built; the engine only reads StartState,
// AcceptState and the transition table.
type Machine struct {
	Name          string   `json:"name"`
	States        []string `json:"states"`
	InputAlphabet []string `json:"input_alphabet"`
	TapeAlphabet  []string `json:"tape_alphabet"`
	StartState    string   `json:"start_state"`
	AcceptState   string   `json:"accept_state"`
	RejectState   string   `json:"reject_state"`

	transitions map[Key][]Transition
	keys        []Key
}

// Rule is a flattened transition table row, in definition order.
type Rule struct {
	Key
	Transition
}

// MachineBuilder accumulates transitions in definition order.
type MachineBuilder struct {
	m *Machine
}

// NewMachineBuilder starts a machine with the given header fields.
func NewMachineBuilder(header Machine) *MachineBuilder {
	m := header
	m.transitions = make(map[Key][]Transition)
	m.keys = nil
	return &MachineBuilder{m: &m}
}

// Add appends a transition for (state, symbol). Multiple calls with the same key
// build a non-deterministic choice list in call order.
func (b *MachineBuilder) Add(state, symbol string, t Transition) *MachineBuilder {
	k := Key{State: state, Symbol: symbol}
	if _, ok := b.m.transitions[k]; !ok {
		b.m.keys = append(b.m.keys, k)
	}
	b.m.transitions[k] = append(b.m.transitions[k], t)
	return b
}

// Build returns the finished machine. The builder must not be reused.
func (b *MachineBuilder) Build() *Machine {
	m := b.m
	b.m = nil
	return m
}

// Lookup returns the ordered transitions for (state, symbol).
// A missing key means the branch is implicitly rejected.
func (m *Machine) Lookup(state, symbol string) ([]Transition, bool) {
	ts, ok := m.transitions[Key{State: state, Symbol: symbol}]
	return ts, ok
}

// Rules lists every transition in definition order.
func (m *Machine) Rules() []Rule {
	var rules []Rule
	for _, k := range m.keys {
		for _, t := range m.transitions[k] {
			rules = append(rules, Rule{Key: k, Transition: t})
		}
	}
	return rules
}

// Keys lists the transition table keys in first-definition order.
func (m *Machine) Keys() []Key {
	out := make([]Key, len(m.keys))
	copy(out, m.keys)
	return out
}

// Branching returns the largest number of transitions attached to one key.
func (m *Machine) Branching() int {
	max := 0
	for _, ts := range m.transitions {
		if len(ts) > max {
			max = len(ts)
		}
	}
	return max
}
