package domain

import "fmt"

// MachineDocument is the serializable form of a Machine, shared by the YAML
// loader and the HTTP/MCP transports.
type MachineDocument struct {
	Name          string         `json:"name" yaml:"name"`
	States        []string       `json:"states" yaml:"states"`
	InputAlphabet []string       `json:"input_alphabet" yaml:"input_alphabet"`
	TapeAlphabet  []string       `json:"tape_alphabet" yaml:"tape_alphabet"`
	StartState    string         `json:"start_state" yaml:"start_state"`
	AcceptState   string         `json:"accept_state" yaml:"accept_state"`
	RejectState   string         `json:"reject_state" yaml:"reject_state"`
	Transitions   []DocumentRule `json:"transitions" yaml:"transitions"`
}

// DocumentRule is one transition row of a MachineDocument.
type DocumentRule struct {
	From  string `json:"from" yaml:"from"`
	Read  string `json:"read" yaml:"read"`
	To    string `json:"to" yaml:"to"`
	Write string `json:"write" yaml:"write"`
	Move  string `json:"move" yaml:"move"`
}

// Machine builds the immutable machine described by the document.
func (d MachineDocument) Machine() (*Machine, error) {
	b := NewMachineBuilder(Machine{
		Name:          d.Name,
		States:        d.States,
		InputAlphabet: d.InputAlphabet,
		TapeAlphabet:  d.TapeAlphabet,
		StartState:    d.StartState,
		AcceptState:   d.AcceptState,
		RejectState:   d.RejectState,
	})
	for i, r := range d.Transitions {
		if r.From == "" || r.To == "" {
			return nil, fmt.Errorf("%w: transition %d needs both from and to", ErrMalformedMachine, i)
		}
		b.Add(r.From, r.Read, Transition{Next: r.To, Write: r.Write, Move: Direction(r.Move)})
	}
	return b.Build(), nil
}

// Document returns the serializable form of the machine.
func (m *Machine) Document() MachineDocument {
	d := MachineDocument{
		Name:          m.Name,
		States:        m.States,
		InputAlphabet: m.InputAlphabet,
		TapeAlphabet:  m.TapeAlphabet,
		StartState:    m.StartState,
		AcceptState:   m.AcceptState,
		RejectState:   m.RejectState,
		Transitions:   []DocumentRule{},
	}
	for _, r := range m.Rules() {
		d.Transitions = append(d.Transitions, DocumentRule{
			From:  r.State,
			Read:  r.Symbol,
			To:    r.Next,
			Write: r.Write,
			Move:  string(r.Move),
		})
	}
	return d
}
