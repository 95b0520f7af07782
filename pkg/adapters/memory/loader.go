package memory

import (
	"github.com/aretw0/ntmtrace/pkg/domain"
)

// Loader implements ports.MachineLoader over an in-memory document.
type Loader struct {
	doc domain.MachineDocument
}

// NewLoader creates a loader serving the given document.
func NewLoader(doc domain.MachineDocument) *Loader {
	return &Loader{doc: doc}
}

// NewFromMachine creates a loader from an already built machine.
// This improves DX for tests and embedded use.
func NewFromMachine(m *domain.Machine) *Loader {
	return &Loader{doc: m.Document()}
}

// LoadMachine builds a fresh machine from the stored document on every call.
func (l *Loader) LoadMachine() (*domain.Machine, error) {
	return l.doc.Machine()
}
