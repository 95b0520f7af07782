package ports

import "github.com/aretw0/ntmtrace/pkg/domain"

// MachineLoader defines how drivers obtain a machine description.
// This allows the source (CSV file, YAML file, memory) to be decoupled.
type MachineLoader interface {
	// LoadMachine returns the machine. Implementations return a
	// *domain.ParseError wrapping domain.ErrMalformedMachine for bad input.
	LoadMachine() (*domain.Machine, error)
}

// MachineLoaderFunc adapts a function to MachineLoader.
type MachineLoaderFunc func() (*domain.Machine, error)

// LoadMachine calls f.
func (f MachineLoaderFunc) LoadMachine() (*domain.Machine, error) {
	return f()
}
