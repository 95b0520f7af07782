package memory_test

import (
	"testing"

	"github.com/aretw0/ntmtrace/pkg/adapters/memory"
	"github.com/aretw0/ntmtrace/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_FromMachine(t *testing.T) {
	m := domain.NewMachineBuilder(domain.Machine{Name: "mem", StartState: "q0", AcceptState: "qa"}).
		Add("q0", "a", domain.Transition{Next: "qa", Write: "a", Move: domain.MoveRight}).
		Build()

	loaded, err := memory.NewFromMachine(m).LoadMachine()
	require.NoError(t, err)
	assert.Equal(t, m.Name, loaded.Name)
	assert.Equal(t, m.Rules(), loaded.Rules())
}
