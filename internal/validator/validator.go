package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/ntmtrace/pkg/domain"
)

// ValidateMachine checks a machine description for inconsistencies and
// returns a single error listing every problem found. Problems never stop a
// simulation: the engine runs whatever table it is given.
func ValidateMachine(m *domain.Machine) error {
	var problems []string
	report := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(m.Name) == "" {
		report("machine has no name")
	}

	states := set(m.States)
	tape := set(m.TapeAlphabet)

	for _, named := range []struct{ role, state string }{
		{"start", m.StartState},
		{"accept", m.AcceptState},
		{"reject", m.RejectState},
	} {
		if !states[named.state] {
			report("%s state '%s' is not a declared state", named.role, named.state)
		}
	}

	for _, sym := range m.InputAlphabet {
		if !tape[sym] {
			report("input symbol '%s' is not in the tape alphabet", sym)
		}
	}

	for i, r := range m.Rules() {
		where := fmt.Sprintf("transition %d (%s, %s)", i+1, r.State, r.Symbol)
		if !states[r.State] {
			report("%s: unknown source state '%s'", where, r.State)
		}
		if !states[r.Next] {
			report("%s: unknown target state '%s'", where, r.Next)
		}
		if !tape[r.Symbol] {
			report("%s: read symbol '%s' is not in the tape alphabet", where, r.Symbol)
		}
		if !tape[r.Write] {
			report("%s: write symbol '%s' is not in the tape alphabet", where, r.Write)
		}
		if !slices.Contains([]domain.Direction{domain.MoveLeft, domain.MoveRight}, r.Move) {
			report("%s: direction '%s' is neither L nor R (treated as L)", where, r.Move)
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("found %d problems:\n- %s", len(problems), strings.Join(problems, "\n- "))
	}
	return nil
}

func set(items []string) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, item := range items {
		out[item] = true
	}
	return out
}

// Summary describes the size of m's transition table.
func Summary(m *domain.Machine) string {
	return fmt.Sprintf("%d transitions on %d keys, branching factor %d",
		len(m.Rules()), len(m.Keys()), m.Branching())
}
