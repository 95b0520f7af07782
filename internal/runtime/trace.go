package runtime

import (
	"fmt"

	"github.com/aretw0/ntmtrace/pkg/domain"
)

// pathTrace collects rendered configurations, keeping the first occurrence of
// each rendering.
type pathTrace struct {
	lines  []string
	states []string
	seen   map[string]struct{}
}

func newPathTrace() *pathTrace {
	return &pathTrace{seen: make(map[string]struct{})}
}

func (p *pathTrace) add(c *domain.Configuration) {
	s := c.PathString()
	if _, ok := p.seen[s]; ok {
		return
	}
	p.seen[s] = struct{}{}
	p.lines = append(p.lines, s)
	p.states = append(p.states, c.State)
}

// samplePath renders the first configuration of every level up to and
// including depth. The result is a level-indexed sampling, not necessarily the
// lineage of the terminal configuration.
func (w *walker) samplePath(depth int) *pathTrace {
	p := newPathTrace()
	for d := 0; d <= depth; d++ {
		p.add(w.samples[d])
	}
	return p
}

// acceptAt reports a configuration that was already accepting when dequeued.
func (w *walker) acceptAt(depth int, config *domain.Configuration) {
	p := w.samplePath(depth)
	p.add(config)
	w.finish(domain.OutcomeAccepted, depth, "Path to acceptance:", p)
}

// acceptVia reports a transition into the accept state. The final
// configuration pairs the accept state with the tape and head as they were
// before the transition; the write and move are not applied.
func (w *walker) acceptVia(depth int, config *domain.Configuration, t domain.Transition) {
	p := w.samplePath(depth)
	p.add(config)
	p.add(domain.NewConfiguration(t.Next, config.Tape, config.Head))
	w.finish(domain.OutcomeAccepted, depth+1, "Path to acceptance:", p)
}

// reject reports that no configuration survived past depth.
func (w *walker) reject(depth int) {
	w.finish(domain.OutcomeRejected, depth, "Longest path to rejection:", w.samplePath(depth))
}

func (w *walker) finish(outcome domain.Outcome, steps int, label string, p *pathTrace) {
	w.report.Outcome = outcome
	w.report.Steps = steps
	w.report.Path = p.lines
	w.report.States = p.states
	if outcome == domain.OutcomeAccepted {
		w.emit(fmt.Sprintf("String accepted in %d steps", steps))
	} else {
		w.emit(fmt.Sprintf("String rejected in %d steps", steps))
	}
	w.emit(label)
	w.report.Lines = append(w.report.Lines, p.lines...)
}
