package runtime

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/ntmtrace/pkg/domain"
)

// Bounds are the per-run budgets of a simulation.
type Bounds struct {
	MaxDepth domain.Limit
	MaxSteps domain.Limit
	Debug    bool
}

// Engine is the breadth-first NTM simulator.
// It holds no per-run state, so one Engine may serve concurrent simulations.
type Engine struct {
	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger used for engine diagnostics.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates a new engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Simulate explores every branch of m on input, level by level, until a
// configuration accepts, the frontier empties, or a budget is exhausted.
// The machine is only read.
func (e *Engine) Simulate(m *domain.Machine, input string, b Bounds) *domain.Report {
	w := &walker{
		machine: m,
		bounds:  b,
		hooks:   e.hooks,
		report: &domain.Report{
			Machine: m.Name,
			Input:   input,
		},
	}
	w.emit(fmt.Sprintf("Machine: %s", m.Name))
	w.emit(fmt.Sprintf("Input string: %s", input))
	initial := domain.InitialConfiguration(m.StartState, input)
	w.frontier = []*domain.Configuration{initial}
	w.samples = []*domain.Configuration{initial}

	w.run()

	e.logger.Debug("simulation finished",
		"machine", m.Name,
		"input", input,
		"outcome", w.report.Outcome,
		"steps", w.report.Steps,
		"levels", len(w.samples),
		"materialized", w.materialized,
	)
	if e.hooks.OnOutcome != nil {
		e.hooks.OnOutcome(domain.OutcomeEvent{
			Outcome:      w.report.Outcome,
			Steps:        w.report.Steps,
			Levels:       len(w.samples),
			Materialized: w.materialized,
		})
	}
	return w.report
}

// walker encapsulates the mutable state of one simulation.
// samples[d] is the first configuration of depth d; the rest of a level is
// dropped once the next frontier is built.
type walker struct {
	machine      *domain.Machine
	bounds       Bounds
	hooks        domain.LifecycleHooks
	frontier     []*domain.Configuration
	samples      []*domain.Configuration
	report       *domain.Report
	materialized int
}

func (w *walker) emit(line string) {
	w.report.Lines = append(w.report.Lines, line)
}

func (w *walker) debugf(format string, args ...any) {
	if w.bounds.Debug {
		w.emit("Debug: " + fmt.Sprintf(format, args...))
	}
}

// run drives the level loop. Every exit path sets the report outcome.
func (w *walker) run() {
	for depth := 0; w.bounds.MaxDepth.Allows(depth); depth++ {
		current := w.frontier
		if w.hooks.OnLevel != nil {
			w.hooks.OnLevel(domain.LevelEvent{Depth: depth, FrontierSize: len(current)})
		}

		next, done := w.expand(depth, current)
		if done {
			return
		}
		if len(next) == 0 {
			w.reject(depth)
			return
		}
		w.frontier = next
		w.samples = append(w.samples, next[0])
	}
	w.report.Outcome = domain.OutcomeDepthLimit
	w.report.Steps = len(w.samples) - 1
	w.emit(fmt.Sprintf("Execution stopped after max depth of %d", w.bounds.MaxDepth.Value()))
}

// expand builds the frontier of depth+1. It returns done when a terminal
// event fired mid-level; the report is complete in that case.
func (w *walker) expand(depth int, current []*domain.Configuration) ([]*domain.Configuration, bool) {
	accept := w.machine.AcceptState
	var next []*domain.Configuration

	for _, config := range current {
		w.debugf("Exploring configuration: %s", config)

		if config.State == accept {
			w.acceptAt(depth, config)
			return nil, true
		}

		symbol := config.Symbol()
		transitions, ok := w.machine.Lookup(config.State, symbol)
		if !ok {
			w.debugf("No transition found for ('%s', '%s'), implicitly rejecting", config.State, symbol)
			continue
		}

		for _, t := range transitions {
			w.debugf("Transition: %s + %s -> %s (%s, %s)", config.State, symbol, t.Next, t.Write, t.Move)

			if t.Next == accept {
				w.acceptVia(depth, config, t)
				return nil, true
			}

			child, pos, ok := config.Fork(t)
			if !ok {
				w.debugf("Head out of bounds at position %d", pos)
				if w.hooks.OnPrune != nil {
					w.hooks.OnPrune(domain.PruneEvent{Depth: depth, Position: pos})
				}
				continue
			}

			next = append(next, child)
			w.materialized++

			if w.bounds.MaxSteps.Reached(len(next)) {
				w.report.Outcome = domain.OutcomeStepLimit
				w.report.Steps = depth
				w.emit(fmt.Sprintf("Execution stopped after step limit of %d", w.bounds.MaxSteps.Value()))
				return nil, true
			}
		}
	}
	return next, false
}
