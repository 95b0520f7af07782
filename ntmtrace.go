package ntmtrace

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/ntmtrace/internal/runtime"
	"github.com/aretw0/ntmtrace/pkg/domain"
	"github.com/aretw0/ntmtrace/pkg/ports"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Engine is the high-level entry point for the ntmtrace library.
// It wraps the internal runtime and adds report identity, persistence and
// batch execution.
type Engine struct {
	runtime     *runtime.Engine
	store       ports.ReportStore
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	now         func() time.Time
	newID       func() string
	parallelism int
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStore persists every report produced by Simulate.
func WithStore(store ports.ReportStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithClock overrides the clock used to timestamp reports.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithIDGenerator overrides report ID generation (default: UUIDv4).
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) {
		e.newID = newID
	}
}

// WithParallelism sets how many inputs RunBatch simulates at once.
// Values below 1 are treated as 1.
func WithParallelism(n int) Option {
	return func(e *Engine) {
		e.parallelism = n
	}
}

// New initializes a new Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{
		now:         time.Now,
		newID:       uuid.NewString,
		parallelism: 1,
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.parallelism < 1 {
		eng.parallelism = 1
	}

	eng.runtime = runtime.NewEngine(
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	)
	return eng
}

// Simulate runs one input through m. The report gets a fresh ID and
// timestamp and is saved if a store is configured. Only params' limits and
// debug flag are used. A simulation is not interruptible once started;
// ctx is checked before it begins and passed to the store.
func (e *Engine) Simulate(ctx context.Context, m *domain.Machine, input string, params domain.RunParameters) (*domain.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := e.runtime.Simulate(m, input, runtime.Bounds{
		MaxDepth: params.MaxDepth,
		MaxSteps: params.MaxSteps,
		Debug:    params.Debug,
	})
	report.ID = e.newID()
	report.CreatedAt = e.now().UTC()

	e.logger.Info("simulation complete",
		"report_id", report.ID,
		"machine", m.Name,
		"input", input,
		"outcome", report.Outcome,
		"steps", report.Steps,
	)

	if e.store != nil {
		if err := e.store.Save(ctx, report.ID, report); err != nil {
			return nil, fmt.Errorf("failed to save report %s: %w", report.ID, err)
		}
	}
	return report, nil
}

// RunBatch simulates every params.InputStrings entry and returns the reports
// in input order, independent of parallelism.
func (e *Engine) RunBatch(ctx context.Context, m *domain.Machine, params domain.RunParameters) ([]*domain.Report, error) {
	if len(params.InputStrings) == 0 {
		return nil, domain.ErrEmptyInputs
	}

	reports := make([]*domain.Report, len(params.InputStrings))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)

	for i, input := range params.InputStrings {
		g.Go(func() error {
			r, err := e.Simulate(gctx, m, input, params)
			if err != nil {
				return fmt.Errorf("input %q: %w", input, err)
			}
			reports[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Report loads a stored report.
func (e *Engine) Report(ctx context.Context, id string) (*domain.Report, error) {
	if e.store == nil {
		return nil, domain.ErrReportNotFound
	}
	return e.store.Load(ctx, id)
}

// Store returns the configured report store, or nil.
func (e *Engine) Store() ports.ReportStore {
	return e.store
}

// FormatBatch renders reports as one document: each report's lines followed
// by a newline element, all joined with newlines. Consecutive reports are
// therefore separated by two blank lines.
func FormatBatch(reports []*domain.Report) string {
	var all []string
	for _, r := range reports {
		all = append(all, r.Lines...)
		all = append(all, "\n")
	}
	return strings.Join(all, "\n")
}
