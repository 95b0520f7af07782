package ntmtrace

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aretw0/ntmtrace/internal/adapters"
	"github.com/aretw0/ntmtrace/internal/validator"
	"github.com/aretw0/ntmtrace/pkg/domain"
	"github.com/aretw0/ntmtrace/pkg/ports"
)

// Runner executes a batch from files: it reads the parameter file and the
// machine description, simulates every input and writes the combined output.
type Runner struct {
	// ParamsPath is the key=value parameter file (input/input.txt).
	ParamsPath string
	// MachinePath is the machine description (input/NTM.csv). A "machine"
	// key in the parameter file takes precedence, relative to ParamsPath.
	MachinePath string
	// Loader, when set, supplies the machine instead of MachinePath.
	Loader ports.MachineLoader
	// OutputPath receives the plain batch output (output/output.txt).
	OutputPath string
	// Output, when set, receives a copy of the output.
	Output io.Writer
	// Renderer, when set, replaces the plain copy sent to Output with one
	// rendering per report.
	Renderer ReportRenderer
}

// ReportRenderer formats a report for display, e.g. as styled Markdown.
type ReportRenderer func(*domain.Report) (string, error)

// NewRunner creates a Runner with the classic layout under dir.
func NewRunner(dir string) *Runner {
	return &Runner{
		ParamsPath:  filepath.Join(dir, "input", "input.txt"),
		MachinePath: filepath.Join(dir, "input", "NTM.csv"),
		OutputPath:  filepath.Join(dir, "output", "output.txt"),
	}
}

// Run executes the batch with engine.
func (r *Runner) Run(ctx context.Context, engine *Engine) ([]*domain.Report, error) {
	for _, dir := range []string{filepath.Dir(r.OutputPath), filepath.Dir(r.ParamsPath)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to ensure directory %s: %w", dir, err)
		}
	}

	params, err := adapters.LoadParams(r.ParamsPath)
	if err != nil {
		return nil, err
	}

	m, err := r.loader(params).LoadMachine()
	if err != nil {
		return nil, err
	}
	if err := validator.ValidateMachine(m); err != nil {
		engine.logger.Warn("machine description has problems", "machine", m.Name, "error", err)
	}
	for key := range params.Extra {
		engine.logger.Debug("ignoring unknown parameter", "key", key)
	}

	reports, err := engine.RunBatch(ctx, m, *params)
	if err != nil {
		return nil, err
	}

	out := FormatBatch(reports)
	if err := os.WriteFile(r.OutputPath, []byte(out), 0644); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}

	if r.Output != nil {
		if err := r.echo(reports, out); err != nil {
			return nil, err
		}
	}
	return reports, nil
}

func (r *Runner) loader(params *domain.RunParameters) ports.MachineLoader {
	if r.Loader != nil {
		return r.Loader
	}
	path := r.MachinePath
	if params.Machine != "" {
		path = params.Machine
		if !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(r.ParamsPath), path)
		}
	}
	return adapters.NewFileLoader(path)
}

func (r *Runner) echo(reports []*domain.Report, plain string) error {
	if r.Renderer == nil {
		_, err := fmt.Fprintln(r.Output, plain)
		return err
	}
	for _, report := range reports {
		rendered, err := r.Renderer(report)
		if err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		if _, err := fmt.Fprint(r.Output, rendered); err != nil {
			return err
		}
	}
	return nil
}
