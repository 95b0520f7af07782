package cli

import (
	"context"
	"io"
	"os"

	"github.com/aretw0/ntmtrace"
	"github.com/aretw0/ntmtrace/internal/presentation/tui"
	"github.com/aretw0/ntmtrace/pkg/domain"
)

// RunOptions configure a batch run.
type RunOptions struct {
	Output io.Writer
	// Rich renders each report as styled Markdown when Output is a terminal.
	Rich bool
	// Quiet suppresses the copy on Output; output.txt is still written.
	Quiet bool
}

// RunBatch runs the configured batch layout and returns the reports.
func RunBatch(ctx context.Context, app *App, opts RunOptions) ([]*domain.Report, error) {
	cfg := app.Config
	r := &ntmtrace.Runner{
		ParamsPath:  cfg.ParamsPath(app.Dir),
		MachinePath: cfg.MachinePath(app.Dir),
		OutputPath:  cfg.OutputPath(app.Dir),
	}
	if !opts.Quiet {
		r.Output = opts.Output
	}
	if opts.Rich && !opts.Quiet && isTerminal(opts.Output) {
		tui.PrintBanner(opts.Output)
		r.Renderer = tui.RenderMarkdown
	}

	app.Logger.Info("Running batch", "params", r.ParamsPath, "output", r.OutputPath)
	reports, err := r.Run(ctx, app.Engine)
	if err != nil {
		return nil, err
	}
	app.Logger.Info("Batch complete", "reports", len(reports))
	return reports, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && tui.IsTerminal(f)
}
