package ports

import (
	"context"

	"github.com/aretw0/ntmtrace/pkg/domain"
)

// ReportStore defines the interface for persisting simulation reports.
type ReportStore interface {
	// Save persists the report under id, replacing any previous report.
	Save(ctx context.Context, id string, report *domain.Report) error

	// Load retrieves the report for id.
	// Returns domain.ErrReportNotFound if the report does not exist.
	Load(ctx context.Context, id string) (*domain.Report, error)

	// Delete removes the report. Deleting a missing report is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored reports.
	List(ctx context.Context) ([]string, error)
}
