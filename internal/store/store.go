// Package store persists analysis runs and their data-quality findings.
package store

import (
	"context"

	"github.com/sells-group/liquidation-cli/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Source string          `json:"source,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for run history.
type Store interface {
	// Runs
	CreateRun(ctx context.Context, source string) (*model.AnalysisRun, error)
	CompleteRun(ctx context.Context, runID string, summary *model.RunSummary) error
	FailRun(ctx context.Context, runID string, cause string) error
	GetRun(ctx context.Context, runID string) (*model.AnalysisRun, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.AnalysisRun, error)

	// Findings
	SaveFindings(ctx context.Context, runID string, findings []model.Finding) error
	ListFindings(ctx context.Context, runID string) ([]model.Finding, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
