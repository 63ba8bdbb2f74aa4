package model

import "time"

// RunStatus represents the current state of an analysis run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// RunSummary is the persisted digest of a completed analysis run.
type RunSummary struct {
	Orders             int     `json:"orders" yaml:"orders"`
	Liquidated         int     `json:"liquidated" yaml:"liquidated"`
	Sellable           int     `json:"sellable" yaml:"sellable"`
	UnknownDisposition int     `json:"unknown_disposition" yaml:"unknown_disposition"`
	CheckColumns       int     `json:"check_columns" yaml:"check_columns"`
	CheckRowsKept      int     `json:"check_rows_kept" yaml:"check_rows_kept"`
	CheckRowsDropped   int     `json:"check_rows_dropped" yaml:"check_rows_dropped"`
	PatternGroups      int     `json:"pattern_groups" yaml:"pattern_groups"`
	TotalValueLost     float64 `json:"total_value_lost" yaml:"total_value_lost"`
	PotentialRecovery  float64 `json:"potential_recovery" yaml:"potential_recovery"`
	FindingCount       int     `json:"finding_count" yaml:"finding_count"`
	Error              string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// AnalysisRun is one recorded execution of the pipeline over a source file.
type AnalysisRun struct {
	ID        string      `json:"id"`
	Source    string      `json:"source"`
	Status    RunStatus   `json:"status"`
	Summary   *RunSummary `json:"summary,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
