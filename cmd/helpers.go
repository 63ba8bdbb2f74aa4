package main

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/liquidation-cli/internal/ingest"
	"github.com/sells-group/liquidation-cli/internal/model"
	"github.com/sells-group/liquidation-cli/internal/pipeline"
	"github.com/sells-group/liquidation-cli/internal/store"
)

// loadEvents reads a source log, dispatching on file extension.
func loadEvents(path string) ([]model.RawEventRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ingest.ReadCSV(path, cfg.Ingest)
	case ".xlsx":
		return ingest.ReadXLSX(path, cfg.Ingest)
	}
	return nil, eris.Errorf("unsupported source format %q (want .csv or .xlsx)", filepath.Ext(path))
}

// runAnalysis loads a source file and runs the full pipeline over it.
func runAnalysis(ctx context.Context, path string) (*pipeline.Result, error) {
	rows, err := loadEvents(path)
	if err != nil {
		return nil, err
	}
	return pipeline.NewEngine(cfg.Analysis).Run(ctx, rows)
}

// openStore opens the configured run-history backend.
func openStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite", "":
		return store.NewSQLite(cfg.Store.DatabaseURL)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	}
	return nil, eris.Errorf("unknown store driver %q (want sqlite or postgres)", cfg.Store.Driver)
}
