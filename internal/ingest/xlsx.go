package ingest

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/sells-group/liquidation-cli/internal/config"
	"github.com/sells-group/liquidation-cli/internal/model"
)

// ReadXLSX parses an XLSX event log. The configured sheet is used when set,
// otherwise the first sheet. The first row is the header.
func ReadXLSX(path string, cfg config.IngestConfig) ([]model.RawEventRow, error) {
	file, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: open xlsx")
	}
	if len(file.Sheets) == 0 {
		return nil, eris.New("ingest: xlsx has no sheets")
	}

	sheet := file.Sheets[0]
	if cfg.SheetName != "" {
		named, ok := file.Sheet[cfg.SheetName]
		if !ok {
			return nil, eris.Errorf("ingest: xlsx has no sheet %q", cfg.SheetName)
		}
		sheet = named
	}
	if len(sheet.Rows) == 0 {
		return nil, eris.Errorf("ingest: sheet %q is empty", sheet.Name)
	}

	header := cellValues(sheet.Rows[0])
	mapper, err := newRowMapper(header, cfg)
	if err != nil {
		return nil, err
	}

	rows := make([]model.RawEventRow, 0, len(sheet.Rows)-1)
	for i, row := range sheet.Rows[1:] {
		rows = append(rows, mapper.mapRow(cellValues(row), i))
	}

	zap.L().Info("ingest: read xlsx",
		zap.String("path", path),
		zap.String("sheet", sheet.Name),
		zap.Int("rows", len(rows)),
	)
	return rows, nil
}

func cellValues(row *xlsx.Row) []string {
	out := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		out[i] = c.String()
	}
	return out
}
