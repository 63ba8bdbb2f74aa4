package ingest

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/liquidation-cli/internal/config"
	"github.com/sells-group/liquidation-cli/internal/model"
)

// ReadCSV parses a CSV event log. The first line is the header; every
// subsequent line becomes one raw event row in source order. Ragged rows are
// tolerated since check rows leave the order-level columns empty.
func ReadCSV(path string, cfg config.IngestConfig) ([]model.RawEventRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: open csv")
	}
	defer f.Close()

	rows, err := readCSV(f, cfg)
	if err != nil {
		return nil, err
	}

	zap.L().Info("ingest: read csv", zap.String("path", path), zap.Int("rows", len(rows)))
	return rows, nil
}

func readCSV(r io.Reader, cfg config.IngestConfig) ([]model.RawEventRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, eris.Wrap(err, "ingest: read csv header")
	}
	mapper, err := newRowMapper(header, cfg)
	if err != nil {
		return nil, err
	}

	var rows []model.RawEventRow
	for i := 0; ; i++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: read csv row %d", i)
		}
		rows = append(rows, mapper.mapRow(record, i))
	}
	return rows, nil
}
