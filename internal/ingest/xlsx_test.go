package ingest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/liquidation-cli/internal/config"
)

func writeTestXLSX(t *testing.T, sheetName string, rows [][]string) string {
	t.Helper()

	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	require.NoError(t, err)

	for _, cells := range rows {
		row := sheet.AddRow()
		for _, v := range cells {
			row.AddCell().Value = v
		}
	}

	path := filepath.Join(t.TempDir(), "events.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestReadXLSX(t *testing.T) {
	t.Parallel()

	path := writeTestXLSX(t, "Export", [][]string{
		{"LPN", "Amazon COGS", "Disposition", "Checks/Title", "Checks/Status"},
		{"LPN001", "1200", "Liquidated", "", ""},
		{"", "", "", "Does the item work?", "Failed"},
	})

	rows, err := ReadXLSX(path, config.IngestConfig{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "LPN001", rows[0].OrderID)
	require.NotNil(t, rows[0].COGS)
	assert.Equal(t, 1200.0, *rows[0].COGS)
	assert.True(t, rows[1].IsCheck())
	assert.Equal(t, "Failed", rows[1].CheckStatusRaw)
}

func TestReadXLSX_NamedSheet(t *testing.T) {
	t.Parallel()

	path := writeTestXLSX(t, "Repairs", [][]string{
		{"LPN", "Amazon COGS", "Checks/Title"},
		{"LPN001", "500", ""},
	})

	rows, err := ReadXLSX(path, config.IngestConfig{SheetName: "Repairs"})
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = ReadXLSX(path, config.IngestConfig{SheetName: "Missing"})
	require.Error(t, err)
}

func TestReadXLSX_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := ReadXLSX(filepath.Join(t.TempDir(), "nope.xlsx"), config.IngestConfig{})
	require.Error(t, err)
}
