package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/liquidation-cli/internal/config"
)

const sampleCSV = `LPN,Amazon COGS,Disposition,Product,Product Category,Result of Repair,Started On,Completed On,Checks/Title,Checks/Status,Checks/Failed by decision logic Automatically
LPN001,"$1,200.00",Liquidated,Laptop X,Electronics/Laptops,Customer Damaged,2025-03-01,2025-03-05,,,
,,,,,,,,Is it Fraud?,Failed,
,,,,,,,,Does the item work?,Passed,FALSE
,,,,,,,,Is it IOG?,Passed,TRUE
LPN002,$800.00,Sellable,Phone Z,Electronics/Phones,No Defect,2025-03-02,2025-03-03,,,
,,,,,,,,Does the item work?,Passed,
`

func TestReadCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "events.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	rows, err := ReadCSV(path, config.IngestConfig{})
	require.NoError(t, err)
	require.Len(t, rows, 6)

	// Header row: order attributes populated, no check fields.
	h := rows[0]
	assert.Equal(t, "LPN001", h.OrderID)
	require.NotNil(t, h.COGS)
	assert.Equal(t, 1200.0, *h.COGS)
	assert.Equal(t, "Liquidated", h.DispositionRaw)
	require.NotNil(t, h.StartedAt)
	assert.True(t, h.IsHeader())

	// Check row: inherits nothing yet, carries the check fields.
	c := rows[1]
	assert.Empty(t, c.OrderID)
	assert.True(t, c.IsCheck())
	assert.Equal(t, "Is it Fraud?", c.CheckTitle)
	assert.False(t, c.AutoDecided)

	assert.True(t, rows[3].AutoDecided)
	assert.Equal(t, "LPN002", rows[4].OrderID)
}

func TestReadCSV_MissingRequiredColumn(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("Foo,Bar\n1,2\n"), 0o644))

	_, err := ReadCSV(path, config.IngestConfig{})
	require.Error(t, err)
}

func TestReadCSV_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"), config.IngestConfig{})
	require.Error(t, err)
}

func TestReadCSVReader_IndexesExcludeHeader(t *testing.T) {
	t.Parallel()

	rows, err := readCSV(strings.NewReader(sampleCSV), config.IngestConfig{})
	require.NoError(t, err)

	for i, r := range rows {
		assert.Equal(t, i, r.Index)
	}
}
