// Package ingest reads repair-order event logs from CSV and XLSX exports
// into raw event rows.
package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/liquidation-cli/internal/config"
	"github.com/sells-group/liquidation-cli/internal/model"
)

// Logical field names accepted in the ingest column map.
const (
	FieldOrderID       = "order_id"
	FieldCOGS          = "cogs"
	FieldDisposition   = "disposition"
	FieldProduct       = "product"
	FieldCategory      = "category"
	FieldRepairReason  = "repair_reason"
	FieldStartedOn     = "started_on"
	FieldCompletedOn   = "completed_on"
	FieldScheduledDate = "scheduled_date"
	FieldShippedDate   = "shipped_date"
	FieldCheckTitle    = "check_title"
	FieldCheckStatus   = "check_status"
	FieldCheckAuto     = "check_auto"
)

// defaultColumns maps logical fields to the source export's column headers.
func defaultColumns() map[string]string {
	return map[string]string{
		FieldOrderID:       "LPN",
		FieldCOGS:          "Amazon COGS",
		FieldDisposition:   "Disposition",
		FieldProduct:       "Product",
		FieldCategory:      "Product Category",
		FieldRepairReason:  "Result of Repair",
		FieldStartedOn:     "Started On",
		FieldCompletedOn:   "Completed On",
		FieldScheduledDate: "Scheduled Date",
		FieldShippedDate:   "Shipped Date",
		FieldCheckTitle:    "Checks/Title",
		FieldCheckStatus:   "Checks/Status",
		FieldCheckAuto:     "Checks/Failed by decision logic Automatically",
	}
}

// rowMapper resolves logical fields to column positions in one source file.
type rowMapper struct {
	idx map[string]int // field -> column index, missing fields absent
}

// newRowMapper binds the configured column map (defaults overlaid by any
// overrides) against the source header row. Header matching trims
// whitespace and ignores case. The order-id, check-title, and cost columns
// are required; the rest degrade to empty values.
func newRowMapper(header []string, cfg config.IngestConfig) (*rowMapper, error) {
	columns := defaultColumns()
	for field, col := range cfg.ColumnMap {
		columns[field] = col
	}

	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[strings.ToLower(strings.TrimSpace(h))] = i
	}

	idx := make(map[string]int, len(columns))
	for field, col := range columns {
		if i, ok := byName[strings.ToLower(strings.TrimSpace(col))]; ok {
			idx[field] = i
		}
	}

	for _, required := range []string{FieldOrderID, FieldCOGS, FieldCheckTitle} {
		if _, ok := idx[required]; !ok {
			return nil, eris.Errorf("ingest: source is missing required column %q (field %s)", columns[required], required)
		}
	}

	zap.L().Debug("ingest: resolved column map",
		zap.Int("columns", len(header)),
		zap.Int("mapped", len(idx)),
	)

	return &rowMapper{idx: idx}, nil
}

func (m *rowMapper) cell(row []string, field string) string {
	i, ok := m.idx[field]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// mapRow converts one source row into a RawEventRow. index is the zero-based
// data-row position, excluding the header line.
func (m *rowMapper) mapRow(row []string, index int) model.RawEventRow {
	r := model.RawEventRow{
		Index:          index,
		OrderID:        m.cell(row, FieldOrderID),
		DispositionRaw: m.cell(row, FieldDisposition),
		Product:        m.cell(row, FieldProduct),
		Category:       m.cell(row, FieldCategory),
		RepairReason:   m.cell(row, FieldRepairReason),
		CheckTitle:     m.cell(row, FieldCheckTitle),
		CheckStatusRaw: m.cell(row, FieldCheckStatus),
		AutoDecided:    parseBool(m.cell(row, FieldCheckAuto)),
	}
	r.COGS = parseMoney(m.cell(row, FieldCOGS))
	r.StartedAt = parseDate(m.cell(row, FieldStartedOn))
	r.CompletedAt = parseDate(m.cell(row, FieldCompletedOn))
	r.ScheduledAt = parseDate(m.cell(row, FieldScheduledDate))
	r.ShippedAt = parseDate(m.cell(row, FieldShippedDate))
	return r
}

// parseMoney parses a currency cell, tolerating "$" and thousands commas.
// Empty or unparseable cells are nil, which marks the row as a non-header.
func parseMoney(s string) *float64 {
	s = strings.TrimSpace(strings.ReplaceAll(strings.TrimPrefix(s, "$"), ",", ""))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
	"1/2/2006",
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// parseBool recognizes the export's spreadsheet-style truthy spellings.
func parseBool(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRUE", "T", "1", "YES", "Y":
		return true
	}
	return false
}
