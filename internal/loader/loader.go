// Package loader turns the uploaded 14-tab workbook into typed records.
// Parsing fails soft everywhere except a structurally unreadable file:
// missing tabs and columns degrade to defaults, malformed cells to zero,
// so the engines downstream never see untyped or partial data.
package loader

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/guavas/leadgen-go/internal/models"
)

// ExpectedTabs is the workbook structure the dashboard understands.
var ExpectedTabs = []string{
	"1_Funnel Master Map",
	"2_Content Elements",
	"3_Content Calendar",
	"4_Lead Magnets",
	"5_Email Sequences",
	"6_Customer Journey",
	"7_Retargeting",
	"8_Website Elements",
	"9_Attribution Tracking",
	"10_Testing Log",
	"11_Lead Scoring",
	"12_KPI Dashboard",
	"13_Partner Performance",
	"13_Gaps & Opportunities",
}

// Tab names the extractors read from.
const (
	tabFunnelMap   = "1_Funnel Master Map"
	tabContent     = "3_Content Calendar"
	tabAttribution = "9_Attribution Tracking"
	tabKPI         = "12_KPI Dashboard"
	tabPartners    = "13_Partner Performance"
)

// ReadWorkbook parses an xlsx stream into one Table per sheet. This is the
// only hard failure point in the pipeline: an unreadable file returns an
// error, everything past it degrades soft.
func ReadWorkbook(r io.Reader) (map[string]models.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	tables := make(map[string]models.Table)
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		tables[sheet] = toTable(sheet, rows)
	}
	return tables, nil
}

// toTable treats the first row as the header and the rest as data.
func toTable(name string, rows [][]string) models.Table {
	t := models.Table{Name: name}
	if len(rows) == 0 {
		return t
	}
	for _, c := range rows[0] {
		t.Columns = append(t.Columns, strings.TrimSpace(c))
	}
	t.Rows = rows[1:]
	return t
}

// Validate checks each expected tab for presence and shape. Problems are
// reported, never fatal.
func Validate(tables map[string]models.Table) map[string]models.TabValidation {
	out := make(map[string]models.TabValidation, len(ExpectedTabs))
	for _, name := range ExpectedTabs {
		t, ok := tables[name]
		if !ok {
			out[name] = models.TabValidation{
				Status: "Missing",
				Issues: []string{"Tab not found in workbook"},
			}
			continue
		}

		v := models.TabValidation{
			Exists:  true,
			Rows:    len(t.Rows),
			Columns: len(t.Columns),
			Status:  "Valid",
		}
		if len(t.Rows) == 0 {
			v.Status = "Warning"
			v.Issues = append(v.Issues, "No data rows")
		}
		empty := 0
		for _, row := range t.Rows {
			if isEmptyRow(row) {
				empty++
			}
		}
		if len(t.Rows) > 0 && empty*2 > len(t.Rows) {
			v.Status = "Warning"
			v.Issues = append(v.Issues, fmt.Sprintf("%d empty rows", empty))
		}
		out[name] = v
	}
	return out
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
