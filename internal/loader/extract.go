package loader

import (
	"strconv"
	"strings"
	"time"

	"github.com/guavas/leadgen-go/internal/metrics"
	"github.com/guavas/leadgen-go/internal/models"
)

// Dataset is everything the session keeps from one upload.
type Dataset struct {
	Tables     map[string]models.Table
	Channels   []models.ChannelRecord
	KPIs       models.KpiSnapshot
	Content    []models.ContentEntry
	Partners   []models.PartnerRecord
	Validation map[string]models.TabValidation
}

// Extract builds the typed dataset from parsed tables. This is the single
// normalization boundary: past here every value is typed and defaulted.
func Extract(tables map[string]models.Table) Dataset {
	return Dataset{
		Tables:     tables,
		Channels:   Channels(tables),
		KPIs:       metrics.ComputeKPIs(tables[tabKPI]),
		Content:    ContentCalendar(tables),
		Partners:   Partners(tables),
		Validation: Validate(tables),
	}
}

// cols maps lower-cased column names to their index, resolved once per tab
// so a shifted sheet layout misses by name instead of silently reading the
// wrong column.
type cols map[string]int

func resolveColumns(t models.Table) cols {
	m := make(cols, len(t.Columns))
	for i, name := range t.Columns {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, dup := m[key]; !dup {
			m[key] = i
		}
	}
	return m
}

// str returns the named cell trimmed, or def when the column or cell is
// absent.
func (c cols) str(row []string, name, def string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return def
	}
	s := strings.TrimSpace(row[i])
	if s == "" {
		return def
	}
	return s
}

func (c cols) num(row []string, name string) float64 {
	v, _ := parseNumber(c.str(row, name, ""))
	return v
}

func (c cols) date(row []string, name string) *time.Time {
	return parseDate(c.str(row, name, ""))
}

// Channels reads the Funnel Master Map and enriches it with lead counts and
// CPL from Attribution Tracking, matched by channel name. No channels at
// all falls back to the demo dataset.
func Channels(tables map[string]models.Table) []models.ChannelRecord {
	var out []models.ChannelRecord

	if t, ok := tables[tabFunnelMap]; ok {
		c := resolveColumns(t)
		for _, row := range t.Rows {
			name := c.str(row, "channel", "")
			if name == "" || strings.HasPrefix(name, "FUNNEL") {
				continue
			}
			out = append(out, models.ChannelRecord{
				Name:           name,
				Type:           parseChannelType(c.str(row, "type", "")),
				Status:         parseChannelStatus(c.str(row, "status", "")),
				Priority:       parsePriority(c.str(row, "priority", "")),
				Budget:         c.num(row, "budget"),
				Leads:          int(c.num(row, "leads")),
				CPL:            c.num(row, "cpl"),
				ConversionRate: c.num(row, "conversion"),
			})
		}
	}

	if t, ok := tables[tabAttribution]; ok && len(out) > 0 {
		c := resolveColumns(t)
		for _, row := range t.Rows {
			name := c.str(row, "channel", "")
			if name == "" {
				continue
			}
			for i := range out {
				if out[i].Name == name {
					out[i].Leads = int(c.num(row, "leads"))
					out[i].CPL = c.num(row, "cpl")
					if conv := c.num(row, "conversion"); conv > 0 {
						out[i].ConversionRate = conv
					}
					break
				}
			}
		}
	}

	if len(out) == 0 {
		return DemoChannels()
	}
	return out
}

// ContentCalendar reads the content calendar tab; rows without a topic are
// skipped, unparseable due dates stay nil.
func ContentCalendar(tables map[string]models.Table) []models.ContentEntry {
	t, ok := tables[tabContent]
	if !ok {
		return nil
	}
	c := resolveColumns(t)
	var out []models.ContentEntry
	for _, row := range t.Rows {
		topic := c.str(row, "topic", "")
		if topic == "" {
			continue
		}
		due := c.date(row, "due_date")
		if due == nil {
			due = c.date(row, "due date")
		}
		out = append(out, models.ContentEntry{
			Topic:   topic,
			Status:  c.str(row, "status", ""),
			DueDate: due,
		})
	}
	return out
}

// Partners reads the partner performance tab.
func Partners(tables map[string]models.Table) []models.PartnerRecord {
	t, ok := tables[tabPartners]
	if !ok {
		return nil
	}
	c := resolveColumns(t)
	var out []models.PartnerRecord
	for _, row := range t.Rows {
		name := c.str(row, "partner name", "")
		if name == "" {
			continue
		}
		out = append(out, models.PartnerRecord{
			Name:           name,
			LastReferral:   c.date(row, "last referral"),
			TotalReferrals: int(c.num(row, "total referrals")),
			AvgDealSize:    c.num(row, "avg deal size"),
		})
	}
	return out
}

func parseChannelType(s string) models.ChannelType {
	switch strings.ToLower(s) {
	case "inbound":
		return models.ChannelInbound
	case "paid":
		return models.ChannelPaid
	default:
		return models.ChannelUnknown
	}
}

func parseChannelStatus(s string) models.ChannelStatus {
	switch strings.ToLower(s) {
	case "active":
		return models.StatusActive
	case "paused":
		return models.StatusPaused
	case "in development":
		return models.StatusInDevelopment
	default:
		return models.StatusInactive
	}
}

func parsePriority(s string) models.Priority {
	switch strings.ToLower(s) {
	case "high":
		return models.PriorityHigh
	case "low":
		return models.PriorityLow
	default:
		return models.PriorityMedium
	}
}

// parseNumber reads loosely formatted numeric cells ("£1,234.50", "23.5%").
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
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

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01-02-06",
	"2006-01-02 15:04:05",
	"2 Jan 2006",
	"Jan 2, 2006",
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
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
