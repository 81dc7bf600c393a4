package models

import "time"

// ChannelType classifies how a channel acquires leads.
type ChannelType string

const (
	ChannelInbound ChannelType = "Inbound"
	ChannelPaid    ChannelType = "Paid"
	ChannelUnknown ChannelType = "Unknown"
)

// ChannelStatus is the operational state of a channel.
type ChannelStatus string

const (
	StatusActive        ChannelStatus = "Active"
	StatusPaused        ChannelStatus = "Paused"
	StatusInDevelopment ChannelStatus = "In Development"
	StatusInactive      ChannelStatus = "Inactive"
)

// Priority ranks a channel within the funnel strategy.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ChannelRecord is one lead-generation source with its current-period numbers.
// CPL == 0 means organic/free acquisition, not missing data.
type ChannelRecord struct {
	Name           string        `json:"name"`
	Type           ChannelType   `json:"type"`
	Status         ChannelStatus `json:"status"`
	Priority       Priority      `json:"priority"`
	Budget         float64       `json:"budget"`
	Leads          int           `json:"leads"`
	CPL            float64       `json:"cpl"`
	ConversionRate float64       `json:"conversion_rate"` // 0-100
}

// KpiSnapshot maps metric name to value for one reporting period.
type KpiSnapshot map[string]float64

// Canonical KPI metric names (keys of KpiSnapshot).
const (
	KPITotalLeads    = "Total Leads"
	KPITotalMeetings = "Total Meetings"
	KPITotalDeals    = "Total Deals"
	KPIPipelineValue = "Pipeline Value"
	KPIAvgCPL        = "Avg CPL"
	KPILeadToMeeting = "Lead to Meeting %"
	KPIMeetingToDeal = "Meeting to Deal %"
	KPIAvgDealSize   = "Avg Deal Size"
)

// WeeklyTrendPoint holds per-channel lead counts for one week.
type WeeklyTrendPoint struct {
	WeekStart time.Time      `json:"week_start"`
	Leads     map[string]int `json:"leads"`
}

// AlertKind is the severity of an alert.
type AlertKind string

const (
	AlertUrgent  AlertKind = "urgent"
	AlertWarning AlertKind = "warning"
	AlertInfo    AlertKind = "info"
)

// Alert is one threshold finding. Alerts carry no identity and are
// recomputed from scratch on every evaluation.
type Alert struct {
	Kind    AlertKind `json:"kind"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Action  string    `json:"action"`
}

// ThresholdConfig holds the alert trigger boundaries for a session.
type ThresholdConfig struct {
	MaxCPL              float64 `json:"max_cpl"`
	MinConversionRate   float64 `json:"min_conversion_rate"`
	MinLeadsPerWeek     float64 `json:"min_leads_per_week"`
	PartnerInactiveDays int     `json:"partner_inactive_days"`
	ContentOverdueDays  int     `json:"content_overdue_days"`
}

// BenchmarkConfig holds the target values KPIs are measured against.
type BenchmarkConfig struct {
	TargetCPL           float64 `json:"target_cpl"`
	TargetLeadToMeeting float64 `json:"target_lead_to_meeting"`
	TargetMeetingToDeal float64 `json:"target_meeting_to_deal"`
	MonthlyLeadGoal     float64 `json:"monthly_lead_goal"`
	MonthlyRevenueGoal  float64 `json:"monthly_revenue_goal"`
}

// ContentEntry is one row of the content calendar.
type ContentEntry struct {
	Topic   string     `json:"topic"`
	Status  string     `json:"status"`
	DueDate *time.Time `json:"due_date,omitempty"`
}

// PartnerRecord is one referral partner's activity summary.
type PartnerRecord struct {
	Name           string     `json:"name"`
	LastReferral   *time.Time `json:"last_referral,omitempty"`
	TotalReferrals int        `json:"total_referrals"`
	AvgDealSize    float64    `json:"avg_deal_size"`
}

// Table is one workbook tab as loosely-typed cells: a header row of column
// names and the data rows beneath it.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// TabValidation is the structural check result for one expected tab.
type TabValidation struct {
	Exists  bool     `json:"exists"`
	Rows    int      `json:"rows"`
	Columns int      `json:"columns"`
	Status  string   `json:"status"` // Valid, Warning, Missing
	Issues  []string `json:"issues,omitempty"`
}
