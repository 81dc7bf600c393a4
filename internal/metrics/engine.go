package metrics

import "math"

// Weights holds the tunable scoring constants. The splits are product-tuned
// business parameters from the strategy document, kept adjustable rather
// than baked into the formulas.
type Weights struct {
	GrossMargin float64

	// Channel efficiency (0-100): volume + cost + conversion components.
	EfficiencyVolumeMax     float64
	EfficiencyCostMax       float64
	EfficiencyConversionMax float64
	EfficiencyFullLeads     float64 // leads needed for full volume points
	BenchmarkCPL            float64
	BenchmarkConversion     float64 // percent

	// Lead quality (0-10): funnel stages + deal size components.
	QualityStageMax float64 // points per funnel stage
	QualitySizeMax  float64
	QualityCap      float64
	TargetDealSize  float64

	// Content performance (0-100): reach + engagement + conversion.
	ContentReachMax      float64
	ContentEngagementMax float64
	ContentConversionMax float64
	ContentFullViews     float64
	ContentFullEngage    float64 // percent
	BenchmarkContentConv float64 // percent

	// Partner health (0-100): activity tiers + volume + quality.
	PartnerActivityRecent  float64 // referral within 30 days
	PartnerActivityLapsing float64 // within 60 days
	PartnerActivityStale   float64 // within 90 days
	PartnerVolumeMax       float64
	PartnerFullReferrals   float64
	PartnerQualityMax      float64
}

func DefaultWeights() Weights {
	return Weights{
		GrossMargin: 0.30,

		EfficiencyVolumeMax:     30,
		EfficiencyCostMax:       35,
		EfficiencyConversionMax: 35,
		EfficiencyFullLeads:     50,
		BenchmarkCPL:            25,
		BenchmarkConversion:     20,

		QualityStageMax: 2,
		QualitySizeMax:  4,
		QualityCap:      10,
		TargetDealSize:  47000,

		ContentReachMax:      30,
		ContentEngagementMax: 30,
		ContentConversionMax: 40,
		ContentFullViews:     500,
		ContentFullEngage:    5,
		BenchmarkContentConv: 2.5,

		PartnerActivityRecent:  40,
		PartnerActivityLapsing: 25,
		PartnerActivityStale:   10,
		PartnerVolumeMax:       30,
		PartnerFullReferrals:   10,
		PartnerQualityMax:      30,
	}
}

// Calculator evaluates the scoring heuristics against a set of weights.
// All methods are pure; percentage inputs are on a 0-100 scale throughout.
type Calculator struct {
	W Weights
}

func NewCalculator() *Calculator { return &Calculator{W: DefaultWeights()} }

// CostPerLead returns spend/leads, 0 when there are no leads.
func CostPerLead(spend float64, leads int) float64 {
	if leads <= 0 {
		return 0
	}
	return spend / float64(leads)
}

// ConversionRate returns the stageA→stageB conversion as a percentage.
func ConversionRate(stageA, stageB float64) float64 {
	if stageA == 0 || math.IsNaN(stageA) {
		return 0
	}
	return (stageB / stageA) * 100
}

// PeriodOverPeriodChange returns the MoM/WoW percentage change.
func PeriodOverPeriodChange(current, previous float64) float64 {
	if previous == 0 || math.IsNaN(previous) {
		return 0
	}
	return ((current - previous) / previous) * 100
}

// ReturnOnInvestment returns revenue/cost as a ratio (5.0 = 5:1).
func ReturnOnInvestment(revenue, cost float64) float64 {
	if cost == 0 || math.IsNaN(cost) {
		return 0
	}
	return revenue / cost
}

// LifetimeValue estimates customer LTV from deal size and repeat rate.
func (c *Calculator) LifetimeValue(avgDealSize, avgDealsPerCustomer float64) float64 {
	return avgDealSize * avgDealsPerCustomer * c.W.GrossMargin
}

// CACPaybackMonths returns months to recover acquisition cost from margin.
func (c *Calculator) CACPaybackMonths(cac, monthlyRevenuePerCustomer float64) float64 {
	monthlyProfit := monthlyRevenuePerCustomer * c.W.GrossMargin
	if monthlyProfit == 0 {
		return 0
	}
	return cac / monthlyProfit
}

// PipelineVelocity returns expected revenue per day moving through the
// pipeline: (opportunities × deal size × win rate) / cycle length.
func PipelineVelocity(opportunities int, avgDealSize, winRatePct, avgCycleDays float64) float64 {
	if avgCycleDays == 0 {
		return 0
	}
	return (float64(opportunities) * avgDealSize * (winRatePct / 100)) / avgCycleDays
}

// PipelineStage is one pipeline tranche with its close probability.
type PipelineStage struct {
	Value   float64 `json:"value"`
	WinRate float64 `json:"win_rate"` // percent
}

// WeightedPipeline sums stage values weighted by win probability.
func WeightedPipeline(stages []PipelineStage) float64 {
	var total float64
	for _, s := range stages {
		total += s.Value * (s.WinRate / 100)
	}
	return total
}

// Trend is a directional indicator for a KPI card.
type Trend struct {
	Direction string `json:"direction"` // up, down, neutral
	Symbol    string `json:"symbol"`    // ↑, ↓, →
	Color     string `json:"color"`     // success, danger, neutral
}

// TrendIndicator compares current vs previous. Changes under 1% read as
// neutral. reversePolarity flips the colour semantics (down is good, e.g.
// CPL) but never the direction.
func TrendIndicator(current, previous float64, reversePolarity bool) Trend {
	if math.IsNaN(current) || math.IsNaN(previous) || previous == 0 {
		return Trend{Direction: "neutral", Symbol: "→", Color: "neutral"}
	}
	change := ((current - previous) / math.Abs(previous)) * 100
	if math.Abs(change) < 1 {
		return Trend{Direction: "neutral", Symbol: "→", Color: "neutral"}
	}
	if change > 0 {
		color := "success"
		if reversePolarity {
			color = "danger"
		}
		return Trend{Direction: "up", Symbol: "↑", Color: color}
	}
	color := "danger"
	if reversePolarity {
		color = "success"
	}
	return Trend{Direction: "down", Symbol: "↓", Color: color}
}

// ChannelEfficiencyScore rates a channel 0-100 from lead volume, cost
// efficiency and conversion. CPL of zero is organic and earns full cost
// points.
func (c *Calculator) ChannelEfficiencyScore(leads int, cpl, conversionRatePct float64) float64 {
	w := c.W
	volume := math.Min(w.EfficiencyVolumeMax, float64(leads)/w.EfficiencyFullLeads*w.EfficiencyVolumeMax)

	cost := w.EfficiencyCostMax
	if cpl > 0 {
		cost = math.Min(w.EfficiencyCostMax, w.BenchmarkCPL/cpl*w.EfficiencyCostMax)
	}

	conversion := math.Min(w.EfficiencyConversionMax, conversionRatePct/w.BenchmarkConversion*w.EfficiencyConversionMax)

	return volume + cost + conversion
}

// LeadQualityScore rates lead quality 0-10 from funnel conversion rates and
// average deal size relative to target.
func (c *Calculator) LeadQualityScore(qualificationPct, meetingPct, dealPct, avgDealSize float64) float64 {
	w := c.W
	funnel := qualificationPct/100*w.QualityStageMax +
		meetingPct/100*w.QualityStageMax +
		dealPct/100*w.QualityStageMax

	size := math.Min(w.QualitySizeMax, avgDealSize/w.TargetDealSize*w.QualitySizeMax)

	return math.Min(w.QualityCap, funnel+size)
}

// ContentPerformanceScore rates a content piece 0-100 from reach,
// engagement and view-to-conversion rate.
func (c *Calculator) ContentPerformanceScore(views int, engagementPct float64, conversions int) float64 {
	w := c.W
	reach := math.Min(w.ContentReachMax, float64(views)/w.ContentFullViews*w.ContentReachMax)
	engagement := math.Min(w.ContentEngagementMax, engagementPct/w.ContentFullEngage*w.ContentEngagementMax)

	var conversion float64
	if views > 0 {
		actual := float64(conversions) / float64(views) * 100
		conversion = math.Min(w.ContentConversionMax, actual/w.BenchmarkContentConv*w.ContentConversionMax)
	}

	return reach + engagement + conversion
}

// PartnerHealthScore rates a referral partner 0-100 from recency of the
// last referral, all-time volume and average deal size.
func (c *Calculator) PartnerHealthScore(totalReferrals, daysSinceLastReferral int, avgDealSize float64) float64 {
	w := c.W
	var activity float64
	switch {
	case daysSinceLastReferral <= 30:
		activity = w.PartnerActivityRecent
	case daysSinceLastReferral <= 60:
		activity = w.PartnerActivityLapsing
	case daysSinceLastReferral <= 90:
		activity = w.PartnerActivityStale
	}

	volume := math.Min(w.PartnerVolumeMax, float64(totalReferrals)/w.PartnerFullReferrals*w.PartnerVolumeMax)
	quality := math.Min(w.PartnerQualityMax, avgDealSize/w.TargetDealSize*w.PartnerQualityMax)

	return activity + volume + quality
}
