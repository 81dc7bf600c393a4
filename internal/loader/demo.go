package loader

import (
	"time"

	"github.com/guavas/leadgen-go/internal/metrics"
	"github.com/guavas/leadgen-go/internal/models"
)

// DemoChannels is the sample dataset shown before a real workbook is
// uploaded, and the fallback when one parses to no channels.
func DemoChannels() []models.ChannelRecord {
	return []models.ChannelRecord{
		{Name: "LinkedIn Organic", Type: models.ChannelInbound, Status: models.StatusActive, Priority: models.PriorityHigh, Budget: 0, Leads: 47, CPL: 8.20, ConversionRate: 14.9},
		{Name: "Webinar Program", Type: models.ChannelInbound, Status: models.StatusActive, Priority: models.PriorityHigh, Budget: 500, Leads: 38, CPL: 13.16, ConversionRate: 18.4},
		{Name: "Partner Referrals", Type: models.ChannelInbound, Status: models.StatusActive, Priority: models.PriorityHigh, Budget: 0, Leads: 25, CPL: 0, ConversionRate: 68.0},
		{Name: "Email Marketing", Type: models.ChannelInbound, Status: models.StatusActive, Priority: models.PriorityMedium, Budget: 200, Leads: 18, CPL: 11.11, ConversionRate: 22.2},
		{Name: "Google Ads", Type: models.ChannelPaid, Status: models.StatusActive, Priority: models.PriorityLow, Budget: 300, Leads: 5, CPL: 60.00, ConversionRate: 20.0},
		{Name: "SEO Organic", Type: models.ChannelInbound, Status: models.StatusActive, Priority: models.PriorityHigh, Budget: 0, Leads: 42, CPL: 0, ConversionRate: 12.8},
	}
}

// DemoDataset pairs the demo channels with default KPIs so every endpoint
// has something to show in demo mode.
func DemoDataset() Dataset {
	return Dataset{
		Channels: DemoChannels(),
		KPIs:     metrics.DefaultKPIs(),
	}
}

// trendBase is the typical weekly lead volume per channel the synthetic
// trend series oscillates around.
var trendBase = map[string]int{
	"LinkedIn Organic":  45,
	"Webinar Program":   35,
	"Partner Referrals": 20,
	"Email Marketing":   15,
	"SEO Organic":       38,
}

// WeeklyTrends generates the weekly lead series ending at now. There is no
// historical store, so the series is synthetic: base volume per channel
// with uniform jitter drawn from rnd.
func WeeklyTrends(now time.Time, weeks int, rnd metrics.Rand) []models.WeeklyTrendPoint {
	if rnd == nil {
		rnd = metrics.SystemRand()
	}
	if weeks <= 0 {
		return nil
	}
	out := make([]models.WeeklyTrendPoint, 0, weeks)
	for i := weeks - 1; i >= 0; i-- {
		p := models.WeeklyTrendPoint{
			WeekStart: now.AddDate(0, 0, -7*i),
			Leads:     make(map[string]int, len(trendBase)),
		}
		for _, ch := range trendChannels() {
			v := trendBase[ch] + rnd.Intn(20) - 10
			if v < 0 {
				v = 0
			}
			p.Leads[ch] = v
		}
		out = append(out, p)
	}
	return out
}

// trendChannels returns the synthetic channels in fixed order so seeded
// random draws are reproducible.
func trendChannels() []string {
	return []string{"LinkedIn Organic", "Webinar Program", "Partner Referrals", "Email Marketing", "SEO Organic"}
}
