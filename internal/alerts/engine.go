// Package alerts evaluates the loaded funnel data against the session's
// thresholds. Evaluation is stateless: every call recomputes the full list
// from scratch, so identical inputs and clock produce identical output.
package alerts

import (
	"fmt"
	"time"

	"github.com/guavas/leadgen-go/internal/models"
)

// daysInactiveUnknown is reported when a partner has no referral date at all.
const daysInactiveUnknown = 999

// Evaluate runs the alert rules in fixed order: high-CPL per channel, one
// aggregated overdue-content alert, then one inactive-partner alert per
// partner. Within a rule, output follows input order.
func Evaluate(
	channels []models.ChannelRecord,
	content []models.ContentEntry,
	partners []models.PartnerRecord,
	th models.ThresholdConfig,
	now time.Time,
) []models.Alert {
	out := make([]models.Alert, 0)

	// Channels above the CPL ceiling. Zero-CPL channels are organic and
	// exempt regardless of threshold.
	for _, ch := range channels {
		if ch.CPL > th.MaxCPL && ch.CPL > 0 {
			out = append(out, models.Alert{
				Kind:    models.AlertWarning,
				Title:   fmt.Sprintf("%s: High CPL", ch.Name),
				Message: fmt.Sprintf("£%.2f exceeds target £%.2f", ch.CPL, th.MaxCPL),
				Action:  "Review campaign performance",
			})
		}
	}

	// Overdue content rolls up into a single alert.
	overdue := 0
	for _, e := range content {
		if e.DueDate != nil && e.DueDate.Before(now) && e.Status != "Completed" {
			overdue++
		}
	}
	if overdue > 0 {
		out = append(out, models.Alert{
			Kind:    models.AlertUrgent,
			Title:   fmt.Sprintf("%d content item(s) overdue", overdue),
			Message: "Review Content Calendar",
			Action:  "Complete or reschedule",
		})
	}

	// Partners with no referral inside the inactivity window.
	cutoff := now.AddDate(0, 0, -th.PartnerInactiveDays)
	for _, p := range partners {
		if p.Name == "" {
			continue
		}
		if p.LastReferral != nil && !p.LastReferral.Before(cutoff) {
			continue
		}
		days := daysInactiveUnknown
		if p.LastReferral != nil {
			days = int(now.Sub(*p.LastReferral).Hours() / 24)
		}
		out = append(out, models.Alert{
			Kind:    models.AlertInfo,
			Title:   fmt.Sprintf("Partner: %s", p.Name),
			Message: fmt.Sprintf("No referrals in %d days", days),
			Action:  "Re-engage partner",
		})
	}

	return out
}
