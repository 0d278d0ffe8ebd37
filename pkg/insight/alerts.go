package insight

import (
	"fmt"
	"time"

	"github.com/dealscope/dealscope/pkg/crm"
)

// Alerts scans the full snapshot for blocked deals, overdue follow-ups, and
// SLA-breaching activities. Severity is two-level: each category classifies
// itself, and the whole panel gets a combined severity. Both use the full
// filtered counts; the per-category preview cap only trims what is shown.
func (e *Engine) Alerts(snap *crm.Snapshot, now time.Time) AlertReport {
	var blocked, overdue, breaches []AlertItem

	for _, d := range snap.Deals {
		if d.Stage.IsTerminal() || d.UpdatedAt == nil {
			continue
		}
		days := DaysSince(now, *d.UpdatedAt)
		if days >= e.t.BlockedDealMinDays {
			blocked = append(blocked, AlertItem{
				RecordID: d.ID,
				Label:    d.Title,
				Sublabel: fmt.Sprintf("Aucune mise à jour depuis %d jours", days),
			})
		}
	}

	for _, c := range snap.Contacts {
		if c.NextFollowupDate == nil {
			continue
		}
		if BeforeToday(now, *c.NextFollowupDate) {
			overdue = append(overdue, AlertItem{
				RecordID: c.ID,
				Label:    c.FullName(),
				Sublabel: fmt.Sprintf("Relance prévue le %s", c.NextFollowupDate.Format("02/01/2006")),
			})
		}
	}

	for _, a := range snap.Activities {
		if a.Status != crm.ActivityPlanifiee {
			continue
		}
		days := DaysSince(now, a.CreatedAt)
		if days >= e.t.SLAResponseDays {
			breaches = append(breaches, AlertItem{
				RecordID: a.ID,
				Label:    a.Title,
				Sublabel: fmt.Sprintf("En attente depuis %d jours", days),
			})
		}
	}

	report := AlertReport{
		BlockedDeals:    e.categorize(AlertBlockedDeal, blocked, e.t.CriticalBlockedDeals),
		OverdueContacts: e.categorize(AlertOverdueContact, overdue, e.t.WarningOverdueContacts),
		SLABreaches:     e.categorize(AlertSLABreach, breaches, e.t.CriticalSLABreaches),
	}

	switch {
	case len(blocked) >= e.t.CriticalBlockedDeals || len(breaches) >= e.t.CriticalSLABreaches:
		report.Severity = SeverityCritical
	case len(overdue) >= e.t.WarningOverdueContacts || len(blocked) >= 1:
		report.Severity = SeverityWarning
	default:
		report.Severity = SeverityInfo
	}

	return report
}

// categorize builds one category view: full count, self-classified severity,
// and a preview capped to AlertPreviewCap items.
func (e *Engine) categorize(cat AlertCategory, items []AlertItem, criticalAt int) CategoryAlerts {
	ca := CategoryAlerts{
		Category: cat,
		Count:    len(items),
		Preview:  items,
	}

	switch {
	case len(items) == 0:
		ca.Severity = SeverityInfo
	case len(items) >= criticalAt:
		ca.Severity = SeverityCritical
	default:
		ca.Severity = SeverityWarning
	}

	if len(ca.Preview) > e.t.AlertPreviewCap {
		ca.Hidden = len(ca.Preview) - e.t.AlertPreviewCap
		ca.Preview = ca.Preview[:e.t.AlertPreviewCap]
	}

	return ca
}
