package insight

import (
	"time"

	"github.com/dealscope/dealscope/pkg/crm"
)

// Health label thresholds.
const (
	healthGoodMin    = 70
	healthWarningMin = 40
)

// DealHealth computes a deal's 0-100 health score. The score starts at 50
// and each applicable factor adjusts it independently; missing fields skip
// their adjustment. The result is clamped to [0,100].
func (e *Engine) DealHealth(d crm.Deal, now time.Time) int {
	score := 50

	// Recency of last update. The dead branch takes precedence over the
	// stale one, so stale covers the (StaleUpdateMinDays, DeadUpdateMinDays]
	// range and 3-7 days is neutral.
	if d.UpdatedAt != nil {
		days := DaysSince(now, *d.UpdatedAt)
		if days < e.t.FreshUpdateMaxDays {
			score += 20
		} else if days > e.t.DeadUpdateMinDays {
			score -= 40
		} else if days > e.t.StaleUpdateMinDays {
			score -= 30
		}
	}

	// Closing probability.
	if d.Probability > 70 {
		score += 15
	} else if d.Probability > 50 {
		score += 10
	} else if d.Probability < 30 {
		score -= 10
	}

	// Late-pipeline stage bonus.
	if d.Stage.IsAdvanced() {
		score += 10
	}

	// Expected close proximity. Overdue and imminent are mutually exclusive
	// by sign.
	if d.ExpectedCloseDate != nil {
		until := DaysUntil(now, *d.ExpectedCloseDate)
		if until < 0 {
			score -= 15
		} else if until <= e.t.CloseWindowDays {
			score += 10
		}
	}

	return clampInt(score, 0, 100)
}

// ScoreDeal returns the full health value object for a deal.
func (e *Engine) ScoreDeal(d crm.Deal, now time.Time) DealHealthScore {
	score := e.DealHealth(d, now)
	return DealHealthScore{
		Score: score,
		Label: HealthLabel(score),
		Color: HealthColor(score),
	}
}

// HealthLabel maps a health score to its display label.
func HealthLabel(score int) string {
	switch {
	case score >= healthGoodMin:
		return "Bon"
	case score >= healthWarningMin:
		return "Attention"
	default:
		return "Critique"
	}
}

// HealthColor maps a health score to its severity color class.
func HealthColor(score int) string {
	switch {
	case score >= healthGoodMin:
		return "success"
	case score >= healthWarningMin:
		return "warning"
	default:
		return "error"
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
