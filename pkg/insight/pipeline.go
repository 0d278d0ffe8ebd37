package insight

import (
	"math"
	"sort"
	"time"

	"github.com/dealscope/dealscope/pkg/crm"
)

// Pipeline computes the portfolio-level health metrics over the full deal
// collection. Every division guards its denominator: an empty or fully
// closed portfolio yields zeros (and the documented velocity fallback),
// never NaN.
func (e *Engine) Pipeline(deals []crm.Deal, now time.Time) PipelineHealth {
	var (
		open          []crm.Deal
		wonCount      int
		lostCount     int
		weighted      float64
		commissionSum float64
		commissionN   int
	)

	for _, d := range deals {
		if d.Stage.IsTerminal() {
			if d.Stage.IsWon() {
				wonCount++
			} else {
				lostCount++
			}
		} else {
			open = append(open, d)
			weighted += d.Amount * float64(d.Probability) / 100
		}
		if d.CommissionAmount != nil && *d.CommissionAmount > 0 {
			commissionSum += *d.CommissionAmount
			commissionN++
		}
	}

	conversionRate := 0
	if closed := wonCount + lostCount; closed > 0 {
		conversionRate = int(math.Round(float64(wonCount) / float64(closed) * 100))
	}

	avgCommission := 0.0
	if commissionN > 0 {
		avgCommission = commissionSum / float64(commissionN)
	}

	health := PipelineHealth{
		WeightedValue:     weighted,
		ConversionRate:    conversionRate,
		AvgCommission:     avgCommission,
		MonthOverMonthPct: e.monthOverMonth(deals, now),
		StageDistribution: e.stageDistribution(open),
		VelocityDays:      e.velocity(deals),
	}

	// Stalled ratio and average probability over open deals only.
	stalled := 0
	probSum := 0
	for _, d := range open {
		probSum += d.Probability
		if d.UpdatedAt != nil && DaysSince(now, *d.UpdatedAt) >= e.t.StalledDealMinDays {
			stalled++
		}
	}
	health.StalledCount = stalled

	stalledRatio := 0.0
	avgProbability := 0.0
	if len(open) > 0 {
		stalledRatio = float64(stalled) / float64(len(open))
		avgProbability = float64(probSum) / float64(len(open))
	}

	raw := 100 - stalledRatio*40 + avgProbability*0.3 + float64(conversionRate)*0.3
	health.HealthScore = int(math.Round(math.Min(math.Max(raw, 0), 100)))

	health.Momentum = e.momentum(deals, now)

	return health
}

// monthOverMonth returns the percentage change in deals created this
// calendar month versus the prior month. A zero prior month reports +100%
// when the current month has deals, 0% otherwise.
func (e *Engine) monthOverMonth(deals []crm.Deal, now time.Time) int {
	prior := now.AddDate(0, -1, 0)
	current, previous := 0, 0
	for _, d := range deals {
		switch {
		case SameMonth(d.CreatedAt, now):
			current++
		case SameMonth(d.CreatedAt, prior):
			previous++
		}
	}

	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round(float64(current-previous) / float64(previous) * 100))
}

// stageDistribution groups open deals by stage, sums amounts, and returns
// the top slices by amount with their share of total open value.
func (e *Engine) stageDistribution(open []crm.Deal) []StageShare {
	amounts := make(map[crm.DealStage]float64)
	total := 0.0
	for _, d := range open {
		amounts[d.Stage] += d.Amount
		total += d.Amount
	}

	shares := make([]StageShare, 0, len(amounts))
	for stage, amount := range amounts {
		share := StageShare{Stage: stage, Amount: amount}
		if total > 0 {
			share.Percent = amount / total * 100
		}
		shares = append(shares, share)
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Amount != shares[j].Amount {
			return shares[i].Amount > shares[j].Amount
		}
		return shares[i].Stage < shares[j].Stage
	})

	if len(shares) > e.t.StageDistributionTop {
		shares = shares[:e.t.StageDistributionTop]
	}
	return shares
}

// velocity returns the mean days from creation to close over all closed
// deals with a close date, falling back to the documented default when no
// deal has closed yet.
func (e *Engine) velocity(deals []crm.Deal) float64 {
	totalDays := 0.0
	n := 0
	for _, d := range deals {
		if !d.Stage.IsTerminal() || d.ActualCloseDate == nil {
			continue
		}
		totalDays += float64(DaysSince(*d.ActualCloseDate, d.CreatedAt))
		n++
	}
	if n == 0 {
		return e.t.DefaultVelocityDays
	}
	return totalDays / float64(n)
}

// momentum classifies the recently-updated fraction of the entire
// collection, closed deals included.
func (e *Engine) momentum(deals []crm.Deal, now time.Time) Momentum {
	if len(deals) == 0 {
		return MomentumFaible
	}

	recent := 0
	for _, d := range deals {
		if d.UpdatedAt != nil && DaysSince(now, *d.UpdatedAt) <= e.t.MomentumWindowDays {
			recent++
		}
	}

	fraction := float64(recent) / float64(len(deals))
	switch {
	case fraction > 0.5:
		return MomentumFort
	case fraction > 0.2:
		return MomentumModere
	default:
		return MomentumFaible
	}
}
