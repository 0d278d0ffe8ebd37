package insight

import (
	"time"

	"github.com/dealscope/dealscope/pkg/crm"
)

// Engine evaluates a tenant snapshot against a fixed set of thresholds.
// It is stateless and safe for concurrent use; callers pass the same "now"
// to every call that must agree within one evaluation pass.
type Engine struct {
	t Thresholds
}

// NewEngine creates an engine with the given thresholds.
func NewEngine(t Thresholds) *Engine {
	return &Engine{t: t}
}

// NewDefaultEngine creates an engine with DefaultThresholds.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultThresholds())
}

// Thresholds returns the engine's tuning.
func (e *Engine) Thresholds() Thresholds {
	return e.t
}

// Overview computes the complete derived view for one snapshot: per-contact
// badges, per-deal health, alerts, recommended actions, and pipeline health,
// all anchored on a single "now".
func (e *Engine) Overview(snap *crm.Snapshot, now time.Time) *Overview {
	ov := &Overview{
		TenantID:      snap.TenantID,
		GeneratedAt:   now,
		Pipeline:      e.Pipeline(snap.Deals, now),
		Alerts:        e.Alerts(snap, now),
		Actions:       e.Actions(snap, now),
		ContactBadges: make(map[string][]Badge, len(snap.Contacts)),
		DealHealth:    make(map[string]DealHealthScore, len(snap.Deals)),
	}

	dealsByContact := snap.DealsByContact()
	for _, c := range snap.Contacts {
		if badges := e.ContactBadges(c, dealsByContact[c.ID], now); len(badges) > 0 {
			ov.ContactBadges[c.ID] = badges
		}
	}

	for _, d := range snap.Deals {
		ov.DealHealth[d.ID] = e.ScoreDeal(d, now)
	}

	return ov
}
