// Package insight implements the Dealscope CRM scoring engine.
// It derives contact badges, deal health scores, alerts, recommended actions,
// and portfolio health from snapshots of contacts, deals, and activities.
// Every function is pure: it takes immutable records plus an explicit "now"
// and returns freshly computed values, with no I/O and no shared state.
package insight

import (
	"time"

	"github.com/dealscope/dealscope/pkg/crm"
)

// BadgeType identifies a contact badge rule.
type BadgeType string

const (
	BadgeHot       BadgeType = "hot"
	BadgeCold      BadgeType = "cold"
	BadgeFollowup  BadgeType = "followup"
	BadgeHighValue BadgeType = "high-value"
)

// Badge is a per-contact label derived on every evaluation, never persisted.
type Badge struct {
	Type  BadgeType `json:"type"`
	Label string    `json:"label"`
	Icon  string    `json:"icon"`
	Color string    `json:"color"` // success, warning, error, info
}

// DealHealthScore is a deal's clamped 0-100 health score with its display
// label and color.
type DealHealthScore struct {
	Score int    `json:"score"`
	Label string `json:"label"` // Bon, Attention, Critique
	Color string `json:"color"`
}

// AlertSeverity classifies how urgent an alert view is.
type AlertSeverity string

const (
	SeverityCritical AlertSeverity = "critical"
	SeverityWarning  AlertSeverity = "warning"
	SeverityInfo     AlertSeverity = "info"
)

// AlertCategory identifies which detection rule produced an alert group.
type AlertCategory string

const (
	AlertBlockedDeal    AlertCategory = "blocked_deal"
	AlertOverdueContact AlertCategory = "overdue_contact"
	AlertSLABreach      AlertCategory = "sla_breach"
)

// AlertItem is a single flagged record within an alert category.
type AlertItem struct {
	RecordID string `json:"record_id"`
	Label    string `json:"label"`
	Sublabel string `json:"sublabel"`
}

// CategoryAlerts is one alert category's full count plus a capped preview.
// Count covers the entire filtered set; Preview is bounded for display and
// Hidden reports how many items the cap dropped.
type CategoryAlerts struct {
	Category AlertCategory `json:"category"`
	Severity AlertSeverity `json:"severity"`
	Count    int           `json:"count"`
	Preview  []AlertItem   `json:"preview"`
	Hidden   int           `json:"hidden"`
}

// AlertReport is the combined cross-entity alert view, with a panel-level
// severity computed over the full (uncapped) counts.
type AlertReport struct {
	BlockedDeals    CategoryAlerts `json:"blocked_deals"`
	OverdueContacts CategoryAlerts `json:"overdue_contacts"`
	SLABreaches     CategoryAlerts `json:"sla_breaches"`
	Severity        AlertSeverity  `json:"severity"`
}

// ActionPriority ranks a recommended action.
type ActionPriority string

const (
	PriorityUrgent ActionPriority = "urgent"
	PriorityHigh   ActionPriority = "high"
	PriorityMedium ActionPriority = "medium"
	PriorityLow    ActionPriority = "low"
)

// Action is a recommended next step surfaced to the agent.
type Action struct {
	Priority    ActionPriority `json:"priority"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Route       string         `json:"route"`
}

// Momentum qualifies how much of the deal portfolio saw recent activity.
type Momentum string

const (
	MomentumFort   Momentum = "Fort"
	MomentumModere Momentum = "Modéré"
	MomentumFaible Momentum = "Faible"
)

// StageShare is one slice of the open-pipeline stage distribution.
type StageShare struct {
	Stage   crm.DealStage `json:"stage"`
	Amount  float64       `json:"amount"`
	Percent float64       `json:"percent"` // share of total open amount
}

// PipelineHealth is the portfolio-level metric set computed over the full
// deal collection.
type PipelineHealth struct {
	WeightedValue     float64      `json:"weighted_value"`
	ConversionRate    int          `json:"conversion_rate"` // percent, 0-100
	AvgCommission     float64      `json:"avg_commission"`
	MonthOverMonthPct int          `json:"month_over_month_pct"`
	StageDistribution []StageShare `json:"stage_distribution"`
	HealthScore       int          `json:"health_score"` // 0-100
	VelocityDays      float64      `json:"velocity_days"`
	StalledCount      int          `json:"stalled_count"`
	Momentum          Momentum     `json:"momentum"`
}

// Overview is the complete derived view for one tenant snapshot.
type Overview struct {
	TenantID      string                     `json:"tenant_id"`
	GeneratedAt   time.Time                  `json:"generated_at"`
	Pipeline      PipelineHealth             `json:"pipeline"`
	Alerts        AlertReport                `json:"alerts"`
	Actions       []Action                   `json:"actions"`
	ContactBadges map[string][]Badge         `json:"contact_badges"`
	DealHealth    map[string]DealHealthScore `json:"deal_health"`
}
