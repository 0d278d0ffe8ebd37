package insight_test

import (
	"testing"

	"github.com/dealscope/dealscope/pkg/crm"
	"github.com/dealscope/dealscope/pkg/insight"
)

func TestDealHealth_SpecScenario(t *testing.T) {
	// 50 (base) - 40 (20 days stale) + 15 (prob 80) + 10 (negociation)
	// + 10 (closes in 5 days) = 45.
	e := insight.NewDefaultEngine()
	d := crm.Deal{
		ID:                "d1",
		Probability:       80,
		Stage:             crm.StageNegociation,
		UpdatedAt:         timePtr(daysAgo(20)),
		ExpectedCloseDate: timePtr(daysAhead(5)),
	}

	score := e.DealHealth(d, now)
	if score != 45 {
		t.Errorf("health = %d, want 45", score)
	}
	if got := insight.HealthLabel(score); got != "Attention" {
		t.Errorf("label = %q, want Attention", got)
	}
}

func TestDealHealth_RecencyChain(t *testing.T) {
	e := insight.NewDefaultEngine()

	tests := []struct {
		name string
		days int
		want int // 50 base + recency only (probability 50 is neutral)
	}{
		{"updated yesterday", 1, 70},
		{"updated two days ago", 2, 70},
		{"three days is neutral", 3, 50},
		{"seven days is neutral", 7, 50},
		{"eight days is stale", 8, 20},
		{"fourteen days is stale, not dead", 14, 20},
		{"fifteen days is dead", 15, 10},
		{"twenty days is dead", 20, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := crm.Deal{Probability: 50, Stage: crm.StageVisite, UpdatedAt: timePtr(daysAgo(tc.days))}
			if got := e.DealHealth(d, now); got != tc.want {
				t.Errorf("health = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestDealHealth_ProbabilityBands(t *testing.T) {
	e := insight.NewDefaultEngine()

	tests := []struct {
		prob int
		want int
	}{
		{80, 65}, // +15
		{71, 65},
		{70, 60}, // +10
		{51, 60},
		{50, 50}, // neutral
		{30, 50},
		{29, 40}, // -10
		{0, 40},
	}

	for _, tc := range tests {
		d := crm.Deal{Probability: tc.prob, Stage: crm.StageVisite}
		if got := e.DealHealth(d, now); got != tc.want {
			t.Errorf("probability %d: health = %d, want %d", tc.prob, got, tc.want)
		}
	}
}

func TestDealHealth_StageBonus(t *testing.T) {
	e := insight.NewDefaultEngine()

	advanced := []crm.DealStage{crm.StageOffre, crm.StageNegociation, crm.StageCompromis}
	for _, stage := range advanced {
		d := crm.Deal{Probability: 50, Stage: stage}
		if got := e.DealHealth(d, now); got != 60 {
			t.Errorf("stage %s: health = %d, want 60", stage, got)
		}
	}

	early := crm.Deal{Probability: 50, Stage: crm.StageProspection}
	if got := e.DealHealth(early, now); got != 50 {
		t.Errorf("early stage: health = %d, want 50", got)
	}
}

func TestDealHealth_CloseDateProximity(t *testing.T) {
	e := insight.NewDefaultEngine()

	tests := []struct {
		name string
		days int // relative to now
		want int
	}{
		{"closes today", 0, 60},
		{"closes in fourteen days", 14, 60},
		{"closes in a month", 30, 50},
		{"overdue", -2, 35},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := crm.Deal{Probability: 50, Stage: crm.StageVisite, ExpectedCloseDate: timePtr(daysAhead(tc.days))}
			if got := e.DealHealth(d, now); got != tc.want {
				t.Errorf("health = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestDealHealth_AlwaysClamped(t *testing.T) {
	e := insight.NewDefaultEngine()

	worst := crm.Deal{
		Probability:       0,
		Stage:             crm.StageProspection,
		UpdatedAt:         timePtr(daysAgo(100)),
		ExpectedCloseDate: timePtr(daysAgo(30)),
	}
	if got := e.DealHealth(worst, now); got != 0 {
		t.Errorf("worst case health = %d, want 0 (50-40-10-15 clamps)", got)
	}

	best := crm.Deal{
		Probability:       95,
		Stage:             crm.StageCompromis,
		UpdatedAt:         timePtr(daysAgo(1)),
		ExpectedCloseDate: timePtr(daysAhead(3)),
	}
	got := e.DealHealth(best, now)
	if got < 0 || got > 100 {
		t.Errorf("best case health = %d, out of [0,100]", got)
	}
}

func TestDealHealth_MissingFieldsSkipAdjustments(t *testing.T) {
	e := insight.NewDefaultEngine()
	d := crm.Deal{Probability: 50, Stage: crm.StageVisite}
	if got := e.DealHealth(d, now); got != 50 {
		t.Errorf("bare deal health = %d, want base 50", got)
	}
}

func TestDealHealth_Idempotent(t *testing.T) {
	e := insight.NewDefaultEngine()
	d := crm.Deal{
		Probability:       60,
		Stage:             crm.StageOffre,
		UpdatedAt:         timePtr(daysAgo(5)),
		ExpectedCloseDate: timePtr(daysAhead(10)),
	}
	first := e.DealHealth(d, now)
	second := e.DealHealth(d, now)
	if first != second {
		t.Errorf("same input and now gave %d then %d", first, second)
	}
}

func TestHealthLabelsAndColors(t *testing.T) {
	tests := []struct {
		score     int
		wantLabel string
		wantColor string
	}{
		{100, "Bon", "success"},
		{70, "Bon", "success"},
		{69, "Attention", "warning"},
		{40, "Attention", "warning"},
		{39, "Critique", "error"},
		{0, "Critique", "error"},
	}

	for _, tc := range tests {
		if got := insight.HealthLabel(tc.score); got != tc.wantLabel {
			t.Errorf("label(%d) = %q, want %q", tc.score, got, tc.wantLabel)
		}
		if got := insight.HealthColor(tc.score); got != tc.wantColor {
			t.Errorf("color(%d) = %q, want %q", tc.score, got, tc.wantColor)
		}
	}
}
