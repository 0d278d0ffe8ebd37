package insight_test

import (
	"testing"

	"github.com/dealscope/dealscope/pkg/crm"
	"github.com/dealscope/dealscope/pkg/insight"
)

func badgeTypes(badges []insight.Badge) map[insight.BadgeType]bool {
	types := make(map[insight.BadgeType]bool)
	for _, b := range badges {
		types[b.Type] = true
	}
	return types
}

func TestContactBadges_Temperature(t *testing.T) {
	e := insight.NewDefaultEngine()

	tests := []struct {
		name     string
		lastDays int
		wantHot  bool
		wantCold bool
	}{
		{"contacted today", 0, true, false},
		{"exactly two days ago is hot", 2, true, false},
		{"exactly three days ago is neither", 3, false, false},
		{"exactly fourteen days ago is neither", 14, false, false},
		{"exactly fifteen days ago is cold", 15, false, true},
		{"a month ago is cold", 30, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := crm.Contact{ID: "c1", LastContactDate: timePtr(daysAgo(tc.lastDays))}
			types := badgeTypes(e.ContactBadges(c, nil, now))

			if types[insight.BadgeHot] != tc.wantHot {
				t.Errorf("hot = %v, want %v", types[insight.BadgeHot], tc.wantHot)
			}
			if types[insight.BadgeCold] != tc.wantCold {
				t.Errorf("cold = %v, want %v", types[insight.BadgeCold], tc.wantCold)
			}
			if types[insight.BadgeHot] && types[insight.BadgeCold] {
				t.Error("hot and cold fired together")
			}
		})
	}
}

func TestContactBadges_NoLastContactDate(t *testing.T) {
	e := insight.NewDefaultEngine()
	c := crm.Contact{ID: "c1"}

	if badges := e.ContactBadges(c, nil, now); len(badges) != 0 {
		t.Errorf("expected no badges for untouched contact, got %v", badges)
	}
}

func TestContactBadges_FollowupDue(t *testing.T) {
	e := insight.NewDefaultEngine()

	tests := []struct {
		name string
		due  int // days relative to now, negative = past
		want bool
	}{
		{"due yesterday", -1, true},
		{"due today", 0, true},
		{"due tomorrow", 1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := crm.Contact{ID: "c1", NextFollowupDate: timePtr(daysAhead(tc.due))}
			types := badgeTypes(e.ContactBadges(c, nil, now))
			if types[insight.BadgeFollowup] != tc.want {
				t.Errorf("followup = %v, want %v", types[insight.BadgeFollowup], tc.want)
			}
		})
	}
}

func TestContactBadges_HighValue(t *testing.T) {
	e := insight.NewDefaultEngine()
	c := crm.Contact{ID: "c1"}

	deals := []crm.Deal{
		{ID: "d1", Amount: 150000},
		{ID: "d2", Amount: 450000},
	}
	types := badgeTypes(e.ContactBadges(c, deals, now))
	if !types[insight.BadgeHighValue] {
		t.Error("expected high-value badge for a 450k deal")
	}

	// Threshold is strict: exactly 300000 does not qualify.
	atThreshold := []crm.Deal{{ID: "d3", Amount: 300000}}
	types = badgeTypes(e.ContactBadges(c, atThreshold, now))
	if types[insight.BadgeHighValue] {
		t.Error("amount equal to the threshold should not earn the badge")
	}
}

func TestContactBadges_MultipleBadges(t *testing.T) {
	e := insight.NewDefaultEngine()
	c := crm.Contact{
		ID:               "c1",
		LastContactDate:  timePtr(daysAgo(1)),
		NextFollowupDate: timePtr(daysAgo(2)),
	}
	deals := []crm.Deal{{ID: "d1", Amount: 500000}}

	badges := e.ContactBadges(c, deals, now)
	if len(badges) != 3 {
		t.Fatalf("expected 3 badges (hot, followup, high-value), got %d: %v", len(badges), badges)
	}
}
