package insight

import (
	"time"

	"github.com/dealscope/dealscope/pkg/crm"
)

// ContactBadges evaluates all four badge rules for one contact. The rules
// are independent: a contact may earn zero, one, or several badges. Hot and
// cold can never fire together because their day ranges are disjoint.
//
// A contact with no last_contact_date gets neither hot nor cold. Contacts
// never contacted at all therefore surface no temperature badge; product has
// not decided whether they should count as cold, so the upstream behavior is
// kept.
func (e *Engine) ContactBadges(c crm.Contact, deals []crm.Deal, now time.Time) []Badge {
	var badges []Badge

	if c.LastContactDate != nil {
		days := DaysSince(now, *c.LastContactDate)
		if days <= e.t.HotContactMaxDays {
			badges = append(badges, Badge{
				Type:  BadgeHot,
				Label: "Chaud",
				Icon:  "🔥",
				Color: "error",
			})
		}
		if days > e.t.ColdContactMinDays {
			badges = append(badges, Badge{
				Type:  BadgeCold,
				Label: "Froid",
				Icon:  "❄️",
				Color: "info",
			})
		}
	}

	if c.NextFollowupDate != nil {
		due := *c.NextFollowupDate
		if SameDay(due, now) || BeforeToday(now, due) {
			badges = append(badges, Badge{
				Type:  BadgeFollowup,
				Label: "Relance due",
				Icon:  "📅",
				Color: "warning",
			})
		}
	}

	for _, d := range deals {
		if d.Amount > e.t.HighValueAmount {
			badges = append(badges, Badge{
				Type:  BadgeHighValue,
				Label: "Gros budget",
				Icon:  "💎",
				Color: "success",
			})
			break
		}
	}

	return badges
}
