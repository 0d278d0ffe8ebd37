package insight

import (
	"fmt"
	"time"

	"github.com/dealscope/dealscope/pkg/crm"
)

// Actions derives up to MaxActions recommended next steps. Cards keep their
// detection order (cold contacts, stagnant deals, today's activities, hot
// unqualified leads) and are not re-sorted by priority; when the cap bites,
// the earliest detections win.
func (e *Engine) Actions(snap *crm.Snapshot, now time.Time) []Action {
	var actions []Action

	coldCount := 0
	for _, c := range snap.Contacts {
		if c.PipelineStage.IsTerminal() || c.UpdatedAt == nil {
			continue
		}
		if DaysSince(now, *c.UpdatedAt) >= e.t.ColdContactActionMinDays {
			coldCount++
		}
	}
	if coldCount > 0 {
		actions = append(actions, Action{
			Priority:    PriorityHigh,
			Title:       fmt.Sprintf("Relancer %d contacts inactifs", coldCount),
			Description: fmt.Sprintf("Sans nouvelles depuis plus de %d jours", e.t.ColdContactActionMinDays),
			Route:       "/contacts?filter=cold",
		})
	}

	stagnantCount := 0
	for _, d := range snap.Deals {
		if d.Stage.IsTerminal() || d.UpdatedAt == nil {
			continue
		}
		if DaysSince(now, *d.UpdatedAt) >= e.t.StagnantDealMinDays {
			stagnantCount++
		}
	}
	if stagnantCount > 0 {
		priority := PriorityMedium
		if stagnantCount >= e.t.StagnantDealHighCount {
			priority = PriorityHigh
		}
		actions = append(actions, Action{
			Priority:    priority,
			Title:       fmt.Sprintf("Faire avancer %d affaires au point mort", stagnantCount),
			Description: fmt.Sprintf("Aucun mouvement depuis %d jours ou plus", e.t.StagnantDealMinDays),
			Route:       "/pipeline?filter=stagnant",
		})
	}

	todayCount := 0
	for _, a := range snap.Activities {
		if a.Date == nil || a.Status.IsDone() {
			continue
		}
		if SameDay(*a.Date, now) {
			todayCount++
		}
	}
	if todayCount > 0 {
		actions = append(actions, Action{
			Priority:    PriorityUrgent,
			Title:       fmt.Sprintf("%d activités prévues aujourd'hui", todayCount),
			Description: "À traiter avant la fin de la journée",
			Route:       "/activities?view=today",
		})
	}

	hotLeadCount := 0
	for _, c := range snap.Contacts {
		if c.UrgencyScore >= 8 && c.PipelineStage.IsNew() {
			hotLeadCount++
		}
	}
	if hotLeadCount > 0 {
		actions = append(actions, Action{
			Priority:    PriorityHigh,
			Title:       fmt.Sprintf("Qualifier %d leads urgents", hotLeadCount),
			Description: "Score d'urgence élevé, encore au stade nouveau",
			Route:       "/contacts?filter=hot",
		})
	}

	if len(actions) > e.t.MaxActions {
		actions = actions[:e.t.MaxActions]
	}

	return actions
}
