// Package crm defines the core CRM data model for Dealscope.
// These types are the shared vocabulary across all modules: they mirror the
// rows owned by the managed store and are read-only to the insight engine.
package crm

import "time"

// Contact is a person tracked through the agency's sales funnel.
type Contact struct {
	ID               string       `json:"id"`
	TenantID         string       `json:"tenant_id"`
	FirstName        string       `json:"first_name"`
	LastName         string       `json:"last_name"`
	Email            string       `json:"email,omitempty"`
	Phone            string       `json:"phone,omitempty"`
	PipelineStage    ContactStage `json:"pipeline_stage"`
	UrgencyScore     int          `json:"urgency_score"` // 0-10
	LastContactDate  *time.Time   `json:"last_contact_date,omitempty"`
	NextFollowupDate *time.Time   `json:"next_followup_date,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        *time.Time   `json:"updated_at,omitempty"`
}

// FullName returns the contact's display name.
func (c Contact) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}

// Deal is a property transaction moving through the deal pipeline.
type Deal struct {
	ID                string     `json:"id"`
	TenantID          string     `json:"tenant_id"`
	ContactID         string     `json:"contact_id,omitempty"`
	Title             string     `json:"title"`
	Amount            float64    `json:"amount"`      // currency amount, non-negative
	Probability       int        `json:"probability"` // 0-100
	Stage             DealStage  `json:"stage"`
	ExpectedCloseDate *time.Time `json:"expected_close_date,omitempty"`
	ActualCloseDate   *time.Time `json:"actual_close_date,omitempty"`
	CommissionAmount  *float64   `json:"commission_amount,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

// Activity is a scheduled or logged task (call, visit, email) attached to a
// contact or deal.
type Activity struct {
	ID        string         `json:"id"`
	TenantID  string         `json:"tenant_id"`
	ContactID string         `json:"contact_id,omitempty"`
	DealID    string         `json:"deal_id,omitempty"`
	Type      string         `json:"type,omitempty"` // appel, visite, email, ...
	Title     string         `json:"title"`
	Status    ActivityStatus `json:"status"`
	Priority  string         `json:"priority,omitempty"`
	Date      *time.Time     `json:"date,omitempty"` // scheduled date
	CreatedAt time.Time      `json:"created_at"`
}

// Snapshot bundles the three collections for one tenant, fetched together so
// that every derived view in an evaluation pass sees the same instant.
type Snapshot struct {
	TenantID   string     `json:"tenant_id"`
	TakenAt    time.Time  `json:"taken_at"`
	Contacts   []Contact  `json:"contacts"`
	Deals      []Deal     `json:"deals"`
	Activities []Activity `json:"activities"`
}

// DealsByContact groups the snapshot's deals by contact ID.
func (s *Snapshot) DealsByContact() map[string][]Deal {
	byContact := make(map[string][]Deal)
	for _, d := range s.Deals {
		if d.ContactID == "" {
			continue
		}
		byContact[d.ContactID] = append(byContact[d.ContactID], d)
	}
	return byContact
}
