// Package store provides tenant-scoped access to the CRM tables.
// It is the data-access collaborator the insight engine consumes: callers
// fetch a full snapshot, then hand the plain records to the engine.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dealscope/dealscope/pkg/crm"
)

// Service provides CRM record access backed by Postgres.
type Service struct {
	db *sql.DB
}

// NewService creates a new store Service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// LoadSnapshot fetches all three collections for one tenant in a single
// pass, so that every derived view computed from it sees the same instant.
func (s *Service) LoadSnapshot(ctx context.Context, tenantID string, now time.Time) (*crm.Snapshot, error) {
	contacts, err := s.ListContacts(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	deals, err := s.ListDeals(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	activities, err := s.ListActivities(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return &crm.Snapshot{
		TenantID:   tenantID,
		TakenAt:    now,
		Contacts:   contacts,
		Deals:      deals,
		Activities: activities,
	}, nil
}

// ListContacts returns all contacts for a tenant.
func (s *Service) ListContacts(ctx context.Context, tenantID string) ([]crm.Contact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tenant_id, first_name, last_name, email, phone,
		        pipeline_stage, urgency_score, last_contact_date,
		        next_followup_date, created_at, updated_at
		 FROM contacts WHERE tenant_id = $1 ORDER BY last_name, first_name`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []crm.Contact
	for rows.Next() {
		var c crm.Contact
		if err := rows.Scan(
			&c.ID, &c.TenantID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
			&c.PipelineStage, &c.UrgencyScore, &c.LastContactDate,
			&c.NextFollowupDate, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// ListDeals returns all deals for a tenant.
func (s *Service) ListDeals(ctx context.Context, tenantID string) ([]crm.Deal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tenant_id, COALESCE(contact_id::text, ''), title, amount, probability, stage,
		        expected_close_date, actual_close_date, commission_amount,
		        created_at, updated_at
		 FROM deals WHERE tenant_id = $1 ORDER BY created_at DESC`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	defer rows.Close()

	var deals []crm.Deal
	for rows.Next() {
		var d crm.Deal
		if err := rows.Scan(
			&d.ID, &d.TenantID, &d.ContactID, &d.Title, &d.Amount, &d.Probability,
			&d.Stage, &d.ExpectedCloseDate, &d.ActualCloseDate, &d.CommissionAmount,
			&d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan deal: %w", err)
		}
		deals = append(deals, d)
	}
	return deals, rows.Err()
}

// ListActivities returns all activities for a tenant.
func (s *Service) ListActivities(ctx context.Context, tenantID string) ([]crm.Activity, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tenant_id, COALESCE(contact_id::text, ''), COALESCE(deal_id::text, ''), type, title, status,
		        priority, date, created_at
		 FROM activities WHERE tenant_id = $1 ORDER BY created_at DESC`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var activities []crm.Activity
	for rows.Next() {
		var a crm.Activity
		if err := rows.Scan(
			&a.ID, &a.TenantID, &a.ContactID, &a.DealID, &a.Type, &a.Title,
			&a.Status, &a.Priority, &a.Date, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

// CreateContact inserts a contact, generating its ID when absent.
func (s *Service) CreateContact(ctx context.Context, c *crm.Contact) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.PipelineStage == "" {
		c.PipelineStage = crm.ContactNouveau
	}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO contacts (id, tenant_id, first_name, last_name, email, phone,
		                       pipeline_stage, urgency_score, last_contact_date, next_followup_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at`,
		c.ID, c.TenantID, c.FirstName, c.LastName, c.Email, c.Phone,
		c.PipelineStage, c.UrgencyScore, c.LastContactDate, c.NextFollowupDate,
	).Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create contact: %w", err)
	}
	return nil
}

// CreateDeal inserts a deal, generating its ID when absent.
func (s *Service) CreateDeal(ctx context.Context, d *crm.Deal) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Stage == "" {
		d.Stage = crm.StageProspection
	}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO deals (id, tenant_id, contact_id, title, amount, probability,
		                    stage, expected_close_date, commission_amount)
		 VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9)
		 RETURNING created_at`,
		d.ID, d.TenantID, d.ContactID, d.Title, d.Amount, d.Probability,
		d.Stage, d.ExpectedCloseDate, d.CommissionAmount,
	).Scan(&d.CreatedAt)
	if err != nil {
		return fmt.Errorf("create deal: %w", err)
	}
	return nil
}

// CreateActivity inserts an activity, generating its ID when absent.
func (s *Service) CreateActivity(ctx context.Context, a *crm.Activity) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = crm.ActivityPlanifiee
	}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO activities (id, tenant_id, contact_id, deal_id, type, title,
		                         status, priority, date)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, $8, $9)
		 RETURNING created_at`,
		a.ID, a.TenantID, a.ContactID, a.DealID, a.Type, a.Title,
		a.Status, a.Priority, a.Date,
	).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("create activity: %w", err)
	}
	return nil
}

// UpdateDealStage moves a deal to a new stage and records the update time.
// Moving to vendu or perdu also stamps the actual close date.
func (s *Service) UpdateDealStage(ctx context.Context, tenantID, dealID string, stage crm.DealStage, now time.Time) error {
	var closeDate *time.Time
	if stage.IsTerminal() {
		closeDate = &now
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE deals
		 SET stage = $1, updated_at = $2, actual_close_date = COALESCE($3, actual_close_date)
		 WHERE tenant_id = $4 AND id = $5`,
		stage, now, closeDate, tenantID, dealID,
	)
	if err != nil {
		return fmt.Errorf("update deal stage: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update deal stage: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update deal stage: deal %s not found", dealID)
	}
	return nil
}

// TouchContact records a contact interaction: last_contact_date and
// updated_at move to now.
func (s *Service) TouchContact(ctx context.Context, tenantID, contactID string, now time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE contacts SET last_contact_date = $1, updated_at = $1
		 WHERE tenant_id = $2 AND id = $3`,
		now, tenantID, contactID,
	)
	if err != nil {
		return fmt.Errorf("touch contact: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("touch contact: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("touch contact: contact %s not found", contactID)
	}
	return nil
}
