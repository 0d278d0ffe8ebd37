// Package tenant manages multi-tenant state: one tenant per real-estate
// agency. Every CRM row carries a tenant ID and every query is scoped to it.
package tenant

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Service provides tenant management backed by Postgres.
type Service struct {
	db *sql.DB
}

// Tenant represents a real-estate agency (one organization).
type Tenant struct {
	ID          string
	DisplayName string
	APIKey      *string
	CreatedAt   time.Time
}

// NewService creates a new tenant Service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// CreateTenant creates a new agency tenant.
func (s *Service) CreateTenant(ctx context.Context, displayName string) (*Tenant, error) {
	t := &Tenant{}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO tenants (display_name)
		 VALUES ($1)
		 RETURNING id, display_name, api_key, created_at`,
		displayName,
	).Scan(&t.ID, &t.DisplayName, &t.APIKey, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create tenant: %w", err)
	}
	return t, nil
}

// GetTenant retrieves a tenant by ID.
func (s *Service) GetTenant(ctx context.Context, tenantID string) (*Tenant, error) {
	t := &Tenant{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, display_name, api_key, created_at
		 FROM tenants WHERE id = $1`,
		tenantID,
	).Scan(&t.ID, &t.DisplayName, &t.APIKey, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get tenant %s: %w", tenantID, err)
	}
	return t, nil
}

// GetTenantByName looks up a tenant by display name.
func (s *Service) GetTenantByName(ctx context.Context, name string) (*Tenant, error) {
	t := &Tenant{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, display_name, api_key, created_at
		 FROM tenants WHERE display_name = $1`,
		name,
	).Scan(&t.ID, &t.DisplayName, &t.APIKey, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get tenant by name %s: %w", name, err)
	}
	return t, nil
}

// EnsureTenant gets or creates a tenant by agency name.
func (s *Service) EnsureTenant(ctx context.Context, name string) (*Tenant, error) {
	t, err := s.GetTenantByName(ctx, name)
	if err == nil {
		return t, nil
	}

	t, err = s.CreateTenant(ctx, name)
	if err != nil {
		// Could be a race with another creator; try getting again.
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return s.GetTenantByName(ctx, name)
		}
		return nil, fmt.Errorf("ensure tenant: %w", err)
	}
	return t, nil
}

// ListTenants returns all tenants ordered by name.
func (s *Service) ListTenants(ctx context.Context) ([]Tenant, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, display_name, api_key, created_at
		 FROM tenants ORDER BY display_name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []Tenant
	for rows.Next() {
		var t Tenant
		if err := rows.Scan(&t.ID, &t.DisplayName, &t.APIKey, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}
