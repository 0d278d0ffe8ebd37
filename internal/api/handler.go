// Package api implements the hosted Dealscope REST API.
// It serves tenant-scoped CRM records and the derived insight views.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dealscope/dealscope/pkg/crm"
	"github.com/dealscope/dealscope/pkg/insight"
)

// Store is the data-access surface the API needs. *store.Service satisfies
// it; tests substitute a stub.
type Store interface {
	LoadSnapshot(ctx context.Context, tenantID string, now time.Time) (*crm.Snapshot, error)
	ListContacts(ctx context.Context, tenantID string) ([]crm.Contact, error)
	ListDeals(ctx context.Context, tenantID string) ([]crm.Deal, error)
	ListActivities(ctx context.Context, tenantID string) ([]crm.Activity, error)
	CreateContact(ctx context.Context, c *crm.Contact) error
	CreateDeal(ctx context.Context, d *crm.Deal) error
	CreateActivity(ctx context.Context, a *crm.Activity) error
	UpdateDealStage(ctx context.Context, tenantID, dealID string, stage crm.DealStage, now time.Time) error
	TouchContact(ctx context.Context, tenantID, contactID string, now time.Time) error
}

// Handler is the top-level API handler for the hosted Dealscope service.
type Handler struct {
	store    Store
	engine   *insight.Engine
	cache    Cache
	cacheTTL time.Duration
	now      func() time.Time
}

// NewHandler creates a new API handler. A nil cache falls back to an
// in-memory one.
func NewHandler(store Store, engine *insight.Engine, cache Cache, cacheTTL time.Duration) *Handler {
	if cache == nil {
		cache = NewMemoryCache()
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &Handler{
		store:    store,
		engine:   engine,
		cache:    cache,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Derived insight views
	mux.HandleFunc("GET /api/v1/insights/overview", h.handleOverview)
	mux.HandleFunc("GET /api/v1/insights/alerts", h.handleAlerts)
	mux.HandleFunc("GET /api/v1/insights/actions", h.handleActions)
	mux.HandleFunc("GET /api/v1/insights/pipeline", h.handlePipeline)
	mux.HandleFunc("GET /api/v1/contacts/{contactID}/badges", h.handleContactBadges)
	mux.HandleFunc("GET /api/v1/deals/{dealID}/health", h.handleDealHealth)

	// Records
	mux.HandleFunc("GET /api/v1/contacts", h.handleListContacts)
	mux.HandleFunc("POST /api/v1/contacts", h.handleCreateContact)
	mux.HandleFunc("POST /api/v1/contacts/{contactID}/touch", h.handleTouchContact)
	mux.HandleFunc("GET /api/v1/deals", h.handleListDeals)
	mux.HandleFunc("POST /api/v1/deals", h.handleCreateDeal)
	mux.HandleFunc("PATCH /api/v1/deals/{dealID}/stage", h.handleUpdateDealStage)
	mux.HandleFunc("GET /api/v1/activities", h.handleListActivities)
	mux.HandleFunc("POST /api/v1/activities", h.handleCreateActivity)
}

// tenantID resolves the caller's tenant from the X-Tenant header or the
// tenant query parameter. Every route requires one.
func tenantID(r *http.Request) string {
	if id := r.Header.Get("X-Tenant"); id != "" {
		return id
	}
	return r.URL.Query().Get("tenant")
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
