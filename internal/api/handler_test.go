package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealscope/dealscope/pkg/crm"
	"github.com/dealscope/dealscope/pkg/insight"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func tp(t time.Time) *time.Time { return &t }

// stubStore serves a fixed snapshot and records writes.
type stubStore struct {
	snap    *crm.Snapshot
	err     error
	created []string
}

func (s *stubStore) LoadSnapshot(_ context.Context, tenantID string, now time.Time) (*crm.Snapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	snap := *s.snap
	snap.TenantID = tenantID
	snap.TakenAt = now
	return &snap, nil
}

func (s *stubStore) ListContacts(context.Context, string) ([]crm.Contact, error) {
	return s.snap.Contacts, s.err
}

func (s *stubStore) ListDeals(context.Context, string) ([]crm.Deal, error) {
	return s.snap.Deals, s.err
}

func (s *stubStore) ListActivities(context.Context, string) ([]crm.Activity, error) {
	return s.snap.Activities, s.err
}

func (s *stubStore) CreateContact(_ context.Context, c *crm.Contact) error {
	c.ID = "generated-contact"
	c.CreatedAt = testNow
	s.created = append(s.created, "contact")
	return s.err
}

func (s *stubStore) CreateDeal(_ context.Context, d *crm.Deal) error {
	d.ID = "generated-deal"
	d.CreatedAt = testNow
	s.created = append(s.created, "deal")
	return s.err
}

func (s *stubStore) CreateActivity(_ context.Context, a *crm.Activity) error {
	a.ID = "generated-activity"
	a.CreatedAt = testNow
	s.created = append(s.created, "activity")
	return s.err
}

func (s *stubStore) UpdateDealStage(_ context.Context, _, dealID string, _ crm.DealStage, _ time.Time) error {
	if dealID != "d1" {
		return errors.New("not found")
	}
	return nil
}

func (s *stubStore) TouchContact(_ context.Context, _, contactID string, _ time.Time) error {
	if contactID != "c1" {
		return errors.New("not found")
	}
	return nil
}

func fixtureStore() *stubStore {
	return &stubStore{
		snap: &crm.Snapshot{
			Contacts: []crm.Contact{
				{
					ID:              "c1",
					FirstName:       "Claire",
					LastName:        "Moreau",
					PipelineStage:   crm.ContactQualifie,
					LastContactDate: tp(testNow.AddDate(0, 0, -1)),
				},
			},
			Deals: []crm.Deal{
				{
					ID:          "d1",
					ContactID:   "c1",
					Title:       "Villa Cassis",
					Amount:      450000,
					Probability: 75,
					Stage:       crm.StageNegociation,
					CreatedAt:   testNow.AddDate(0, 0, -30),
					UpdatedAt:   tp(testNow.AddDate(0, 0, -2)),
				},
			},
			Activities: []crm.Activity{
				{ID: "a1", Title: "Visite", Status: crm.ActivityPlanifiee, Date: tp(testNow), CreatedAt: testNow.AddDate(0, 0, -1)},
			},
		},
	}
}

func newTestHandler(store Store) (*Handler, *http.ServeMux) {
	h := NewHandler(store, insight.NewDefaultEngine(), NewMemoryCache(), time.Minute)
	h.now = func() time.Time { return testNow }
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return h, mux
}

func doRequest(mux *http.ServeMux, method, path string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	req.Header.Set("X-Tenant", "agence-sud")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestOverviewEndpoint(t *testing.T) {
	_, mux := newTestHandler(fixtureStore())

	rec := doRequest(mux, "GET", "/api/v1/insights/overview", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var ov insight.Overview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ov))
	assert.Equal(t, "agence-sud", ov.TenantID)
	assert.Contains(t, ov.ContactBadges, "c1")
	assert.Contains(t, ov.DealHealth, "d1")
}

func TestOverviewIsCached(t *testing.T) {
	store := fixtureStore()
	_, mux := newTestHandler(store)

	first := doRequest(mux, "GET", "/api/v1/insights/overview", "")
	require.Equal(t, http.StatusOK, first.Code)

	// Break the store: a cached response must not hit it again.
	store.err = errors.New("database down")
	second := doRequest(mux, "GET", "/api/v1/insights/overview", "")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestMissingTenantRejected(t *testing.T) {
	_, mux := newTestHandler(fixtureStore())

	req := httptest.NewRequest("GET", "/api/v1/insights/overview", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTenantFromQueryParam(t *testing.T) {
	_, mux := newTestHandler(fixtureStore())

	req := httptest.NewRequest("GET", "/api/v1/insights/pipeline?tenant=agence-sud", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestContactBadgesEndpoint(t *testing.T) {
	_, mux := newTestHandler(fixtureStore())

	rec := doRequest(mux, "GET", "/api/v1/contacts/c1/badges", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var badges []insight.Badge
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &badges))
	require.NotEmpty(t, badges)

	types := make(map[insight.BadgeType]bool)
	for _, b := range badges {
		types[b.Type] = true
	}
	// Contacted yesterday and holding a 450k deal.
	assert.True(t, types[insight.BadgeHot])
	assert.True(t, types[insight.BadgeHighValue])

	rec = doRequest(mux, "GET", "/api/v1/contacts/nope/badges", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDealHealthEndpoint(t *testing.T) {
	_, mux := newTestHandler(fixtureStore())

	rec := doRequest(mux, "GET", "/api/v1/deals/d1/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var hs insight.DealHealthScore
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hs))
	// 50 +20 (fresh) +15 (prob 75) +10 (negociation) = 95.
	assert.Equal(t, 95, hs.Score)
	assert.Equal(t, "Bon", hs.Label)
}

func TestCreateContactEndpoint(t *testing.T) {
	store := fixtureStore()
	_, mux := newTestHandler(store)

	rec := doRequest(mux, "POST", "/api/v1/contacts", `{"first_name":"Louis","last_name":"Garnier"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var c crm.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	assert.Equal(t, "generated-contact", c.ID)
	assert.Equal(t, "agence-sud", c.TenantID)
	assert.Equal(t, []string{"contact"}, store.created)

	rec = doRequest(mux, "POST", "/api/v1/contacts", `{broken`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateDealStageEndpoint(t *testing.T) {
	_, mux := newTestHandler(fixtureStore())

	rec := doRequest(mux, "PATCH", "/api/v1/deals/d1/stage", `{"stage":"vendu"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(mux, "PATCH", "/api/v1/deals/absent/stage", `{"stage":"vendu"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(mux, "PATCH", "/api/v1/deals/d1/stage", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPIKeyAuth(t *testing.T) {
	_, mux := newTestHandler(fixtureStore())
	protected := APIKeyAuth("secret")(mux)

	req := httptest.NewRequest("GET", "/api/v1/insights/alerts", nil)
	req.Header.Set("X-Tenant", "agence-sud")
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req.Header.Set("X-API-Key", "secret")
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 10*time.Millisecond))
	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)

	time.Sleep(20 * time.Millisecond)
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)
}
