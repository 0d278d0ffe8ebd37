package api

import (
	"encoding/json"
	"net/http"

	"github.com/dealscope/dealscope/pkg/crm"
)

func (h *Handler) handleListContacts(w http.ResponseWriter, r *http.Request) {
	tenant := tenantID(r)
	if tenant == "" {
		writeError(w, http.StatusBadRequest, "missing tenant")
		return
	}

	contacts, err := h.store.ListContacts(r.Context(), tenant)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "listing contacts failed")
		return
	}
	if contacts == nil {
		contacts = []crm.Contact{}
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (h *Handler) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	tenant := tenantID(r)
	if tenant == "" {
		writeError(w, http.StatusBadRequest, "missing tenant")
		return
	}

	var c crm.Contact
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c.TenantID = tenant

	if err := h.store.CreateContact(r.Context(), &c); err != nil {
		writeError(w, http.StatusInternalServerError, "creating contact failed")
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) handleTouchContact(w http.ResponseWriter, r *http.Request) {
	tenant := tenantID(r)
	if tenant == "" {
		writeError(w, http.StatusBadRequest, "missing tenant")
		return
	}

	if err := h.store.TouchContact(r.Context(), tenant, r.PathValue("contactID"), h.now()); err != nil {
		writeError(w, http.StatusNotFound, "contact not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListDeals(w http.ResponseWriter, r *http.Request) {
	tenant := tenantID(r)
	if tenant == "" {
		writeError(w, http.StatusBadRequest, "missing tenant")
		return
	}

	deals, err := h.store.ListDeals(r.Context(), tenant)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "listing deals failed")
		return
	}
	if deals == nil {
		deals = []crm.Deal{}
	}
	writeJSON(w, http.StatusOK, deals)
}

func (h *Handler) handleCreateDeal(w http.ResponseWriter, r *http.Request) {
	tenant := tenantID(r)
	if tenant == "" {
		writeError(w, http.StatusBadRequest, "missing tenant")
		return
	}

	var d crm.Deal
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	d.TenantID = tenant

	if err := h.store.CreateDeal(r.Context(), &d); err != nil {
		writeError(w, http.StatusInternalServerError, "creating deal failed")
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

type stageUpdateRequest struct {
	Stage crm.DealStage `json:"stage"`
}

func (h *Handler) handleUpdateDealStage(w http.ResponseWriter, r *http.Request) {
	tenant := tenantID(r)
	if tenant == "" {
		writeError(w, http.StatusBadRequest, "missing tenant")
		return
	}

	var req stageUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Stage == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.store.UpdateDealStage(r.Context(), tenant, r.PathValue("dealID"), req.Stage, h.now()); err != nil {
		writeError(w, http.StatusNotFound, "deal not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListActivities(w http.ResponseWriter, r *http.Request) {
	tenant := tenantID(r)
	if tenant == "" {
		writeError(w, http.StatusBadRequest, "missing tenant")
		return
	}

	activities, err := h.store.ListActivities(r.Context(), tenant)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "listing activities failed")
		return
	}
	if activities == nil {
		activities = []crm.Activity{}
	}
	writeJSON(w, http.StatusOK, activities)
}

func (h *Handler) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	tenant := tenantID(r)
	if tenant == "" {
		writeError(w, http.StatusBadRequest, "missing tenant")
		return
	}

	var a crm.Activity
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a.TenantID = tenant

	if err := h.store.CreateActivity(r.Context(), &a); err != nil {
		writeError(w, http.StatusInternalServerError, "creating activity failed")
		return
	}
	writeJSON(w, http.StatusCreated, a)
}
