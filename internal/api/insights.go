package api

import (
	"fmt"
	"net/http"

	"github.com/dealscope/dealscope/pkg/insight"
)

// handleOverview serves the full derived view for a tenant. Overviews are
// cached briefly: the engine itself never caches, so freshness policy lives
// here with the rest of the transport concerns.
func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	tenant := tenantID(r)
	if tenant == "" {
		writeError(w, http.StatusBadRequest, "missing tenant")
		return
	}

	key := "overview:" + tenant
	if cached, ok := h.cache.Get(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(cached)
		return
	}

	now := h.now()
	snap, err := h.store.LoadSnapshot(r.Context(), tenant, now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "loading snapshot failed")
		return
	}

	overview := h.engine.Overview(snap, now)
	data, err := MarshalCache(overview)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "encoding overview failed")
		return
	}
	_ = h.cache.Set(r.Context(), key, data, h.cacheTTL)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) handleAlerts(w http.ResponseWriter, r *http.Request) {
	tenant := tenantID(r)
	if tenant == "" {
		writeError(w, http.StatusBadRequest, "missing tenant")
		return
	}

	now := h.now()
	snap, err := h.store.LoadSnapshot(r.Context(), tenant, now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "loading snapshot failed")
		return
	}

	writeJSON(w, http.StatusOK, h.engine.Alerts(snap, now))
}

func (h *Handler) handleActions(w http.ResponseWriter, r *http.Request) {
	tenant := tenantID(r)
	if tenant == "" {
		writeError(w, http.StatusBadRequest, "missing tenant")
		return
	}

	now := h.now()
	snap, err := h.store.LoadSnapshot(r.Context(), tenant, now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "loading snapshot failed")
		return
	}

	writeJSON(w, http.StatusOK, h.engine.Actions(snap, now))
}

func (h *Handler) handlePipeline(w http.ResponseWriter, r *http.Request) {
	tenant := tenantID(r)
	if tenant == "" {
		writeError(w, http.StatusBadRequest, "missing tenant")
		return
	}

	now := h.now()
	deals, err := h.store.ListDeals(r.Context(), tenant)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "loading deals failed")
		return
	}

	writeJSON(w, http.StatusOK, h.engine.Pipeline(deals, now))
}

// handleContactBadges computes badges for one contact. The contact's deals
// are needed for the high-value check, so the whole snapshot is loaded.
func (h *Handler) handleContactBadges(w http.ResponseWriter, r *http.Request) {
	tenant := tenantID(r)
	if tenant == "" {
		writeError(w, http.StatusBadRequest, "missing tenant")
		return
	}
	contactID := r.PathValue("contactID")

	now := h.now()
	snap, err := h.store.LoadSnapshot(r.Context(), tenant, now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "loading snapshot failed")
		return
	}

	for _, c := range snap.Contacts {
		if c.ID == contactID {
			badges := h.engine.ContactBadges(c, snap.DealsByContact()[c.ID], now)
			if badges == nil {
				badges = []insight.Badge{}
			}
			writeJSON(w, http.StatusOK, badges)
			return
		}
	}
	writeError(w, http.StatusNotFound, fmt.Sprintf("contact %s not found", contactID))
}

func (h *Handler) handleDealHealth(w http.ResponseWriter, r *http.Request) {
	tenant := tenantID(r)
	if tenant == "" {
		writeError(w, http.StatusBadRequest, "missing tenant")
		return
	}
	dealID := r.PathValue("dealID")

	now := h.now()
	deals, err := h.store.ListDeals(r.Context(), tenant)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "loading deals failed")
		return
	}

	for _, d := range deals {
		if d.ID == dealID {
			writeJSON(w, http.StatusOK, h.engine.ScoreDeal(d, now))
			return
		}
	}
	writeError(w, http.StatusNotFound, fmt.Sprintf("deal %s not found", dealID))
}
