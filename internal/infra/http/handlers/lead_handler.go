package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/telecrm/internal/entity"
	"github.com/xavierca1/telecrm/internal/infra/http/middleware"
	"github.com/xavierca1/telecrm/internal/usecase"
)

type LeadHandler struct {
	CreateUC  *usecase.CreateLeadUseCase
	AddressUC *usecase.UpdateLeadAddressUseCase
	StatusUC  *usecase.UpdateLeadStatusUseCase
	DeleteUC  *usecase.DeleteLeadUseCase
	Queries   *usecase.LeadQueryUseCase
}

func NewLeadHandler(
	createUC *usecase.CreateLeadUseCase,
	addressUC *usecase.UpdateLeadAddressUseCase,
	statusUC *usecase.UpdateLeadStatusUseCase,
	deleteUC *usecase.DeleteLeadUseCase,
	queries *usecase.LeadQueryUseCase,
) *LeadHandler {
	return &LeadHandler{
		CreateUC:  createUC,
		AddressUC: addressUC,
		StatusUC:  statusUC,
		DeleteUC:  deleteUC,
		Queries:   queries,
	}
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, usecase.ValidationErrors{{Field: "body", Message: "invalid JSON"}})
		return
	}

	lead, err := h.CreateUC.Execute(r.Context(), actor, input)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordLeadCreated()
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    lead,
	})
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	leads, err := h.Queries.List(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(leads),
		"data":    leads,
	})
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	lead, err := h.Queries.Get(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    lead,
	})
}

// UpdateAddress decodes only the address field; anything else in the payload
// is dropped so protected fields cannot be overwritten by a bulk update.
func (h *LeadHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	var input usecase.UpdateLeadAddressInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, usecase.ValidationErrors{{Field: "body", Message: "invalid JSON"}})
		return
	}

	lead, err := h.AddressUC.Execute(r.Context(), actor, chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    lead,
	})
}

func (h *LeadHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	var input usecase.UpdateLeadStatusInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, usecase.ValidationErrors{{Field: "body", Message: "invalid JSON"}})
		return
	}

	lead, err := h.StatusUC.Execute(r.Context(), actor, chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, err)
		return
	}

	if lead.Status == entity.StatusConnected {
		middleware.RecordCallConnected()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    lead,
	})
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	if err := h.DeleteUC.Execute(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    map[string]any{},
	})
}

func (h *LeadHandler) Stats(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	stats, err := h.Queries.Stats(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    stats,
	})
}
