package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aerologix/aerologix/internal/models"
)

// GetComponentSettings handles GET /api/components/aircraft/{id}.
//
//	@Summary		Get component settings, regulation defaults when unset
//	@Tags			components
//	@Produce		json
//	@Param			id	path		string	true	"Aircraft ID"
//	@Success		200	{object}	componentSettingsResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/components/aircraft/{id} [get]
func (h *Handler) GetComponentSettings(w http.ResponseWriter, r *http.Request) {
	cs, err := h.svc.GetComponentSettings(r.Context(), currentUser(r), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "get component settings")
		return
	}
	writeJSON(w, http.StatusOK, componentSettingsResponse{
		ComponentSettings: *cs,
		Regulations:       models.CanadianRegulations,
	})
}

// PutComponentSettings handles PUT /api/components/aircraft/{id}.
//
//	@Summary		Create or replace component settings
//	@Tags			components
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Aircraft ID"
//	@Param			body	body		componentSettingsRequest	true	"Settings"
//	@Success		200		{object}	componentSettingsResponse
//	@Failure		400		{object}	errResponse
//	@Failure		403		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/components/aircraft/{id} [put]
func (h *Handler) PutComponentSettings(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req componentSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	cs, err := h.svc.PutComponentSettings(r.Context(), currentUser(r), chi.URLParam(r, "id"), req.ComponentSettings)
	if err != nil {
		writeServiceError(w, err, "put component settings")
		return
	}
	writeJSON(w, http.StatusOK, componentSettingsResponse{
		ComponentSettings: *cs,
		Regulations:       models.CanadianRegulations,
	})
}

// Regulations handles GET /api/components/regulations.
//
//	@Summary		Transport Canada reference values
//	@Tags			components
//	@Produce		json
//	@Success		200	{object}	regulationsResponse
//	@Security		BearerAuth
//	@Router			/components/regulations [get]
func (h *Handler) Regulations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, regulationsResponse{
		Disclaimer:  regulationsDisclaimer,
		Regulations: models.CanadianRegulations,
		Sources:     regulationsSources,
	})
}
