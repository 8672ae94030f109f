package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aerologix/aerologix/internal/apperr"
	"github.com/aerologix/aerologix/internal/fleet"
)

// GetELT handles GET /api/elt/aircraft/{id}.
//
//	@Summary		Get the ELT record of an aircraft
//	@Tags			elt
//	@Produce		json
//	@Param			id	path		string	true	"Aircraft ID"
//	@Success		200	{object}	models.ELTRecord
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/elt/aircraft/{id} [get]
func (h *Handler) GetELT(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.GetELT(r.Context(), currentUser(r), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("ELT not configured"))
			return
		}
		writeServiceError(w, err, "get elt")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// PutELT handles PUT /api/elt/aircraft/{id}.
//
//	@Summary		Create or replace the ELT record
//	@Tags			elt
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string		true	"Aircraft ID"
//	@Param			body	body		eltRequest	true	"ELT record"
//	@Success		200		{object}	models.ELTRecord
//	@Failure		400		{object}	errResponse
//	@Failure		403		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/elt/aircraft/{id} [put]
func (h *Handler) PutELT(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req eltRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	rec, err := h.svc.PutELT(r.Context(), currentUser(r), chi.URLParam(r, "id"), fleet.ELTInput{
		Brand:                 req.Brand,
		Model:                 req.Model,
		SerialNumber:          req.SerialNumber,
		BeaconHexID:           req.BeaconHexID,
		InstallationDate:      req.InstallationDate.Ptr(),
		LastTestDate:          req.LastTestDate.Ptr(),
		BatteryExpiryDate:     req.BatteryExpiryDate.Ptr(),
		BatteryIntervalMonths: req.BatteryIntervalMonths,
	})
	if err != nil {
		writeServiceError(w, err, "put elt")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// DeleteELT handles DELETE /api/elt/aircraft/{id}.
//
//	@Summary		Remove the ELT record (owner only)
//	@Tags			elt
//	@Param			id	path	string	true	"Aircraft ID"
//	@Success		204	"ELT record removed"
//	@Failure		403	{object}	errResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/elt/aircraft/{id} [delete]
func (h *Handler) DeleteELT(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteELT(r.Context(), currentUser(r), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err, "delete elt")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ELTStatus handles GET /api/elt/aircraft/{id}/status.
//
//	@Summary		Derive the ELT compliance status
//	@Tags			elt
//	@Produce		json
//	@Param			id	path		string	true	"Aircraft ID"
//	@Success		200	{object}	elt.StatusReport
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/elt/aircraft/{id}/status [get]
func (h *Handler) ELTStatus(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.ELTStatus(r.Context(), currentUser(r), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "elt status")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
