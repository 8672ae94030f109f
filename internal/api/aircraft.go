package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aerologix/aerologix/internal/fleet"
	"github.com/aerologix/aerologix/internal/models"
)

// ListAircraft handles GET /api/aircraft.
//
//	@Summary		List the caller's aircraft, newest first
//	@Tags			aircraft
//	@Produce		json
//	@Success		200	{object}	map[string]any
//	@Security		BearerAuth
//	@Router			/aircraft [get]
func (h *Handler) ListAircraft(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListAircraft(r.Context(), currentUser(r))
	if err != nil {
		writeServiceError(w, err, "list aircraft")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"aircraft": items,
		"total":    len(items),
	})
}

// ListSharedAircraft handles GET /api/aircraft/shared.
//
//	@Summary		List aircraft shared with the caller via active shares
//	@Tags			aircraft
//	@Produce		json
//	@Success		200	{object}	map[string]any
//	@Security		BearerAuth
//	@Router			/aircraft/shared [get]
func (h *Handler) ListSharedAircraft(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListSharedAircraft(r.Context(), currentUser(r))
	if err != nil {
		writeServiceError(w, err, "list shared aircraft")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"aircraft": items,
		"total":    len(items),
	})
}

// GetAircraft handles GET /api/aircraft/{id}.
//
//	@Summary		Get one aircraft the caller may read
//	@Tags			aircraft
//	@Produce		json
//	@Param			id	path		string	true	"Aircraft ID"
//	@Success		200	{object}	models.Aircraft
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/aircraft/{id} [get]
func (h *Handler) GetAircraft(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.GetAircraft(r.Context(), currentUser(r), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "get aircraft")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// CreateAircraft handles POST /api/aircraft.
//
//	@Summary		Register a new aircraft
//	@Tags			aircraft
//	@Accept			json
//	@Produce		json
//	@Param			body	body		createAircraftRequest	true	"Aircraft to register"
//	@Success		201		{object}	models.Aircraft
//	@Failure		400		{object}	errResponse
//	@Failure		403		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/aircraft [post]
func (h *Handler) CreateAircraft(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createAircraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	a, err := h.svc.CreateAircraft(r.Context(), currentUser(r), fleet.CreateAircraftInput{
		Registration:   req.Registration,
		AircraftType:   req.AircraftType,
		Manufacturer:   req.Manufacturer,
		Model:          req.Model,
		Year:           req.Year,
		SerialNumber:   req.SerialNumber,
		AirframeHours:  req.AirframeHours,
		EngineHours:    req.EngineHours,
		PropellerHours: req.PropellerHours,
		PhotoURL:       req.PhotoURL,
		Description:    req.Description,
	})
	if err != nil {
		writeServiceError(w, err, "create aircraft")
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// UpdateAircraft handles PUT /api/aircraft/{id}.
//
//	@Summary		Partially update an aircraft
//	@Tags			aircraft
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Aircraft ID"
//	@Param			body	body		models.AircraftUpdate	true	"Fields to change"
//	@Success		200		{object}	models.Aircraft
//	@Failure		400		{object}	errResponse
//	@Failure		403		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/aircraft/{id} [put]
func (h *Handler) UpdateAircraft(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var upd models.AircraftUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	a, err := h.svc.UpdateAircraft(r.Context(), currentUser(r), chi.URLParam(r, "id"), upd)
	if err != nil {
		writeServiceError(w, err, "update aircraft")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// DeleteAircraft handles DELETE /api/aircraft/{id}.
//
//	@Summary		Delete an aircraft and its stored media
//	@Tags			aircraft
//	@Param			id	path	string	true	"Aircraft ID"
//	@Success		204	"Aircraft deleted"
//	@Failure		403	{object}	errResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/aircraft/{id} [delete]
func (h *Handler) DeleteAircraft(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteAircraft(r.Context(), currentUser(r), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err, "delete aircraft")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
