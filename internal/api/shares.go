package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// InviteShare handles POST /api/shares.
//
//	@Summary		Invite a mechanic to an aircraft
//	@Tags			shares
//	@Accept			json
//	@Produce		json
//	@Param			body	body		inviteShareRequest	true	"Invitation"
//	@Success		201		{object}	models.Share
//	@Failure		400		{object}	errResponse
//	@Failure		403		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/shares [post]
func (h *Handler) InviteShare(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req inviteShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	share, err := h.svc.InviteShare(r.Context(), currentUser(r), req.AircraftID, req.MechanicEmail, req.Role)
	if err != nil {
		writeServiceError(w, err, "invite share")
		return
	}
	writeJSON(w, http.StatusCreated, share)
}

// ListShares handles GET /api/shares/aircraft/{id}.
//
//	@Summary		List all shares of an aircraft (owner only)
//	@Tags			shares
//	@Produce		json
//	@Param			id	path		string	true	"Aircraft ID"
//	@Success		200	{object}	map[string]any
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/shares/aircraft/{id} [get]
func (h *Handler) ListShares(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListShares(r.Context(), currentUser(r), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "list shares")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"shares": items,
		"total":  len(items),
	})
}

// ReceivedShares handles GET /api/shares/received.
//
//	@Summary		List invitations addressed to the caller
//	@Tags			shares
//	@Produce		json
//	@Success		200	{object}	map[string]any
//	@Security		BearerAuth
//	@Router			/shares/received [get]
func (h *Handler) ReceivedShares(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ReceivedShares(r.Context(), currentUser(r))
	if err != nil {
		writeServiceError(w, err, "received shares")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"shares": items,
		"total":  len(items),
	})
}

// AcceptShare handles POST /api/shares/{id}/accept.
//
//	@Summary		Accept a pending invitation
//	@Tags			shares
//	@Produce		json
//	@Param			id	path		string	true	"Share ID"
//	@Success		200	{object}	models.Share
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/shares/{id}/accept [post]
func (h *Handler) AcceptShare(w http.ResponseWriter, r *http.Request) {
	share, err := h.svc.AcceptShare(r.Context(), currentUser(r), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "accept share")
		return
	}
	writeJSON(w, http.StatusOK, share)
}

// RevokeShare handles DELETE /api/shares/{id}.
//
//	@Summary		Revoke a share (owner only)
//	@Tags			shares
//	@Param			id	path	string	true	"Share ID"
//	@Success		204	"Share revoked"
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/shares/{id} [delete]
func (h *Handler) RevokeShare(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RevokeShare(r.Context(), currentUser(r), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err, "revoke share")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
