package api

import (
	"encoding/json"
	"net/http"

	"github.com/aerologix/aerologix/internal/auth"
	"github.com/aerologix/aerologix/internal/fleet"
)

// Handler holds API route handlers.
type Handler struct {
	svc *fleet.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *fleet.Service) *Handler {
	return &Handler{svc: svc}
}

// Signup handles POST /api/auth/signup.
//
//	@Summary		Create an account and open a session
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		signupRequest	true	"Account to create"
//	@Success		201		{object}	authResponse
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Router			/auth/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	user, token, err := h.svc.Signup(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		writeServiceError(w, err, "signup")
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

// Login handles POST /api/auth/login.
//
//	@Summary		Exchange credentials for a bearer token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		loginRequest	true	"Credentials"
//	@Success		200		{object}	authResponse
//	@Failure		401		{object}	errResponse
//	@Router			/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	user, token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err, "login")
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

// Logout handles POST /api/auth/logout.
//
//	@Summary		Destroy the current session
//	@Tags			auth
//	@Success		204	"Session destroyed"
//	@Security		BearerAuth
//	@Router			/auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := auth.ExtractBearer(r.Header.Get("Authorization"))
	if err := h.svc.Logout(r.Context(), token); err != nil {
		writeServiceError(w, err, "logout")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/auth/me.
//
//	@Summary		Return the authenticated user
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	models.User
//	@Security		BearerAuth
//	@Router			/auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currentUser(r))
}
