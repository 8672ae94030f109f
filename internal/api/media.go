package api

import (
	"io"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/aerologix/aerologix/internal/storage"
)

const maxUploadBytes = 50 << 20 // 50 MB

// MediaHandler serves and accepts aircraft media files. Access control is
// delegated to the service layer: every request resolves the aircraft
// through the caller's read or write scope first.
type MediaHandler struct {
	*Handler
	media storage.Provider
}

// NewMediaHandler creates a media handler on top of the API handler.
func NewMediaHandler(h *Handler, media storage.Provider) *MediaHandler {
	return &MediaHandler{Handler: h, media: media}
}

// UploadPhoto handles POST /api/aircraft/{id}/photo (multipart, field "file").
//
//	@Summary		Upload an aircraft photo
//	@Tags			media
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id		path		string	true	"Aircraft ID"
//	@Param			file	formData	file	true	"Photo"
//	@Success		201		{object}	models.MediaInfo
//	@Failure		400		{object}	errResponse
//	@Failure		403		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/aircraft/{id}/photo [post]
func (h *MediaHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'file' field in multipart form"))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read file"))
		return
	}

	info, err := h.svc.AttachPhoto(r.Context(), currentUser(r), chi.URLParam(r, "id"), header.Filename, content)
	if err != nil {
		writeServiceError(w, err, "upload photo")
		return
	}
	writeJSON(w, http.StatusCreated, info)
}

// ListMedia handles GET /api/aircraft/{id}/media.
//
//	@Summary		List stored media of an aircraft
//	@Tags			media
//	@Produce		json
//	@Param			id	path		string	true	"Aircraft ID"
//	@Success		200	{object}	map[string]any
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/aircraft/{id}/media [get]
func (h *MediaHandler) ListMedia(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListMedia(r.Context(), currentUser(r), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "list media")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"media": items,
		"total": len(items),
	})
}

// ServeFile handles GET /media/{id}/{filename}. The caller must be able to
// read the aircraft; file names never touch the filesystem unvalidated.
func (h *MediaHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	aircraftID := chi.URLParam(r, "id")
	filename := chi.URLParam(r, "filename")

	if _, err := h.svc.GetAircraft(r.Context(), currentUser(r), aircraftID); err != nil {
		writeServiceError(w, err, "serve media")
		return
	}
	abs, err := h.media.Path(aircraftID, filename)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid filename"))
		return
	}
	if _, statErr := os.Stat(abs); os.IsNotExist(statErr) {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	http.ServeFile(w, r, abs)
}
