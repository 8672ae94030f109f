package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aerologix/aerologix/internal/fleet"
	"github.com/aerologix/aerologix/internal/storage"
)

// NewRouter creates a chi router with all API routes mounted. Signup and
// login are public; everything else requires a bearer token.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *fleet.Service, media storage.Provider, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)
	mh := NewMediaHandler(h, media)

	r := chi.NewRouter()

	// Public auth endpoints.
	r.Post("/auth/signup", h.Signup)
	r.Post("/auth/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(svc))

		r.Post("/auth/logout", h.Logout)
		r.Get("/auth/me", h.Me)

		// Aircraft CRUD.
		r.Get("/aircraft", h.ListAircraft)
		r.Post("/aircraft", h.CreateAircraft)
		r.Get("/aircraft/shared", h.ListSharedAircraft)
		r.Get("/aircraft/{id}", h.GetAircraft)
		r.Put("/aircraft/{id}", h.UpdateAircraft)
		r.Delete("/aircraft/{id}", h.DeleteAircraft)

		// Media.
		r.Post("/aircraft/{id}/photo", mh.UploadPhoto)
		r.Get("/aircraft/{id}/media", mh.ListMedia)

		// Sharing.
		r.Post("/shares", h.InviteShare)
		r.Get("/shares/received", h.ReceivedShares)
		r.Get("/shares/aircraft/{id}", h.ListShares)
		r.Post("/shares/{id}/accept", h.AcceptShare)
		r.Delete("/shares/{id}", h.RevokeShare)

		// ELT compliance.
		r.Get("/elt/aircraft/{id}", h.GetELT)
		r.Put("/elt/aircraft/{id}", h.PutELT)
		r.Delete("/elt/aircraft/{id}", h.DeleteELT)
		r.Get("/elt/aircraft/{id}/status", h.ELTStatus)

		// Component settings and regulation reference values.
		r.Get("/components/regulations", h.Regulations)
		r.Get("/components/aircraft/{id}", h.GetComponentSettings)
		r.Put("/components/aircraft/{id}", h.PutComponentSettings)

		// SSE endpoint (protected by same auth middleware).
		if sseHandler != nil {
			r.Get("/events", sseHandler.ServeHTTP)
		}
	})

	return r
}

// MediaRouter serves stored media files at /media/{id}/{filename}. Mounted
// separately so photo URLs stay stable regardless of the API prefix.
func MediaRouter(svc *fleet.Service, media storage.Provider) chi.Router {
	mh := NewMediaHandler(NewHandler(svc), media)

	r := chi.NewRouter()
	r.Use(RequireAuth(svc))
	r.Get("/{id}/{filename}", mh.ServeFile)
	return r
}
