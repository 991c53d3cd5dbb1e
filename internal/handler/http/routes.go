package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/signup", h.signUp)
		r.Post("/api/auth/login", h.login)
		r.Get("/api/auth/refresh_token", h.refreshToken)
		r.Get("/api/auth/confirmed_email/{token}", h.confirmEmail)
		r.Get("/api/version/", h.getServerVersion)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/logout", h.authed(h.logout))
		r.Get("/api/users/me", h.authed(h.me))
		r.Patch("/api/users/avatar", h.authed(h.updateAvatar))
		r.Get("/api/contacts/upcoming_birthdays", h.authed(h.upcomingBirthdays))
	})

	// rate limited contact routes, the limit is checked before the token
	router.Group(func(r chi.Router) {
		r.Use(h.withRateLimit, h.auth)

		r.Get("/api/contacts/", h.authed(h.listContacts))
		r.Post("/api/contacts/", h.authed(h.createContact))
		r.Get("/api/contacts/{id}", h.authed(h.getContact))
		r.Put("/api/contacts/{id}", h.authed(h.updateContact))
		r.Delete("/api/contacts/{id}", h.authed(h.deleteContact))
	})

	router.NotFound(CheckHTTPMethod)
	router.MethodNotAllowed(CheckHTTPMethod)

	return router
}
