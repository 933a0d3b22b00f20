// Package httpapi exposes the community portal's JSON API: the auth flow
// (login, 2FA verification, token check, logout) and the role-gated
// content endpoints backing the portal views.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mkalinins/commportal/internal/logging"
	"github.com/mkalinins/commportal/internal/portal"
)

// RouterDeps bundles everything NewRouter needs.
type RouterDeps struct {
	Auth          AuthService
	Verifier      TokenVerifier
	Content       ContentStore
	Log           logging.Logger
	AllowedOrigin string
	LoginRPS      float64
	LoginBurst    int
}

// NewRouter builds the full route tree. The login and 2FA endpoints sit
// behind a rate limiter and outside the auth middleware; everything else
// requires a valid bearer token, with the board and admin groups gated by
// a minimum role on top.
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	authHandler := NewAuthHandler(deps.Auth, deps.Log)
	contentHandler := NewContentHandler(deps.Content)

	r.Route("/api/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(RateLimit(deps.LoginRPS, deps.LoginBurst))
			r.Post("/login", authHandler.Login)
			r.Post("/verify-2fa", authHandler.Verify2FA)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(deps.Verifier))
			r.Get("/verify", authHandler.Verify)
			r.Post("/logout", authHandler.Logout)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(deps.Verifier))

		r.Get("/api/news", contentHandler.News)
		r.Route("/api/chat/rooms", func(r chi.Router) {
			r.Get("/", contentHandler.ChatRooms)
			r.Get("/{roomID}/messages", contentHandler.Messages)
			r.Post("/{roomID}/messages", contentHandler.PostMessage)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireRole(portal.RoleBoard))
			r.Get("/api/board/meetings", contentHandler.Meetings)
			r.Get("/api/board/discussions", contentHandler.Discussions)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireRole(portal.RoleAdmin))
			r.Get("/api/admin/documents", contentHandler.Documents)
		})
	})

	return r
}
