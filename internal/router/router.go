// Package router sets up all HTTP routes and middleware chains for the
// themeforge server. Reads are public; every write and the editor API sit
// behind the admin token.
package router

import (
	"github.com/go-chi/chi/v5"

	"themeforge/internal/handlers"
	"themeforge/internal/metrics"
	"themeforge/internal/middleware"
)

// Handlers groups the handler sets mounted by New.
type Handlers struct {
	Public *handlers.Public
	Themes *handlers.Themes
	Editor *handlers.Editor
	Fonts  *handlers.Fonts
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. writeLimit may be nil to disable rate
// limiting of writes.
func New(h Handlers, adminTokenHash string, writeLimit *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", h.Public.Health)
	r.Handle("/metrics", metrics.Handler())

	// Served theme and preview pages.
	r.Get("/theme.css", h.Public.Stylesheet)
	r.Get("/theme/bootstrap.js", h.Public.Bootstrap)
	r.Get("/", h.Public.Preview)
	r.Get("/tokens", h.Public.Tokens)

	requireAdmin := middleware.RequireAdmin(adminTokenHash)

	r.Route("/api", func(r chi.Router) {
		// Published themes: anyone may read, only admins write.
		r.Route("/themes/{id}", func(r chi.Router) {
			r.Get("/", h.Themes.Get)
			r.Get("/tokens.css", h.Themes.TokensCSS)
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				if writeLimit != nil {
					r.Use(writeLimit.Middleware)
				}
				r.Put("/", h.Themes.Put)
			})
		})

		// Editor sessions hold unpublished drafts, so reads are private too.
		r.Route("/editor/{id}", func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/", h.Editor.Get)
			r.Get("/tokens.css", h.Editor.TokensCSS)
			r.Get("/properties", h.Editor.Properties)
			r.Delete("/notice", h.Editor.DismissNotice)
			r.Group(func(r chi.Router) {
				if writeLimit != nil {
					r.Use(writeLimit.Middleware)
				}
				r.Post("/ops", h.Editor.Ops)
				r.Post("/publish", h.Editor.Publish)
				r.Post("/reset", h.Editor.Reset)
			})
		})

		r.Get("/fonts", h.Fonts.List)
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			if writeLimit != nil {
				r.Use(writeLimit.Middleware)
			}
			r.Post("/fonts", h.Fonts.Upload)
		})
	})

	return r
}
