// Package server wires the HTTP router: middleware chain, public endpoints,
// and the session-protected API.
package server

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"alumni-network/backend/internal/accesspolicy"
	companyhandler "alumni-network/backend/internal/company/handler"
	healthhandler "alumni-network/backend/internal/health/handler"
	identityhandler "alumni-network/backend/internal/identity/handler"
	invitationhandler "alumni-network/backend/internal/invitation/handler"
	posthandler "alumni-network/backend/internal/post/handler"
	"alumni-network/backend/internal/server/middleware"
	sessionhandler "alumni-network/backend/internal/session/handler"
	sessionsvc "alumni-network/backend/internal/session/service"
	"alumni-network/backend/internal/telemetry"
	userhandler "alumni-network/backend/internal/user/handler"
)

// Deps carries everything the router needs. All fields are required except
// Emitter, which may be nil to disable request telemetry.
type Deps struct {
	Gateway      *sessionsvc.Gateway
	AccessPolicy accesspolicy.Evaluator
	Emitter      telemetry.EventEmitter

	Credentials *identityhandler.Handler
	Sessions    *sessionhandler.Handler
	Invitations *invitationhandler.Handler
	Members     *userhandler.Handler
	Posts       *posthandler.Handler
	Companies   *companyhandler.Handler
	Health      *healthhandler.Handler
}

// New builds the router. Public endpoints (session exchange, signup,
// eligibility, health) sit outside RequireSession; everything else under
// /api requires a verified session. The access guard wraps all non-API paths.
func New(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	if deps.Emitter != nil {
		r.Use(middleware.Telemetry(deps.Emitter))
	}
	r.Use(middleware.AccessGuard(deps.AccessPolicy))

	r.Get("/healthz", deps.Health.Check)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", deps.Credentials.Login)
		r.Post("/session", deps.Sessions.Create)
		r.Delete("/session", deps.Sessions.Destroy)
		r.Post("/signup", deps.Members.Signup)
		r.Get("/signup/eligibility", deps.Invitations.Eligibility)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(deps.Gateway))

			r.Post("/invitations", deps.Invitations.Issue)

			r.Get("/me", deps.Members.Me)
			r.Put("/me", deps.Members.UpdateMe)
			r.Get("/members", deps.Members.List)

			r.Get("/posts", deps.Posts.List)
			r.Post("/posts", deps.Posts.Create)
			r.Post("/posts/{id}/like", deps.Posts.Like)
			r.Delete("/posts/{id}/like", deps.Posts.Unlike)

			r.Get("/companies", deps.Companies.List)
			r.Post("/companies", deps.Companies.Create)
		})
	})

	return r
}
