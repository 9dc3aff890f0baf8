package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/itchan-dev/forum/backend/internal/setup"
	mw "github.com/itchan-dev/forum/shared/middleware"
	"github.com/itchan-dev/forum/shared/middleware/metrics"
	rl "github.com/itchan-dev/forum/shared/middleware/ratelimiter"
)

// New creates the chi router with all the routes.
// IMPORTANT! ratelimiters set with .Use limit requests for all endpoints combined in that group
func New(deps *setup.Dependencies) *chi.Mux {
	cfg := deps.Config.Public
	limiters := deps.RateLimiters
	if limiters == nil {
		limiters = &setup.RateLimiters{}
	}
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metrics.Middleware)
	r.Use(middleware.Recoverer)

	// setup CORS for frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.SecurityHeaders(cfg.SecureCookies))
	r.Use(limit(limiters.Global, globalIdentity))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		// Reads are open to anonymous users
		r.Group(func(r chi.Router) {
			r.Use(authMw.OptionalAuth())
			r.Use(limit(limiters.ReadPerIP, mw.GetIP))
			r.Get("/threads/{thread}", h.GetThread)
			r.Get("/posts/{post}", h.GetPost)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMw.NeedAuth())

			r.Group(func(r chi.Router) {
				r.Use(limit(limiters.WritePerUser, mw.GetUserIDFromContext))
				r.Post("/threads", h.CreateThread)
				r.Post("/threads/{thread}/posts", h.CreatePost)
				r.Put("/threads/{thread}/best_answer", h.SetBestAnswer)
				r.Delete("/threads/{thread}/best_answer", h.ClearBestAnswer)
			})

			r.Group(func(r chi.Router) {
				r.Use(limit(limiters.VotePerUser, mw.GetUserIDFromContext))
				r.Put("/posts/{post}/vote", h.CastVote)
				r.Delete("/posts/{post}/vote", h.RetractVote)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authMw.AdminOnly())
			r.Delete("/threads/{thread}", h.DeleteThread)
			r.Delete("/posts/{post}", h.DeletePost)
		})
	})

	return r
}

func globalIdentity(*http.Request) (string, error) {
	return "global", nil
}

// limit applies limiter per identity. A nil limiter lets everything through.
func limit(limiter *rl.UserRateLimiter, identity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	if limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return mw.RateLimit(limiter, identity)
}
