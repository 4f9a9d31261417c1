package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/kevinclancy/kboard/backend/internal/setup"
	"github.com/kevinclancy/kboard/shared/metrics"
	mw "github.com/kevinclancy/kboard/shared/middleware"
)

// New creates the chi router with all routes.
// Every POST that creates content shares one per-user limiter. Search is
// public and limited per client IP instead.
func New(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(middleware.Compress(5))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.CorsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.SecurityHeaders(deps.Config.Public.SecureCookies))

	h := deps.Handler
	authMw := deps.AuthMiddleware
	postLimit := mw.RateLimit(deps.PostLimiter, mw.GetUserIDFromContext)
	searchLimit := mw.RateLimit(deps.SearchLimiter, mw.GetIP)

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(mw.LimitBody(mw.JSONBodyLimit(deps.Config.Public.MaxBodyLength)))

		// Public reads. Replies need the viewer to decide what is visible.
		r.Group(func(r chi.Router) {
			r.Use(authMw.OptionalAuth())

			r.Get("/boards", h.GetBoards)
			r.Get("/boards/{board}", h.GetBoard)
			r.Get("/boards/{board}/threads", h.GetThreads)
			r.Get("/boards/{board}/threads/{thread}", h.GetThread)
			r.Get("/boards/{board}/threads/{thread}/replies", h.GetReplies)
			r.With(searchLimit).Get("/search/replies", h.SearchReplies)
		})

		// Logged-in user routes
		r.Group(func(r chi.Router) {
			r.Use(authMw.NeedAuth())

			r.With(postLimit).Post("/boards/{board}/threads", h.CreateThread)
			r.With(postLimit).Post("/boards/{board}/threads/{thread}/replies", h.CreateReply)

			r.Patch("/replies/{reply}", h.EditReply)
			r.Post("/replies/{reply}/moderate", h.ModerateReply)
			r.Patch("/users/{user}", h.UpdateUser)
		})
	})

	return r
}
