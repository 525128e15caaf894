package main

import (
	"expvar"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func (app *application) routes() http.Handler {
	router := chi.NewRouter()

	// Router
	router.NotFound(app.notFoundResponse)
	router.MethodNotAllowed(app.methodNotAllowedRequest)

	// Middleware
	router.Use(app.metrics)
	router.Use(app.recoverPanic)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.cors.trustedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           60,
	}))
	router.Use(app.rateLimit)
	router.Use(app.authenticate)

	// Healthcheck
	router.Get("/v1/healthcheck", app.HealthCheck)
	router.Method(http.MethodGet, "/v1/metrics", expvar.Handler())

	// User Endpoints
	router.Post("/v1/user", app.RegisterUser)
	router.Put("/v1/user/activate", app.ActivateUser)
	router.Post("/v1/user/login", app.LoginUser)

	// Roster Endpoints
	router.Route("/v1/roster", func(router chi.Router) {
		router.Use(app.requireActivatedUser)
		router.Post("/", app.InsertRoster)
		router.Get("/", app.GetAllRosters)
		router.Get("/{id}", app.GetRoster)
		router.Delete("/{id}", app.DeleteRoster)
		router.Post("/import", app.ImportRosters)
	})

	// Live Game Endpoints
	router.With(func(next http.Handler) http.Handler {
		return app.requirePermission("games:write", next)
	}).Post("/v1/live", app.StartLiveGame)
	router.With(app.requireActivatedUser).Delete("/v1/live/{pin}", app.EndLiveGame)
	router.With(app.requireActivatedUser).Get("/v1/live/{pin}", app.SnapshotLiveGame)
	router.With(app.requireActivatedUser).Get("/v1/live/{pin}/keeper", app.KeepLiveGame)
	router.Get("/v1/live/{pin}/watch", app.WatchLiveGame)

	// History Endpoints
	router.Route("/v1/history", func(router chi.Router) {
		router.Use(app.requireActivatedUser)
		router.Get("/", app.GetAllHistory)
		router.Get("/{id}", app.GetHistory)
		router.Get("/{id}/report", app.GetHistoryReport)
		router.Post("/{id}/summary", app.SummarizeHistory)
		router.Post("/{id}/email", app.EmailHistoryReport)
		router.With(func(next http.Handler) http.Handler {
			return app.requirePermission("history:write", next)
		}).Delete("/{id}", app.DeleteHistory)
	})

	return router
}
