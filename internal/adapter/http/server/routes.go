package server

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/fareline/fareline/docs"
)

// setupRoutes - setups http routes
func (a *API) setupRoutes() {
	// System health
	a.mux.HandleFunc("GET /health", a.routes.health.HealthCheck)

	// Auth
	a.mux.HandleFunc("POST /auth/signup", a.routes.auth.Signup)
	a.mux.HandleFunc("POST /auth/login", a.routes.auth.Login)
	a.mux.HandleFunc("POST /auth/refresh", a.routes.auth.Refresh)
	a.mux.Handle("GET /auth/me", a.m.RequireAuth(a.routes.auth.Profile))

	// Rides
	a.mux.Handle("GET /rides/search", a.m.RequireAuth(a.routes.ride.Search))
	a.mux.Handle("POST /rides/book", a.m.RequireAuth(a.routes.ride.Book))
	a.mux.Handle("GET /rides/history", a.m.RequireAuth(a.routes.ride.History))

	// Swagger UI
	a.mux.HandleFunc("/swagger/", httpSwagger.Handler())

	// Prometheus metrics
	a.mux.Handle("/metrics", promhttp.Handler())
}
