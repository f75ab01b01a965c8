package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fareline/fareline/config"
	"github.com/fareline/fareline/internal/adapter/http/handler"
	"github.com/fareline/fareline/internal/adapter/http/middleware"
	"github.com/fareline/fareline/pkg/logger"
	wrap "github.com/fareline/fareline/pkg/logger/wrapper"
)

const serviceName = "fareline"

type API struct {
	mux    *http.ServeMux
	server *http.Server
	routes *handlers
	m      *middleware.Middleware

	addr string
	cfg  config.Config
	log  logger.Logger
}

type handlers struct {
	ride   *handler.Ride
	auth   *handler.Auth
	health *handler.Health
}

func New(
	cfg config.Config,
	quoteService handler.QuoteService,
	bookingService handler.BookingService,
	authService handler.AuthService,
	log logger.Logger,
) (*API, error) {
	if authService == nil {
		return nil, errors.New("auth service is required")
	}
	if quoteService == nil || bookingService == nil {
		return nil, errors.New("ride services are required")
	}

	routes := &handlers{
		ride:   handler.NewRide(quoteService, bookingService, log),
		auth:   handler.NewAuth(authService, log),
		health: handler.NewHealth(serviceName, log),
	}

	mid := middleware.NewMiddleware(authService, log)

	api := &API{
		mux:    http.NewServeMux(),
		routes: routes,
		m:      mid,
		addr:   fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		cfg:    cfg,
		log:    log,
	}

	api.server = &http.Server{
		Addr:    api.addr,
		Handler: api.withMiddleware(),
	}

	api.setupRoutes()

	return api, nil
}

func (a *API) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	ctx = wrap.WithAction(ctx, "http_server_stop")

	a.log.Debug(ctx, "shutting down HTTP server...", "address", a.addr)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	a.log.Debug(ctx, "shutting down HTTP server completed")

	return nil
}

func (a *API) Run(ctx context.Context, errCh chan<- error) {
	go func() {
		ctx = wrap.WithAction(ctx, "http_server_start")
		a.log.Info(ctx, "started http server", "address", a.addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
			return
		}
	}()
}

// withMiddleware applies the global middleware chain to the mux
func (a *API) withMiddleware() http.Handler {
	chain := a.m.Metrics(serviceName)(a.mux)
	chain = a.m.Logging(chain)
	chain = a.m.Auth(chain)
	chain = a.m.RequestID(chain)
	return a.m.Recover(chain)
}
