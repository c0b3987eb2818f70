// Package http serves the bot's status endpoints.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/corporatewarfare/cwbot/internal/interfaces/http/handlers"
	tickethandlers "github.com/corporatewarfare/cwbot/internal/interfaces/http/handlers/ticket"
	"github.com/corporatewarfare/cwbot/internal/interfaces/http/middleware"
	"github.com/corporatewarfare/cwbot/internal/interfaces/http/routes"
	"github.com/corporatewarfare/cwbot/internal/shared/logger"
)

const shutdownTimeout = 10 * time.Second

// Router represents the HTTP router configuration
type Router struct {
	engine *gin.Engine
	logger logger.Interface
}

// NewRouter wires the status routes. debug switches gin into debug mode.
func NewRouter(
	healthHandler *handlers.HealthHandler,
	ticketHandler *tickethandlers.TicketHandler,
	log logger.Interface,
	debug bool,
) *Router {
	if debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.Recovery(log), middleware.Logger(log))

	engine.GET("/healthz", healthHandler.Healthz)
	routes.SetupTicketRoutes(engine, &routes.TicketRouteConfig{TicketHandler: ticketHandler})

	return &Router{engine: engine, logger: log}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (r *Router) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.logger.Infow("status server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	r.logger.Infow("status server stopped")
	return nil
}
