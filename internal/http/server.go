package http

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/samjsmart/gig-int-garden-api/internal/platform/logger"
)

const shutdownGrace = 10 * time.Second

type Server struct {
	Engine *gin.Engine
	log    *logger.Logger
}

func NewServer(cfg RouterConfig) *Server {
	return &Server{Engine: NewRouter(cfg), log: cfg.Log}
}

// Run serves until the listener fails or the process receives
// SIGINT/SIGTERM, then drains in-flight submissions before returning.
// A submission that has already passed validation gets its full
// pipeline run inside the grace window.
func (s *Server) Run(address string) error {
	srv := &http.Server{
		Addr:    address,
		Handler: s.Engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		if s.log != nil {
			s.log.Info("Shutting down", "signal", sig.String())
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(ctx)
}
