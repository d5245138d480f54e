package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/config"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/logger"
)

// Start serves until ctx is cancelled, then shuts down gracefully
func Start(ctx context.Context, cfg *config.Config, router http.Handler) error {
	log := logger.App()
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("http server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown)
		defer cancel()
		log.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
