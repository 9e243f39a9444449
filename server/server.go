// Package server exposes the monitor over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"instawatch/models"

	"github.com/gin-gonic/gin"
)

// StatusSource is satisfied by *monitor.Monitor.
type StatusSource interface {
	Summary(ctx context.Context) models.StatusSummary
	Collect(ctx context.Context) models.StatusReport
}

// NewRouter registers the status routes.
func NewRouter(src StatusSource) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Summary only: one process-table scan, no CPU sampling
	r.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, src.Summary(c.Request.Context()))
	})

	r.GET("/status/report", func(c *gin.Context) {
		c.JSON(http.StatusOK, src.Collect(c.Request.Context()))
	})

	return r
}

// Run serves the router on addr until ctx is cancelled.
func Run(ctx context.Context, addr string, src StatusSource) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(src),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("status server listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
