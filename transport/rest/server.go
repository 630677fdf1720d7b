package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

type Options struct {
	// Pprof registers the runtime profiling routes under /debug/pprof.
	Pprof bool
}

// NewRouter - journal may be nil, then the journal routes answer 503.
func NewRouter(logger *slog.Logger, journal MatchJournal, live LiveMatches, opts Options) *gin.Engine {
	log := logger.With("component", "rest")

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	router.GET("/ping", pingHandler)

	h := newHandlers(log, journal, live)

	matches := router.Group("/api/matches")
	matches.GET("", h.listLive)
	matches.GET("/:id", h.requireJournal, h.getMatch)
	matches.GET("/:id/moves", h.requireJournal, h.listMoves)

	if opts.Pprof {
		pprof.Register(router)
	}

	return router
}

// Start - serves the router until ctx is cancelled.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Debug("request served",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
