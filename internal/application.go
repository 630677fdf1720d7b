package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/gridskirmish-backend/internal/config"
	"github.com/rocketscienceinc/gridskirmish-backend/internal/repository"
	"github.com/rocketscienceinc/gridskirmish-backend/internal/repository/storage"
	"github.com/rocketscienceinc/gridskirmish-backend/internal/session"
	"github.com/rocketscienceinc/gridskirmish-backend/internal/usecase"
	"github.com/rocketscienceinc/gridskirmish-backend/transport/rest"
	"github.com/rocketscienceinc/gridskirmish-backend/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	var (
		recorder  session.Recorder = session.NopRecorder{}
		matchRepo repository.MatchRepository
	)

	if conf.Redis.Enabled {
		redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		matchRepo = repository.NewMatchRepository(redisStorage, conf.Redis.JournalTTL)
		recorder = matchRepo

		log.Info("Match journal enabled", "addr", conf.Redis.GetRedisAddr(), "ttl", conf.Redis.JournalTTL)
	}

	registry := usecase.NewMatchRegistry(logger)

	if conf.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		router := rest.NewRouter(logger, matchRepo, registry, rest.Options{Pprof: conf.Pprof})
		if httpErr := rest.Start(ctx, conf.HTTPPort, router); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, recorder, registry, conf.Match.EngineOptions()...)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err := <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
