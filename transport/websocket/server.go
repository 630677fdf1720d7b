package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/gridskirmish-backend/internal/match"
	"github.com/rocketscienceinc/gridskirmish-backend/internal/session"
)

const (
	writeWait       = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

type matchTracker interface {
	Open(matchID, remote string) error
	Close(matchID string)
}

type Server struct {
	logger   *slog.Logger
	recorder session.Recorder
	tracker  matchTracker
	options  []match.Option

	upgrader websocket.Upgrader
}

// New - every accepted connection gets its own engine built with opts.
func New(logger *slog.Logger, recorder session.Recorder, tracker matchTracker, opts ...match.Option) *Server {
	return &Server{
		logger:   logger.With("component", "websocket"),
		recorder: recorder,
		tracker:  tracker,
		options:  opts,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
	}
}

// Handler - http handler upgrading requests on the server root.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server and blocks until ctx is cancelled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection and serves one match on it.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	handler := session.New(that.logger, uuid.NewString(), match.NewEngine(that.options...), that.recorder)

	if err = that.tracker.Open(handler.MatchID(), req.RemoteAddr); err != nil {
		log.Error("failed to register match", "match", handler.MatchID(), "error", err)
		return
	}

	defer that.tracker.Close(handler.MatchID())

	log.Info("WebSocket connection established", "match", handler.MatchID(), "remote", req.RemoteAddr)

	if err = that.handleMessages(ctx, conn, handler); err != nil {
		log.Error("error handling messages", "match", handler.MatchID(), "error", err)
	}

	log.Info("WebSocket connection closed", "match", handler.MatchID())
}

// handleMessages - processes messages from the client one at a time.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn, handler *session.Handler) error {
	log := that.logger.With("method", "handleMessages", "match", handler.MatchID())

	greeting, err := session.Encode(handler.Greeting())
	if err != nil {
		return fmt.Errorf("failed to encode greeting: %w", err)
	}

	if err = that.sendMessage(conn, greeting); err != nil {
		return err
	}

	stop := context.AfterFunc(ctx, func() {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		_ = conn.Close()
	})
	defer stop()

	for {
		messageType, reqBody, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
				ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("error reading message: %w", err)
		}

		if messageType != websocket.TextMessage && messageType != websocket.BinaryMessage {
			continue
		}

		reply, err := handler.HandleAndEncode(ctx, reqBody)
		if err != nil {
			log.Error("failed to encode reply", "error", err)
			continue
		}

		if reply == nil {
			continue
		}

		if err = that.sendMessage(conn, reply); err != nil {
			return err
		}
	}
}

// sendMessage - writes one text frame.
func (that *Server) sendMessage(conn *websocket.Conn, message []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}
