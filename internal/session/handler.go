package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rocketscienceinc/gridskirmish-backend/internal/apperror"
	"github.com/rocketscienceinc/gridskirmish-backend/internal/entity"
	"github.com/rocketscienceinc/gridskirmish-backend/internal/match"
)

var ErrMissingPlayer = errors.New("player is required")

// Recorder journals what happens in a match. Failures never reach the client.
type Recorder interface {
	SaveSnapshot(ctx context.Context, snapshot *entity.Snapshot) error
	AppendMove(ctx context.Context, matchID string, move *entity.MoveRecord) error
}

// Handler is the protocol state of one connection. It owns its engine for the
// whole lifetime of the connection and must be driven one message at a time.
type Handler struct {
	logger   *slog.Logger
	matchID  string
	engine   *match.Engine
	recorder Recorder

	handlers map[string]func(ctx context.Context, req *Request) *Response
}

func New(logger *slog.Logger, matchID string, engine *match.Engine, recorder Recorder) *Handler {
	handler := &Handler{
		logger:   logger.With("component", "session", "match", matchID),
		matchID:  matchID,
		engine:   engine,
		recorder: recorder,

		handlers: make(map[string]func(context.Context, *Request) *Response),
	}

	handler.handlers[TypeJoin] = handler.handleJoin
	handler.handlers[TypePlace] = handler.handlePlace
	handler.handlers[TypeMove] = handler.handleMove
	handler.handlers[TypeHints] = handler.handleHints

	return handler
}

func (that *Handler) MatchID() string {
	return that.matchID
}

// Greeting - the message sent as soon as the connection is accepted.
func (that *Handler) Greeting() *Response {
	return &Response{Type: TypeInit, Match: that.matchID}
}

// Handle - processes one raw message. Returns nil when there is nothing to reply.
func (that *Handler) Handle(ctx context.Context, raw []byte) *Response {
	log := that.logger.With("method", "Handle")

	var req Request
	if err := sonic.Unmarshal(raw, &req); err != nil {
		log.Debug("ignoring malformed message", "error", err)
		return nil
	}

	handler, ok := that.handlers[req.Type]
	if !ok {
		log.Debug("ignoring unknown message type", "type", req.Type)
		return nil
	}

	if req.Player == "" {
		log.Debug("ignoring message", "type", req.Type, "error", ErrMissingPlayer)
		return nil
	}

	return handler(ctx, &req)
}

// HandleAndEncode - Handle followed by encoding of the reply.
func (that *Handler) HandleAndEncode(ctx context.Context, raw []byte) ([]byte, error) {
	resp := that.Handle(ctx, raw)
	if resp == nil {
		return nil, nil
	}

	return Encode(resp)
}

func Encode(resp *Response) ([]byte, error) {
	return sonic.Marshal(resp)
}

func (that *Handler) handleJoin(ctx context.Context, req *Request) *Response {
	that.engine.RegisterPlayer(req.Player)
	that.saveSnapshot(ctx)

	that.logger.Info("player joined", "player", req.Player)

	return &Response{Type: TypeJoined, Player: req.Player}
}

func (that *Handler) handlePlace(ctx context.Context, req *Request) *Response {
	log := that.logger.With("method", "handlePlace", "player", req.Player)

	placed := 0
	for i, raw := range req.Characters {
		var character Character
		if err := sonic.Unmarshal(raw, &character); err != nil {
			log.Debug("skipping malformed character", "index", i, "error", err)
			continue
		}

		variant, ok := entity.ParseVariant(character.Type)
		if !ok {
			log.Debug("skipping character with unknown type", "name", character.Name, "type", character.Type)
			continue
		}

		if character.Position == nil {
			log.Debug("skipping character without position", "name", character.Name)
			continue
		}

		if err := that.engine.PlacePiece(req.Player, character.Name, variant, *character.Position); err != nil {
			log.Warn("skipping character", "name", character.Name, "error", err)
			continue
		}

		placed++
	}

	that.saveSnapshot(ctx)

	log.Info("characters placed", "placed", placed, "requested", len(req.Characters))

	return that.boardResponse()
}

func (that *Handler) handleMove(ctx context.Context, req *Request) *Response {
	log := that.logger.With("method", "handleMove", "player", req.Player)

	if req.Player != that.engine.Turn() {
		log.Info("move out of turn", "error", apperror.ErrNotYourTurn, "turn", that.engine.Turn())
		return errorResponse(MessageNotYourTurn)
	}

	from, _ := that.engine.Position(req.Player, req.Character)

	if err := that.engine.MovePiece(req.Player, req.Character, req.Move); err != nil {
		log.Info("move rejected", "character", req.Character, "move", req.Move, "error", err)
		return errorResponse(MessageInvalidMove)
	}

	that.engine.PassTurn()

	that.recordMove(ctx, req, from)
	that.saveSnapshot(ctx)

	log.Info("character moved", "character", req.Character, "move", req.Move, "turn", that.engine.Turn())

	return that.boardResponse()
}

func (that *Handler) handleHints(_ context.Context, req *Request) *Response {
	hints, err := that.engine.MoveHints(req.Player, req.Character)
	if err != nil {
		that.logger.Debug("no hints", "player", req.Player, "character", req.Character, "error", err)
		return errorResponse(MessageInvalidMove)
	}

	return &Response{Type: TypeHints, Character: req.Character, Hints: &hints}
}

func (that *Handler) boardResponse() *Response {
	return &Response{Type: TypeBoard, State: that.engine.BoardView().Strings()}
}

func errorResponse(message string) *Response {
	return &Response{Type: TypeError, Message: message}
}

func (that *Handler) recordMove(ctx context.Context, req *Request, from entity.Coordinate) {
	to, _ := that.engine.Position(req.Player, req.Character)

	record := &entity.MoveRecord{
		Seq:    that.engine.Moves(),
		Player: req.Player,
		Piece:  req.Character,
		Token:  req.Move,
		From:   from,
		To:     to,
		At:     time.Now().UTC(),
	}

	if err := that.recorder.AppendMove(ctx, that.matchID, record); err != nil {
		that.logger.Error("failed to record move", "error", err)
	}
}

func (that *Handler) saveSnapshot(ctx context.Context) {
	snapshot := &entity.Snapshot{
		MatchID:   that.matchID,
		Turn:      that.engine.Turn(),
		Board:     that.engine.BoardView().Strings(),
		Moves:     that.engine.Moves(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := that.recorder.SaveSnapshot(ctx, snapshot); err != nil {
		that.logger.Error("failed to save snapshot", "error", err)
	}
}

// NopRecorder is used when the match journal is disabled.
type NopRecorder struct{}

func (NopRecorder) SaveSnapshot(context.Context, *entity.Snapshot) error {
	return nil
}

func (NopRecorder) AppendMove(context.Context, string, *entity.MoveRecord) error {
	return nil
}
