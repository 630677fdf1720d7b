package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/gridskirmish-backend/internal/apperror"
	"github.com/rocketscienceinc/gridskirmish-backend/internal/entity"
)

// MatchJournal is the read side of the match journal.
type MatchJournal interface {
	GetSnapshot(ctx context.Context, matchID string) (*entity.Snapshot, error)
	ListMoves(ctx context.Context, matchID string) ([]*entity.MoveRecord, error)
}

// LiveMatches lists matches bound to open connections.
type LiveMatches interface {
	Live() []entity.LiveMatch
}

type errorBody struct {
	Error string `json:"error"`
}

type handlers struct {
	logger  *slog.Logger
	journal MatchJournal
	live    LiveMatches
}

func newHandlers(logger *slog.Logger, journal MatchJournal, live LiveMatches) *handlers {
	return &handlers{
		logger:  logger,
		journal: journal,
		live:    live,
	}
}

func (that *handlers) listLive(c *gin.Context) {
	c.JSON(http.StatusOK, that.live.Live())
}

// requireJournal - aborts with 503 when the server runs without a journal.
func (that *handlers) requireJournal(c *gin.Context) {
	if that.journal == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, errorBody{Error: "match journal is disabled"})
		return
	}

	c.Next()
}

func (that *handlers) getMatch(c *gin.Context) {
	snapshot, err := that.journal.GetSnapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		that.writeError(c, "getMatch", err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func (that *handlers) listMoves(c *gin.Context) {
	moves, err := that.journal.ListMoves(c.Request.Context(), c.Param("id"))
	if err != nil {
		that.writeError(c, "listMoves", err)
		return
	}

	c.JSON(http.StatusOK, moves)
}

func (that *handlers) writeError(c *gin.Context, method string, err error) {
	if errors.Is(err, apperror.ErrMatchNotFound) {
		c.JSON(http.StatusNotFound, errorBody{Error: err.Error()})
		return
	}

	that.logger.Error("failed to read match journal", "method", method, "match", c.Param("id"), "error", err)
	c.JSON(http.StatusInternalServerError, errorBody{Error: http.StatusText(http.StatusInternalServerError)})
}
