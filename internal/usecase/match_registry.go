package usecase

import (
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/rocketscienceinc/gridskirmish-backend/internal/entity"
)

var ErrMatchAlreadyExists = errors.New("match already exists")

// MatchRegistry keeps track of the matches bound to open connections.
// It is safe for concurrent use.
type MatchRegistry struct {
	logger *slog.Logger
	now    func() time.Time

	mu      sync.RWMutex
	matches map[string]entity.LiveMatch
}

func NewMatchRegistry(logger *slog.Logger) *MatchRegistry {
	return &MatchRegistry{
		logger:  logger.With("component", "registry"),
		now:     time.Now,
		matches: make(map[string]entity.LiveMatch),
	}
}

// Open - registers a match. Ids are unique for the lifetime of the registry entry.
func (that *MatchRegistry) Open(matchID, remote string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.matches[matchID]; ok {
		return ErrMatchAlreadyExists
	}

	that.matches[matchID] = entity.LiveMatch{
		MatchID:   matchID,
		Remote:    remote,
		StartedAt: that.now().UTC(),
	}

	that.logger.Debug("match opened", "match", matchID, "live", len(that.matches))

	return nil
}

// Close - forgets a match; closing an unknown id is a no-op.
func (that *MatchRegistry) Close(matchID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.matches, matchID)

	that.logger.Debug("match closed", "match", matchID, "live", len(that.matches))
}

// Live - open matches, oldest first.
func (that *MatchRegistry) Live() []entity.LiveMatch {
	that.mu.RLock()
	defer that.mu.RUnlock()

	live := make([]entity.LiveMatch, 0, len(that.matches))
	for _, liveMatch := range that.matches {
		live = append(live, liveMatch)
	}

	sort.Slice(live, func(i, j int) bool {
		if live[i].StartedAt.Equal(live[j].StartedAt) {
			return live[i].MatchID < live[j].MatchID
		}
		return live[i].StartedAt.Before(live[j].StartedAt)
	})

	return live
}
