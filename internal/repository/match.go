package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/gridskirmish-backend/internal/apperror"
	"github.com/rocketscienceinc/gridskirmish-backend/internal/entity"
)

type MatchRepository interface {
	SaveSnapshot(ctx context.Context, snapshot *entity.Snapshot) error
	GetSnapshot(ctx context.Context, matchID string) (*entity.Snapshot, error)

	AppendMove(ctx context.Context, matchID string, move *entity.MoveRecord) error
	ListMoves(ctx context.Context, matchID string) ([]*entity.MoveRecord, error)

	DeleteByID(ctx context.Context, matchID string) error
}

type dbMatch struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMatchRepository - ttl applies to every key of a match; zero keeps them forever.
func NewMatchRepository(client *redis.Client, ttl time.Duration) MatchRepository {
	return &dbMatch{
		client: client,
		ttl:    ttl,
	}
}

func snapshotKey(matchID string) string {
	return "match:" + matchID
}

func movesKey(matchID string) string {
	return "match:" + matchID + ":moves"
}

func (that *dbMatch) SaveSnapshot(ctx context.Context, snapshot *entity.Snapshot) error {
	snapshotJSON, err := sonic.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal snapshot: %w", err)
	}

	err = that.client.Set(ctx, snapshotKey(snapshot.MatchID), snapshotJSON, that.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set snapshot: %w", err)
	}

	return nil
}

func (that *dbMatch) GetSnapshot(ctx context.Context, matchID string) (*entity.Snapshot, error) {
	response, err := that.client.Get(ctx, snapshotKey(matchID)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrMatchNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot by match id: %w", err)
	}

	var snapshot entity.Snapshot
	if err = sonic.Unmarshal([]byte(response), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}

func (that *dbMatch) AppendMove(ctx context.Context, matchID string, move *entity.MoveRecord) error {
	moveJSON, err := sonic.Marshal(move)
	if err != nil {
		return fmt.Errorf("could not marshal move: %w", err)
	}

	key := movesKey(matchID)

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, moveJSON)
		if that.ttl > 0 {
			pipe.Expire(ctx, key, that.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to append move: %w", err)
	}

	return nil
}

func (that *dbMatch) ListMoves(ctx context.Context, matchID string) ([]*entity.MoveRecord, error) {
	exists, err := that.client.Exists(ctx, snapshotKey(matchID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check match: %w", err)
	}

	if exists == 0 {
		return nil, apperror.ErrMatchNotFound
	}

	response, err := that.client.LRange(ctx, movesKey(matchID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list moves: %w", err)
	}

	moves := make([]*entity.MoveRecord, 0, len(response))
	for _, item := range response {
		var move entity.MoveRecord
		if err = sonic.Unmarshal([]byte(item), &move); err != nil {
			return nil, fmt.Errorf("failed to unmarshal move: %w", err)
		}
		moves = append(moves, &move)
	}

	return moves, nil
}

func (that *dbMatch) DeleteByID(ctx context.Context, matchID string) error {
	deleted, err := that.client.Del(ctx, snapshotKey(matchID), movesKey(matchID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete match by id: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrMatchNotFound
	}

	return nil
}
