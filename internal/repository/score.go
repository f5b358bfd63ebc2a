package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

type ScoreRepository interface {
	Increment(ctx context.Context, ownerID, field string) error
	GetByOwner(ctx context.Context, ownerID string) (*entity.Score, error)
}

type dbScore struct {
	client *redis.Client
}

func NewScoreRepository(client *redis.Client) ScoreRepository {
	return &dbScore{
		client: client,
	}
}

func scoreKey(ownerID string) string {
	return "score:" + ownerID
}

// Increment - adds one to a counter of the owner's score board.
func (that *dbScore) Increment(ctx context.Context, ownerID, field string) error {
	if err := that.client.HIncrBy(ctx, scoreKey(ownerID), field, 1).Err(); err != nil {
		return fmt.Errorf("failed to increment %s score: %w", field, err)
	}

	return nil
}

// GetByOwner - returns the owner's score board; an unknown owner has an empty one.
func (that *dbScore) GetByOwner(ctx context.Context, ownerID string) (*entity.Score, error) {
	var score entity.Score
	if err := that.client.HGetAll(ctx, scoreKey(ownerID)).Scan(&score); err != nil {
		return &entity.Score{}, fmt.Errorf("failed to get score: %w", err)
	}

	return &score, nil
}
