package service

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

type ScoreService interface {
	RecordGame(ctx context.Context, game *entity.Game) error
	GetScore(ctx context.Context, ownerID string) (*entity.Score, error)
}

type scoreService struct {
	scoreRepo scoreRepo
}

type scoreRepo interface {
	Increment(ctx context.Context, ownerID, field string) error
	GetByOwner(ctx context.Context, ownerID string) (*entity.Score, error)
}

func NewScoreService(scoreRepo scoreRepo) ScoreService {
	return &scoreService{
		scoreRepo: scoreRepo,
	}
}

// RecordGame - counts a finished game on its owner's score board. Ongoing
// games are ignored.
func (that *scoreService) RecordGame(ctx context.Context, game *entity.Game) error {
	field := game.ScoreField()
	if field == "" {
		return nil
	}

	if err := that.scoreRepo.Increment(ctx, game.OwnerID, field); err != nil {
		return fmt.Errorf("record score %w", err)
	}

	return nil
}

func (that *scoreService) GetScore(ctx context.Context, ownerID string) (*entity.Score, error) {
	score, err := that.scoreRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return &entity.Score{}, fmt.Errorf("get score by owner %w", err)
	}

	return score, nil
}
