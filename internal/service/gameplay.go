package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/search"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

type GamePlayService interface {
	StartGame(ctx context.Context, ownerID string, size int, gameType, humanMark string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, row, col int) (*entity.Game, error)

	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error
	GetScore(ctx context.Context, ownerID string) (*entity.Score, error)

	Analyze(ctx context.Context, state tictactoe.GameState, depth int, algorithm search.Algorithm) (search.Result, error)
}

type gamePlayService struct {
	logger *slog.Logger

	gameService  GameService
	scoreService ScoreService
	botService   BotService

	locks *gameLocks
}

func NewGamePlayService(logger *slog.Logger, gameService GameService, scoreService ScoreService, botService BotService) GamePlayService {
	return &gamePlayService{
		logger:       logger,
		gameService:  gameService,
		scoreService: scoreService,
		botService:   botService,
		locks:        newGameLocks(),
	}
}

// StartGame - creates a game; when the bot got O it opens right away.
func (that *gamePlayService) StartGame(ctx context.Context, ownerID string, size int, gameType, humanMark string) (*entity.Game, error) {
	game, err := that.gameService.CreateGame(ctx, ownerID, size, gameType, humanMark)
	if err != nil {
		return nil, fmt.Errorf("failed to create new game: %w", err)
	}

	that.logger.Info("game created",
		slog.String("game_id", game.ID),
		slog.String("owner_id", game.OwnerID),
		slog.Int("size", game.Size),
		slog.String("type", game.Type),
		slog.String("human_mark", game.HumanMark),
	)

	if !game.IsBotTurn() {
		return game, nil
	}

	if err = that.botService.MakeTurn(ctx, game); err != nil {
		return nil, fmt.Errorf("bot failed to open: %w", err)
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

// MakeTurn - plays the owner's move. In a bot game the bot answers before the
// game is stored; in a local game the move goes to whoever is to move. Turns
// on the same game are applied one at a time. Once the game is stored the
// turn stands, so a failure to count the result is only logged.
func (that *gamePlayService) MakeTurn(ctx context.Context, gameID string, row, col int) (*entity.Game, error) {
	unlock := that.locks.lock(gameID)
	defer unlock()

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	mark := game.HumanMark
	if !game.IsWithBot() {
		mark = game.Turn
	}

	if err = game.MakeTurn(mark, tictactoe.Move{Row: row, Col: col}); err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if game.IsBotTurn() {
		if err = that.botService.MakeTurn(ctx, game); err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		that.logger.Info("game finished", slog.String("game_id", game.ID), slog.String("winner", game.Winner))

		if err = that.scoreService.RecordGame(ctx, game); err != nil {
			that.logger.Error("failed to record score", slog.String("game_id", game.ID), slog.Any("error", err))
		}
	}

	return game, nil
}

func (that *gamePlayService) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	return that.gameService.GetGameByID(ctx, gameID)
}

func (that *gamePlayService) DeleteGame(ctx context.Context, gameID string) error {
	return that.gameService.DeleteGame(ctx, gameID)
}

func (that *gamePlayService) GetScore(ctx context.Context, ownerID string) (*entity.Score, error) {
	return that.scoreService.GetScore(ctx, ownerID)
}

func (that *gamePlayService) Analyze(ctx context.Context, state tictactoe.GameState, depth int, algorithm search.Algorithm) (search.Result, error) {
	return that.botService.Suggest(ctx, state, depth, algorithm)
}
