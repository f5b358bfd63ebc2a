package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/search"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

var ErrNoAvailableMoves = errors.New("no available moves")

type BotService interface {
	MakeTurn(ctx context.Context, game *entity.Game) error
	Suggest(ctx context.Context, state tictactoe.GameState, depth int, algorithm search.Algorithm) (search.Result, error)
}

// AutoDepth asks Suggest for the depth the policy picks for the position.
const AutoDepth = -1

// BotSettings picks how deep and how long the bot thinks.
type BotSettings struct {
	Algorithm   search.Algorithm
	Policy      search.DepthPolicy
	MoveTimeout time.Duration
}

type botService struct {
	logger *slog.Logger

	engine   *search.Engine
	settings BotSettings
}

func NewBotService(logger *slog.Logger, engine *search.Engine, settings BotSettings) BotService {
	return &botService{
		logger:   logger,
		engine:   engine,
		settings: settings,
	}
}

// MakeTurn - searches the bot's move in game and plays it.
func (that *botService) MakeTurn(ctx context.Context, game *entity.Game) error {
	if !game.IsBotTurn() {
		return apperror.ErrNotYourTurn
	}

	state, err := game.State()
	if err != nil {
		return fmt.Errorf("failed to restore game state: %w", err)
	}

	result, err := that.search(ctx, state, that.settings.Policy.Depth(state), that.settings.Algorithm)
	if err != nil {
		return err
	}

	if !result.HasMove {
		return ErrNoAvailableMoves
	}

	that.logger.Debug("bot picked a move",
		slog.String("game_id", game.ID),
		slog.String("move", result.Move.String()),
		slog.Int("score", result.Score),
		slog.Int("depth", result.Depth),
		slog.Int64("nodes", result.Nodes),
		slog.Bool("complete", result.Complete),
	)

	if err = game.MakeTurn(game.BotMark(), result.Move); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}

// Suggest - analyses state without touching any game. AutoDepth lets the
// depth policy decide; depth 0 is a static evaluation.
func (that *botService) Suggest(ctx context.Context, state tictactoe.GameState, depth int, algorithm search.Algorithm) (search.Result, error) {
	if depth == AutoDepth {
		depth = that.settings.Policy.Depth(state)
	}

	if algorithm == "" {
		algorithm = that.settings.Algorithm
	}

	return that.search(ctx, state, depth, algorithm)
}

func (that *botService) search(ctx context.Context, state tictactoe.GameState, depth int, algorithm search.Algorithm) (search.Result, error) {
	if that.settings.MoveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, that.settings.MoveTimeout)
		defer cancel()
	}

	result, err := that.engine.Search(ctx, state, depth, algorithm)
	if err != nil {
		return search.Result{}, fmt.Errorf("bot failed to search: %w", err)
	}

	return result, nil
}
