package entity

import (
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerO   = tictactoe.SymbolA
	PlayerX   = tictactoe.SymbolB
	PlayerTie = "-"

	EmptyCell = tictactoe.SymbolEmpty
)

const (
	// WithBotType is a game against the engine.
	WithBotType = "bot"
	// LocalType is a game between two people sharing one client.
	LocalType = "local"
)

// Game is the persisted form of a game. HumanMark is the owner's mark; in a
// bot game the engine plays the other one.
type Game struct {
	ID        string           `json:"id"`
	OwnerID   string           `json:"owner_id"`
	Size      int              `json:"size"`
	Board     [][]string       `json:"board"`
	Turn      string           `json:"player_turn"`
	Winner    string           `json:"winner"`
	Status    string           `json:"status"`
	Type      string           `json:"type"`
	HumanMark string           `json:"human_mark"`
	Moves     []tictactoe.Move `json:"moves,omitempty"`
}

func NewGame(id, ownerID, gameType string, size int, humanMark string) (*Game, error) {
	if gameType != WithBotType && gameType != LocalType {
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownGameType, gameType)
	}

	if humanMark != PlayerO && humanMark != PlayerX {
		return nil, fmt.Errorf("%w: %q", tictactoe.ErrUnknownMark, humanMark)
	}

	state, err := tictactoe.NewGame(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	game := &Game{
		ID:        id,
		OwnerID:   ownerID,
		Size:      size,
		Type:      gameType,
		HumanMark: humanMark,
	}
	game.applyState(state)

	return game, nil
}

// State - rebuilds the engine state from the persisted board.
func (that *Game) State() (tictactoe.GameState, error) {
	board, err := tictactoe.ParseBoard(that.Board)
	if err != nil {
		return tictactoe.GameState{}, fmt.Errorf("invalid board: %w", err)
	}

	return tictactoe.NewGameState(board, that.Turn != PlayerX), nil
}

// MakeTurn - marks a cell for playerMark and resolves the game status.
func (that *Game) MakeTurn(playerMark string, move tictactoe.Move) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	state, err := that.State()
	if err != nil {
		return err
	}

	next, err := state.Apply(move)
	if err != nil {
		return fmt.Errorf("failed to apply move: %w", err)
	}

	that.Moves = append(that.Moves, move)
	that.applyState(next)

	return nil
}

func (that *Game) applyState(state tictactoe.GameState) {
	rows := state.Board().Rows()
	that.Board = make([][]string, len(rows))
	for r, row := range rows {
		that.Board[r] = make([]string, len(row))
		for c, mark := range row {
			that.Board[r][c] = mark.Symbol()
		}
	}

	switch outcome := state.Outcome(); outcome {
	// one player wins
	case tictactoe.MarkAWins, tictactoe.MarkBWins:
		that.Winner = outcome.Winner().Symbol()
		that.Status = StatusFinished
		that.Turn = ""
	// tie
	case tictactoe.Draw:
		that.Winner = PlayerTie
		that.Status = StatusFinished
		that.Turn = ""
	// game continue
	default:
		that.Status = StatusOngoing
		that.Turn = state.ToMove().Symbol()
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType
}

// BotMark - returns the mark the engine plays in a bot game.
func (that *Game) BotMark() string {
	if that.HumanMark == PlayerO {
		return PlayerX
	}
	return PlayerO
}

// IsBotTurn - reports whether the engine is to move.
func (that *Game) IsBotTurn() bool {
	return that.IsWithBot() && that.IsOngoing() && that.Turn == that.BotMark()
}

func GetRandomMark() string {
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return PlayerO
	}
	return PlayerX
}
