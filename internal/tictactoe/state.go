package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

// GameState is a board snapshot plus the side to move. The outcome is
// resolved once when the state is built, so every accessor is a pure read.
type GameState struct {
	board   Board
	aToMove bool
	outcome Outcome
}

// NewGame - returns an empty board of the given size with MarkA to move.
func NewGame(size int) (GameState, error) {
	board, err := NewBoard(size)
	if err != nil {
		return GameState{}, err
	}

	return NewGameState(board, true), nil
}

func NewGameState(board Board, aToMove bool) GameState {
	return GameState{
		board:   board,
		aToMove: aToMove,
		outcome: resolveOutcome(board),
	}
}

func (s GameState) Board() Board {
	return s.board
}

// ToMove - returns the mark of the side to move.
func (s GameState) ToMove() Mark {
	if s.aToMove {
		return MarkA
	}
	return MarkB
}

func (s GameState) IsTerminal() bool {
	return s.outcome != Undecided
}

func (s GameState) Outcome() Outcome {
	return s.outcome
}

// LegalMoves - returns every empty cell in row-major order.
func (s GameState) LegalMoves() []Move {
	moves := make([]Move, 0, s.board.EmptyCount())
	for i, cell := range s.board.cells {
		if cell == Empty {
			moves = append(moves, Move{Row: i / s.board.size, Col: i % s.board.size})
		}
	}
	return moves
}

// Apply - returns the state after the side to move marks the given cell.
// The receiver is left untouched.
func (s GameState) Apply(move Move) (GameState, error) {
	if s.IsTerminal() {
		return GameState{}, fmt.Errorf("%w: %s", apperror.ErrGameFinished, s.outcome)
	}

	if err := s.validateMove(move); err != nil {
		return GameState{}, err
	}

	return NewGameState(s.board.with(move, s.ToMove()), !s.aToMove), nil
}

// validateMove - checks if the move is valid.
func (s GameState) validateMove(move Move) error {
	if !s.board.InBounds(move.Row, move.Col) {
		return fmt.Errorf("%w: cell %s is out of range", apperror.ErrInvalidMove, move)
	}

	if s.board.At(move.Row, move.Col) != Empty {
		return fmt.Errorf("%w: cell %s is already occupied", apperror.ErrInvalidMove, move)
	}

	return nil
}
