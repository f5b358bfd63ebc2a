package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

func TestNewGame(t *testing.T) {
	// When: create a new 3x3 game
	state, err := NewGame(3)
	require.NoError(t, err)

	// Then: the board is empty, O is to move and the game is undecided
	assert.Equal(t, MarkA, state.ToMove())
	assert.False(t, state.IsTerminal())
	assert.Equal(t, Undecided, state.Outcome())

	// Then: every cell is a legal move in row-major order
	expected := []Move{
		{0, 0}, {0, 1}, {0, 2},
		{1, 0}, {1, 1}, {1, 2},
		{2, 0}, {2, 1}, {2, 2},
	}
	assert.Equal(t, expected, state.LegalMoves())

	_, err = NewGame(11)
	require.ErrorIs(t, err, apperror.ErrInvalidBoardSize)
}

func TestGameState_Apply(t *testing.T) {
	t.Run("Apply", func(t *testing.T) {
		// Given: a new game
		state, err := NewGame(3)
		require.NoError(t, err)

		// When: O marks the centre
		next, err := state.Apply(Move{1, 1})
		require.NoError(t, err)

		// Then: the new state carries the mark and X is to move
		assert.Equal(t, MarkA, next.Board().At(1, 1))
		assert.Equal(t, MarkB, next.ToMove())
		assert.Len(t, next.LegalMoves(), 8)

		// Then: the previous state is untouched
		assert.Equal(t, Empty, state.Board().At(1, 1))
		assert.Equal(t, MarkA, state.ToMove())
		assert.Len(t, state.LegalMoves(), 9)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: a game where O holds the centre
		state, err := NewGame(3)
		require.NoError(t, err)
		state, err = state.Apply(Move{1, 1})
		require.NoError(t, err)

		// When: X tries to mark the same cell
		_, err = state.Apply(Move{1, 1})

		// Then: ErrInvalidMove should be returned
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
	})

	t.Run("Invalid Cell", func(t *testing.T) {
		state, err := NewGame(4)
		require.NoError(t, err)

		for _, move := range []Move{{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {20, 20}} {
			_, err = state.Apply(move)

			assert.ErrorIs(t, err, apperror.ErrInvalidMove, "move %s", move)
		}
	})

	t.Run("Move After Game Finished", func(t *testing.T) {
		// Given: a game where O has already won
		board := mustBoard(t, [][]Mark{{a, a, a}, {b, b, e}, {e, e, e}})
		state := NewGameState(board, false)

		// When: X tries to make a move
		_, err := state.Apply(Move{2, 2})

		// Then: ErrGameFinished should be returned
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestGameState_Playthrough(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for size := MinSize; size <= 6; size++ {
		for game := 0; game < 20; game++ {
			state, err := NewGame(size)
			require.NoError(t, err)

			played := make(map[Move]bool)
			for !state.IsTerminal() {
				moves := state.LegalMoves()

				// Then: legal moves and occupied cells always cover the board
				require.Equal(t, size*size, len(moves)+state.Board().Occupied())

				move := moves[rng.Intn(len(moves))]

				// Then: a cell is never played twice in one game
				require.False(t, played[move], "cell %s played twice", move)
				played[move] = true

				state, err = state.Apply(move)
				require.NoError(t, err)
			}

			require.Equal(t, size*size, len(state.LegalMoves())+state.Board().Occupied())
			if size > WinLength {
				// Then: larger boards only finish when full
				require.True(t, state.Board().IsFull())
			}
		}
	}
}
