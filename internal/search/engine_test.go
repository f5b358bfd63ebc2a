package search

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

const (
	a = tictactoe.MarkA
	b = tictactoe.MarkB
	e = tictactoe.Empty
)

var algorithms = []Algorithm{Minimax, Negamax}

func stateOf(t *testing.T, rows [][]tictactoe.Mark, aToMove bool) tictactoe.GameState {
	t.Helper()

	board, err := tictactoe.BoardFromRows(rows)
	require.NoError(t, err)

	return tictactoe.NewGameState(board, aToMove)
}

func TestEngine_Search_CompletesTheTopRow(t *testing.T) {
	// Given: O holds two cells of the top row and X holds the centre
	state := stateOf(t, [][]tictactoe.Mark{{a, a, e}, {e, b, e}, {e, e, e}}, true)

	for _, ordering := range []bool{false, true} {
		engine := NewEngine(WithMoveOrdering(ordering))

		for _, algorithm := range algorithms {
			for depth := 1; depth <= 7; depth++ {
				name := fmt.Sprintf("%s/depth=%d/ordering=%t", algorithm, depth, ordering)

				// When: searching at any depth
				result, err := engine.Search(context.Background(), state, depth, algorithm)
				require.NoError(t, err, name)

				// Then: O completes the row for a win
				assert.True(t, result.HasMove, name)
				assert.Equal(t, tictactoe.Move{Row: 0, Col: 2}, result.Move, name)
				assert.Equal(t, tictactoe.DefaultWinScore, result.Score, name)
				assert.True(t, result.Complete, name)
			}
		}
	}
}

func TestEngine_Search_BlocksTheThreat(t *testing.T) {
	// Given: O threatens the top row and X is to move
	state := stateOf(t, [][]tictactoe.Mark{{a, a, e}, {e, e, e}, {e, e, e}}, false)

	for _, algorithm := range algorithms {
		for depth := 1; depth <= 3; depth++ {
			result, err := NewEngine().Search(context.Background(), state, depth, algorithm)
			require.NoError(t, err)

			// Then: X blocks the row
			assert.Equal(t, tictactoe.Move{Row: 0, Col: 2}, result.Move, "%s depth %d", algorithm, depth)
		}
	}
}

func TestEngine_Search_EmptyBoardIsADraw(t *testing.T) {
	state, err := tictactoe.NewGame(3)
	require.NoError(t, err)

	tests := []struct {
		name     string
		ordering bool
		move     tictactoe.Move
	}{
		// The first move in row-major order already draws.
		{"Row-major order", false, tictactoe.Move{Row: 0, Col: 0}},
		// Ordering puts the centre first.
		{"Ordered moves", true, tictactoe.Move{Row: 1, Col: 1}},
	}

	for _, tt := range tests {
		for _, algorithm := range algorithms {
			t.Run(tt.name+"/"+string(algorithm), func(t *testing.T) {
				// When: searching the whole tree from the empty board
				result, err := NewEngine(WithMoveOrdering(tt.ordering)).Search(context.Background(), state, 9, algorithm)
				require.NoError(t, err)

				// Then: perfect play is a draw and the first drawing move is chosen
				assert.Equal(t, 0, result.Score)
				assert.Equal(t, tt.move, result.Move)
			})
		}
	}
}

func TestEngine_Search_DepthZero(t *testing.T) {
	state := stateOf(t, [][]tictactoe.Mark{{a, a, e}, {e, b, e}, {e, e, e}}, true)
	engine := NewEngine()

	for _, algorithm := range algorithms {
		// When: searching with depth 0
		result, err := engine.Search(context.Background(), state, 0, algorithm)
		require.NoError(t, err)

		// Then: the state is evaluated as-is and no move is returned
		assert.False(t, result.HasMove)
		assert.Equal(t, engine.Evaluator().Evaluate(state.Board()), result.Score)
		assert.Equal(t, int64(1), result.Nodes)
	}
}

func TestEngine_Search_TerminalRoot(t *testing.T) {
	// Given: X has already won
	state := stateOf(t, [][]tictactoe.Mark{{a, a, b}, {a, b, e}, {b, e, e}}, true)

	for _, algorithm := range algorithms {
		result, err := NewEngine().Search(context.Background(), state, 3, algorithm)
		require.NoError(t, err)

		// Then: the outcome score is returned without a move
		assert.False(t, result.HasMove)
		assert.Equal(t, -tictactoe.DefaultWinScore, result.Score)
	}
}

func TestEngine_Search_InvalidArguments(t *testing.T) {
	state, err := tictactoe.NewGame(3)
	require.NoError(t, err)

	_, err = NewEngine().Search(context.Background(), state, -1, Minimax)
	require.ErrorIs(t, err, ErrNegativeDepth)

	_, err = NewEngine().Search(context.Background(), state, 1, Algorithm("expectimax"))
	require.ErrorIs(t, err, apperror.ErrUnknownAlgorithm)
}

// reachableStates - every distinct non-terminal state reachable from the empty 3x3 board.
func reachableStates(t *testing.T) []tictactoe.GameState {
	t.Helper()

	start, err := tictactoe.NewGame(3)
	require.NoError(t, err)

	seen := make(map[string]bool)
	var states []tictactoe.GameState

	var walk func(state tictactoe.GameState)
	walk = func(state tictactoe.GameState) {
		key := state.Board().String()
		if seen[key] || state.IsTerminal() {
			return
		}
		seen[key] = true
		states = append(states, state)

		for _, move := range state.LegalMoves() {
			child, err := state.Apply(move)
			require.NoError(t, err)
			walk(child)
		}
	}
	walk(start)

	return states
}

func TestEngine_MinimaxEqualsNegamax(t *testing.T) {
	states := reachableStates(t)
	require.NotEmpty(t, states)

	for _, strategy := range []tictactoe.Strategy{tictactoe.StrategyCount, tictactoe.StrategyWeighted} {
		for _, ordering := range []bool{false, true} {
			engine := NewEngine(
				WithEvaluator(tictactoe.NewEvaluator(tictactoe.WithStrategy(strategy))),
				WithMoveOrdering(ordering),
			)

			for _, depth := range []int{1, 2, 3, 9} {
				for _, state := range states {
					name := fmt.Sprintf("%s depth=%d ordering=%t\n%s", strategy, depth, ordering, state.Board())

					viaMinimax, err := engine.Search(context.Background(), state, depth, Minimax)
					require.NoError(t, err, name)

					viaNegamax, err := engine.Search(context.Background(), state, depth, Negamax)
					require.NoError(t, err, name)

					require.Equal(t, viaMinimax, viaNegamax, name)
				}
			}
		}
	}
}

// bruteForce - plain minimax without pruning; the first best move wins ties.
func bruteForce(evaluator *tictactoe.Evaluator, state tictactoe.GameState, depth int) (int, tictactoe.Move) {
	if state.IsTerminal() || depth == 0 {
		return evaluator.Score(state), tictactoe.Move{}
	}

	maximizing := state.ToMove() == tictactoe.MarkA
	best := inf
	if maximizing {
		best = -inf
	}

	var bestMove tictactoe.Move
	for _, move := range state.LegalMoves() {
		child, _ := state.Apply(move)
		score, _ := bruteForce(evaluator, child, depth-1)
		if (maximizing && score > best) || (!maximizing && score < best) {
			best, bestMove = score, move
		}
	}
	return best, bestMove
}

func randomState(t *testing.T, rng *rand.Rand, size, plies int) tictactoe.GameState {
	t.Helper()

	state, err := tictactoe.NewGame(size)
	require.NoError(t, err)

	for i := 0; i < plies && !state.IsTerminal(); i++ {
		moves := state.LegalMoves()
		state, err = state.Apply(moves[rng.Intn(len(moves))])
		require.NoError(t, err)
	}
	return state
}

func TestEngine_PruningKeepsTheResult(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	tests := []struct {
		size     int
		minPlies int
		maxPlies int
		depth    int
	}{
		{size: 3, minPlies: 1, maxPlies: 6, depth: 9},
		{size: 4, minPlies: 6, maxPlies: 12, depth: 3},
		{size: 5, minPlies: 16, maxPlies: 22, depth: 3},
	}

	evaluators := []*tictactoe.Evaluator{
		tictactoe.NewEvaluator(),
		tictactoe.NewEvaluator(tictactoe.WithStrategy(tictactoe.StrategyWeighted)),
	}

	for _, tt := range tests {
		for i := 0; i < 25; i++ {
			plies := tt.minPlies + rng.Intn(tt.maxPlies-tt.minPlies+1)
			state := randomState(t, rng, tt.size, plies)
			if state.IsTerminal() {
				continue
			}

			for _, evaluator := range evaluators {
				expectedScore, expectedMove := bruteForce(evaluator, state, tt.depth)

				for _, algorithm := range algorithms {
					result, err := NewEngine(WithEvaluator(evaluator)).Search(context.Background(), state, tt.depth, algorithm)
					require.NoError(t, err)

					name := fmt.Sprintf("%s depth=%d\n%s", algorithm, tt.depth, state.Board())
					require.Equal(t, expectedScore, result.Score, name)
					require.Equal(t, expectedMove, result.Move, name)
				}
			}
		}
	}
}

func TestEngine_Search_NodeBudget(t *testing.T) {
	// Given: an engine allowed to visit 500 nodes and an empty 5x5 board
	state, err := tictactoe.NewGame(5)
	require.NoError(t, err)

	engine := NewEngine(WithNodeBudget(500))

	for _, algorithm := range algorithms {
		// When: asking for a 4-ply search
		result, err := engine.Search(context.Background(), state, 4, algorithm)
		require.NoError(t, err)

		// Then: a shallower completed iteration is returned
		assert.True(t, result.HasMove)
		assert.False(t, result.Complete)
		assert.GreaterOrEqual(t, result.Depth, 1)
		assert.Less(t, result.Depth, 4)
		assert.LessOrEqual(t, result.Nodes, int64(501))
	}
}

func TestEngine_Search_Deadline(t *testing.T) {
	state := stateOf(t, [][]tictactoe.Mark{{a, a, e}, {e, b, e}, {e, e, e}}, true)

	t.Run("Generous deadline", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		// When: the deadline leaves room for the whole search
		result, err := NewEngine().Search(ctx, state, 5, Negamax)
		require.NoError(t, err)

		// Then: the result matches an unlimited search
		assert.True(t, result.Complete)
		assert.Equal(t, 5, result.Depth)
		assert.Equal(t, tictactoe.Move{Row: 0, Col: 2}, result.Move)
		assert.Equal(t, tictactoe.DefaultWinScore, result.Score)
	})

	t.Run("Expired deadline", func(t *testing.T) {
		ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
		defer cancel()

		// When: the deadline passed before the search started
		result, err := NewEngine().Search(ctx, state, 5, Minimax)
		require.NoError(t, err)

		// Then: the first move in search order is returned as incomplete
		assert.True(t, result.HasMove)
		assert.False(t, result.Complete)
		assert.Equal(t, tictactoe.Move{Row: 0, Col: 2}, result.Move)
	})

	t.Run("Canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewEngine().Search(ctx, state, 5, Minimax)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestEngine_Search_LargeWinScore(t *testing.T) {
	// Given: a win score far above the 32-bit range and X one move from a win
	k := math.MaxInt / 4
	engine := NewEngine(WithEvaluator(tictactoe.NewEvaluator(tictactoe.WithWinScore(k))))
	state := stateOf(t, [][]tictactoe.Mark{{a, a, e}, {a, e, e}, {b, b, e}}, false)

	for _, algorithm := range algorithms {
		t.Run(string(algorithm), func(t *testing.T) {
			// When
			result, err := engine.Search(context.Background(), state, 3, algorithm)
			require.NoError(t, err)

			// Then: the decided game keeps its full magnitude
			assert.True(t, result.HasMove)
			assert.Equal(t, -k, result.Score)
		})
	}
}

func TestEngine_Search_DeepeningStopsAtTheLastEmptyCell(t *testing.T) {
	// Given: six empty cells and a requested depth beyond them
	state := stateOf(t, [][]tictactoe.Mark{{a, a, e}, {e, b, e}, {e, e, e}}, true)
	engine := NewEngine(WithNodeBudget(1_000_000))

	// When
	deep, err := engine.Search(context.Background(), state, 9, Negamax)
	require.NoError(t, err)

	exact, err := engine.Search(context.Background(), state, 6, Negamax)
	require.NoError(t, err)

	// Then: the search ends at the board's last ply and repeats nothing
	assert.True(t, deep.Complete)
	assert.Equal(t, 6, deep.Depth)
	assert.Equal(t, exact, deep)
}

func TestParseAlgorithm(t *testing.T) {
	algorithm, err := ParseAlgorithm("negamax")
	require.NoError(t, err)
	assert.Equal(t, Negamax, algorithm)

	algorithm, err = ParseAlgorithm("")
	require.NoError(t, err)
	assert.Equal(t, Minimax, algorithm)

	_, err = ParseAlgorithm("mcts")
	require.ErrorIs(t, err, apperror.ErrUnknownAlgorithm)
}
