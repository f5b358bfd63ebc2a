package search

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

// Algorithm names one of the two equivalent tree walks.
type Algorithm string

const (
	Minimax Algorithm = "minimax"
	Negamax Algorithm = "negamax"
)

// inf bounds every score the evaluator can produce, any configured win score
// included, and survives negation.
const inf = math.MaxInt

var (
	ErrNegativeDepth   = errors.New("search depth must not be negative")
	errBudgetExhausted = errors.New("node budget exhausted")
)

func ParseAlgorithm(name string) (Algorithm, error) {
	switch algorithm := Algorithm(name); algorithm {
	case Minimax, Negamax:
		return algorithm, nil
	case "":
		return Minimax, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrUnknownAlgorithm, name)
	}
}

// Result is the outcome of a search. Score is always from MarkA's point of
// view. HasMove is false when no move was searched: depth 0 or a terminal
// root. Complete is false when a limit stopped the search before the
// requested depth.
type Result struct {
	Score    int            `json:"score"`
	Move     tictactoe.Move `json:"move"`
	HasMove  bool           `json:"has_move"`
	Depth    int            `json:"depth"`
	Nodes    int64          `json:"nodes"`
	Complete bool           `json:"complete"`
}

type Option func(e *Engine)

func WithEvaluator(evaluator *tictactoe.Evaluator) Option {
	return func(e *Engine) {
		if evaluator != nil {
			e.evaluator = evaluator
		}
	}
}

// WithMoveOrdering - searches the most promising children first. Changes
// which move wins a tie, never the score.
func WithMoveOrdering(enabled bool) Option {
	return func(e *Engine) {
		e.ordering = enabled
	}
}

// WithNodeBudget - caps the number of visited nodes per search.
func WithNodeBudget(nodes int64) Option {
	return func(e *Engine) {
		if nodes > 0 {
			e.nodeBudget = nodes
		}
	}
}

// Engine holds search settings only; every Search call walks its own tree,
// so an Engine may be shared between goroutines.
type Engine struct {
	evaluator  *tictactoe.Evaluator
	ordering   bool
	nodeBudget int64
}

func NewEngine(options ...Option) *Engine {
	e := &Engine{ // Default values
		evaluator: tictactoe.NewEvaluator(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *Engine) Evaluator() *tictactoe.Evaluator {
	return e.evaluator
}

// Search - picks the best move for the side to move of state, looking depth
// plies ahead. Without a node budget or a cancellable ctx the tree is walked
// once. Otherwise the engine deepens one ply at a time and returns the
// deepest iteration that finished.
func (e *Engine) Search(ctx context.Context, state tictactoe.GameState, depth int, algorithm Algorithm) (Result, error) {
	if depth < 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrNegativeDepth, depth)
	}

	if _, err := ParseAlgorithm(string(algorithm)); err != nil {
		return Result{}, err
	}

	s := e.newSearcher(ctx)

	if e.nodeBudget == 0 && ctx.Done() == nil {
		return s.run(state, depth, algorithm)
	}

	return s.deepen(state, depth, algorithm)
}

func (s *searcher) deepen(state tictactoe.GameState, depth int, algorithm Algorithm) (Result, error) {
	if depth == 0 || state.IsTerminal() {
		return s.run(state, depth, algorithm)
	}

	var (
		best    Result
		partial Result
		found   bool
		lastErr error
	)
	// Every line ends in a terminal state once the empty cells run out, so
	// deeper iterations would repeat the same search.
	limit := min(depth, state.Board().EmptyCount())
	for current := 1; current <= limit; current++ {
		result, err := s.run(state, current, algorithm)
		if err != nil {
			if !isLimit(err) {
				return Result{}, err
			}
			partial, lastErr = result, err
			break
		}

		best, found = result, true
		best.Complete = current == limit
	}

	switch {
	case found:
		best.Nodes = s.nodes
		return best, nil
	case errors.Is(lastErr, context.Canceled):
		return Result{}, fmt.Errorf("search canceled: %w", lastErr)
	case partial.HasMove:
		partial.Nodes = s.nodes
		return partial, nil
	default:
		return s.fallback(state)
	}
}

// fallback - returns the first move in search order when a limit hit before
// any child was searched.
func (s *searcher) fallback(state tictactoe.GameState) (Result, error) {
	moves := s.moves(state)
	if len(moves) == 0 {
		return Result{}, fmt.Errorf("%w: %s to move", apperror.ErrUnreachableSearch, state.ToMove())
	}

	child, err := state.Apply(moves[0])
	if err != nil {
		return Result{}, fmt.Errorf("failed to apply fallback move: %w", err)
	}

	return Result{
		Score:   s.evaluator.Score(child),
		Move:    moves[0],
		HasMove: true,
		Nodes:   s.nodes,
	}, nil
}

func (s *searcher) run(state tictactoe.GameState, depth int, algorithm Algorithm) (Result, error) {
	var (
		best node
		err  error
	)

	switch algorithm {
	case Negamax:
		color := sideColor(state.ToMove())
		best, err = s.negamax(state, depth, color, -inf, inf)
		best.score *= color
	default:
		best, err = s.minimax(state, depth, state.ToMove() == tictactoe.MarkA, -inf, inf)
	}

	result := Result{
		Score:    best.score,
		Move:     best.move,
		HasMove:  best.found,
		Depth:    depth,
		Nodes:    s.nodes,
		Complete: err == nil,
	}

	return result, err
}

func sideColor(mark tictactoe.Mark) int {
	if mark == tictactoe.MarkA {
		return 1
	}
	return -1
}

func isLimit(err error) bool {
	return errors.Is(err, errBudgetExhausted) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}
