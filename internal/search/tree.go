package search

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

// node is the value of a subtree and the move leading to it.
type node struct {
	score int
	move  tictactoe.Move
	found bool
}

// searcher carries the per-call state of one Search: the limits and the
// visited node counter. Nothing in it is shared between calls.
type searcher struct {
	ctx       context.Context
	evaluator *tictactoe.Evaluator
	ordering  bool
	budget    int64
	nodes     int64
}

func (e *Engine) newSearcher(ctx context.Context) *searcher {
	return &searcher{
		ctx:       ctx,
		evaluator: e.evaluator,
		ordering:  e.ordering,
		budget:    e.nodeBudget,
	}
}

// enter - counts a node and reports whether a limit was hit.
func (s *searcher) enter() error {
	s.nodes++

	if s.budget > 0 && s.nodes > s.budget {
		return errBudgetExhausted
	}

	return s.ctx.Err()
}

// moves - returns the legal moves in search order: row-major, or sorted by
// the evaluation of the resulting board when ordering is on. The sort is
// stable, so the order depends on the board only.
func (s *searcher) moves(state tictactoe.GameState) []tictactoe.Move {
	moves := state.LegalMoves()
	if !s.ordering || len(moves) < 2 {
		return moves
	}

	type scored struct {
		move  tictactoe.Move
		score int
	}

	candidates := make([]scored, len(moves))
	for i, move := range moves {
		child, _ := state.Apply(move) // moves are legal by construction
		candidates[i] = scored{move: move, score: s.evaluator.Score(child)}
	}

	maximizing := state.ToMove() == tictactoe.MarkA
	slices.SortStableFunc(candidates, func(x, y scored) int {
		if maximizing {
			return cmp.Compare(y.score, x.score)
		}
		return cmp.Compare(x.score, y.score)
	})

	for i, candidate := range candidates {
		moves[i] = candidate.move
	}
	return moves
}

// minimax - alpha-beta minimax. Scores are from MarkA's point of view and
// maximizing is true on MarkA's turns. On a limit error the best node among
// fully searched children is returned along with the error.
func (s *searcher) minimax(state tictactoe.GameState, depth int, maximizing bool, alpha, beta int) (node, error) {
	if err := s.enter(); err != nil {
		return node{}, err
	}

	if state.IsTerminal() || depth == 0 {
		return node{score: s.evaluator.Score(state)}, nil
	}

	moves := s.moves(state)
	if len(moves) == 0 {
		return node{}, fmt.Errorf("%w: %s to move", apperror.ErrUnreachableSearch, state.ToMove())
	}

	best := node{score: inf}
	if maximizing {
		best.score = -inf
	}

	for _, move := range moves {
		child, err := state.Apply(move)
		if err != nil {
			return best, fmt.Errorf("failed to apply %s: %w", move, err)
		}

		reply, err := s.minimax(child, depth-1, !maximizing, alpha, beta)
		if err != nil {
			return best, err
		}

		if maximizing {
			if reply.score > best.score {
				best = node{score: reply.score, move: move, found: true}
			}
			alpha = max(alpha, reply.score)
		} else {
			if reply.score < best.score {
				best = node{score: reply.score, move: move, found: true}
			}
			beta = min(beta, reply.score)
		}

		if beta <= alpha {
			break // Alpha-beta pruning
		}
	}

	return best, nil
}

// negamax - alpha-beta negamax. color is +1 on MarkA's turns and -1 on
// MarkB's; scores are from the side to move's point of view.
func (s *searcher) negamax(state tictactoe.GameState, depth, color int, alpha, beta int) (node, error) {
	if err := s.enter(); err != nil {
		return node{}, err
	}

	if state.IsTerminal() || depth == 0 {
		return node{score: color * s.evaluator.Score(state)}, nil
	}

	moves := s.moves(state)
	if len(moves) == 0 {
		return node{}, fmt.Errorf("%w: %s to move", apperror.ErrUnreachableSearch, state.ToMove())
	}

	best := node{score: -inf}
	for _, move := range moves {
		child, err := state.Apply(move)
		if err != nil {
			return best, fmt.Errorf("failed to apply %s: %w", move, err)
		}

		reply, err := s.negamax(child, depth-1, -color, -beta, -alpha)
		if err != nil {
			return best, err
		}

		score := -reply.score
		if score > best.score {
			best = node{score: score, move: move, found: true}
		}
		alpha = max(alpha, score)

		if alpha >= beta {
			break // Alpha-beta pruning
		}
	}

	return best, nil
}
