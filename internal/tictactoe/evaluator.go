package tictactoe

import (
	"errors"
	"fmt"
	"math"
)

// Strategy selects how a window contribution is scaled.
type Strategy int

const (
	// StrategyCount scores a window by the number of marks in it.
	StrategyCount Strategy = iota
	// StrategyWeighted also scales by the squared positional weights of the marks.
	StrategyWeighted
)

const (
	DefaultWinScore    = 1000
	DefaultThreatBonus = 15
)

var ErrUnknownStrategy = errors.New("unknown evaluation strategy")

// progress is the value of a window holding n marks of one side and nothing else.
var progress = [WinLength + 1]int{0, 1, 10, 100}

// squaredWeightsBySize is filled once at init and only read afterwards.
var squaredWeightsBySize [MaxSize + 1][]int

func init() {
	for size := MinSize; size <= MaxSize; size++ {
		squares := make([]int, size*size)
		for r := 0; r < size; r++ {
			for c := 0; c < size; c++ {
				w := Weight(size, r, c)
				squares[r*size+c] = w * w
			}
		}
		squaredWeightsBySize[size] = squares
	}
}

func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "count", "":
		return StrategyCount, nil
	case "weighted":
		return StrategyWeighted, nil
	default:
		return StrategyCount, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

func (s Strategy) String() string {
	if s == StrategyWeighted {
		return "weighted"
	}
	return "count"
}

// Weight - positional weight of a cell: the closer to the centre, the
// larger. Corners weigh 1.
func Weight(size, row, col int) int {
	centre := float64(size-1) / 2
	maxDist := math.Hypot(centre, centre)
	dist := math.Hypot(float64(row)-centre, float64(col)-centre)

	return int(math.Round(maxDist-dist)) + 1
}

type EvaluatorOption func(e *Evaluator)

func WithStrategy(strategy Strategy) EvaluatorOption {
	return func(e *Evaluator) {
		e.strategy = strategy
	}
}

// WithWinScore - sets the magnitude of a decided game. Values not in
// (0, math.MaxInt) are ignored.
func WithWinScore(score int) EvaluatorOption {
	return func(e *Evaluator) {
		if score > 0 && score < math.MaxInt {
			e.winScore = score
		}
	}
}

// WithThreatBonus - sets the bonus of a window with two marks and one empty
// cell. Values not above the plain two-mark score are ignored.
func WithThreatBonus(bonus int) EvaluatorOption {
	return func(e *Evaluator) {
		if bonus > progress[WinLength-1] {
			e.threatBonus = bonus
		}
	}
}

// Evaluator scores states from MarkA's point of view: positive favours
// MarkA, negative favours MarkB.
type Evaluator struct {
	strategy    Strategy
	winScore    int
	threatBonus int
}

func NewEvaluator(options ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		strategy:    StrategyCount,
		winScore:    DefaultWinScore,
		threatBonus: DefaultThreatBonus,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *Evaluator) Strategy() Strategy {
	return e.strategy
}

func (e *Evaluator) WinScore() int {
	return e.winScore
}

// Score - returns the fixed outcome score of a terminal state and the
// heuristic value of any other state.
func (e *Evaluator) Score(state GameState) int {
	switch state.Outcome() {
	case MarkAWins:
		return e.winScore
	case MarkBWins:
		return -e.winScore
	case Draw:
		return 0
	default:
		return e.Evaluate(state.Board())
	}
}

// Evaluate - sums the contribution of every window on the board.
func (e *Evaluator) Evaluate(b Board) int {
	squares := squaredWeightsBySize[b.size]

	score := 0
	for _, w := range windows(b.size) {
		score += e.window(b, w, squares)
	}
	return score
}

func (e *Evaluator) window(b Board, w window, squares []int) int {
	owner := Empty
	count, weight := 0, 0

	for _, idx := range w {
		mark := b.cells[idx]
		if mark == Empty {
			continue
		}
		if owner != Empty && mark != owner {
			return 0
		}
		owner = mark
		count++
		weight += squares[idx]
	}

	if owner == Empty {
		return 0
	}

	value := progress[count]
	if count == WinLength-1 {
		value += e.threatBonus
	}
	if e.strategy == StrategyWeighted {
		value *= weight
	}

	return int(owner) * value
}
