package search

import "github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"

const DefaultNodeTarget = 200_000

// DepthPolicy chooses how many plies to search for a state. A 3x3 board is
// always searched to the end. On larger boards the depth is the deepest one
// whose estimated tree, e*(e-1)*...*(e-d+1) for e empty cells, stays within
// NodeTarget: big empty boards get shallow searches, nearly full boards get
// deep ones.
type DepthPolicy struct {
	// MaxDepth caps the result; 0 means no cap.
	MaxDepth int
	// NodeTarget is the estimated tree size to stay under; 0 means DefaultNodeTarget.
	NodeTarget int64
}

func (p DepthPolicy) Depth(state tictactoe.GameState) int {
	empty := state.Board().EmptyCount()
	if empty == 0 || state.IsTerminal() {
		return 0
	}

	limit := empty
	if p.MaxDepth > 0 {
		limit = min(limit, p.MaxDepth)
	}

	if state.Board().Size() == tictactoe.WinLength {
		return limit
	}

	target := p.NodeTarget
	if target <= 0 {
		target = DefaultNodeTarget
	}

	depth, tree := 0, int64(1)
	for depth < limit {
		tree *= int64(empty - depth)
		if tree > target {
			break
		}
		depth++
	}

	return max(depth, 1)
}
