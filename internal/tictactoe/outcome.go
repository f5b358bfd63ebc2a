package tictactoe

// Outcome is the resolved result of a state.
type Outcome int

const (
	Undecided Outcome = iota
	MarkAWins
	MarkBWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case MarkAWins:
		return SymbolA + " wins"
	case MarkBWins:
		return SymbolB + " wins"
	case Draw:
		return "draw"
	default:
		return "undecided"
	}
}

// Winner - returns the winning mark, Empty for a draw or an undecided game.
func (o Outcome) Winner() Mark {
	switch o {
	case MarkAWins:
		return MarkA
	case MarkBWins:
		return MarkB
	default:
		return Empty
	}
}

func outcomeFor(mark Mark) Outcome {
	if mark == MarkA {
		return MarkAWins
	}
	return MarkBWins
}

// resolveOutcome - decides whether the board is over. A 3x3 board ends on
// the first full line. Larger boards only end once full, and the mark with
// more triplets wins.
func resolveOutcome(b Board) Outcome {
	if b.size == WinLength {
		for _, w := range windows(b.size) {
			if mark := b.cells[w[0]]; mark != Empty && mark == b.cells[w[1]] && mark == b.cells[w[2]] {
				return outcomeFor(mark)
			}
		}
	}

	if !b.IsFull() {
		return Undecided
	}

	if b.size == WinLength {
		return Draw
	}

	tripletsA, tripletsB := CountTriplets(b, MarkA), CountTriplets(b, MarkB)
	switch {
	case tripletsA > tripletsB:
		return MarkAWins
	case tripletsB > tripletsA:
		return MarkBWins
	default:
		return Draw
	}
}

// CountTriplets - counts the windows of three consecutive cells held by mark.
func CountTriplets(b Board, mark Mark) int {
	count := 0
	for _, w := range windows(b.size) {
		if b.cells[w[0]] == mark && b.cells[w[1]] == mark && b.cells[w[2]] == mark {
			count++
		}
	}
	return count
}
