package tictactoe

import (
	"errors"
	"fmt"
)

// Mark is the content of a single cell.
type Mark int8

const (
	MarkB Mark = -1
	Empty Mark = 0
	MarkA Mark = 1
)

const (
	SymbolA     = "O"
	SymbolB     = "X"
	SymbolEmpty = ""
)

var ErrUnknownMark = errors.New("unknown mark")

// ParseMark - converts a cell symbol into a Mark. Both "" and "." mean an empty cell.
func ParseMark(symbol string) (Mark, error) {
	switch symbol {
	case SymbolA, "o":
		return MarkA, nil
	case SymbolB, "x":
		return MarkB, nil
	case SymbolEmpty, ".":
		return Empty, nil
	default:
		return Empty, fmt.Errorf("%w: %q", ErrUnknownMark, symbol)
	}
}

// Symbol - returns the persisted form of the mark, "" for an empty cell.
func (m Mark) Symbol() string {
	switch m {
	case MarkA:
		return SymbolA
	case MarkB:
		return SymbolB
	default:
		return SymbolEmpty
	}
}

func (m Mark) String() string {
	if m == Empty {
		return "."
	}
	return m.Symbol()
}

func (m Mark) Opponent() Mark {
	return -m
}

func (m Mark) valid() bool {
	return m == Empty || m == MarkA || m == MarkB
}
