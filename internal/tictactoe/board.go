package tictactoe

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

const (
	MinSize   = 3
	MaxSize   = 10
	WinLength = 3
)

// Move is a (row, column) coordinate of the cell to mark.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}

// Board is a square grid of marks. A Board is never modified after it is
// built: setting a cell yields a new Board.
type Board struct {
	size  int
	cells []Mark
}

func NewBoard(size int) (Board, error) {
	if size < MinSize || size > MaxSize {
		return Board{}, fmt.Errorf("%w: %d, expected %d..%d", apperror.ErrInvalidBoardSize, size, MinSize, MaxSize)
	}

	return Board{size: size, cells: make([]Mark, size*size)}, nil
}

// BoardFromRows - builds a board from a row-major matrix of marks.
func BoardFromRows(rows [][]Mark) (Board, error) {
	board, err := NewBoard(len(rows))
	if err != nil {
		return Board{}, err
	}

	for r, row := range rows {
		if len(row) != board.size {
			return Board{}, fmt.Errorf("%w: row %d has %d cells, expected %d", apperror.ErrInvalidBoardSize, r, len(row), board.size)
		}

		for c, mark := range row {
			if !mark.valid() {
				return Board{}, fmt.Errorf("%w: %d at (%d,%d)", ErrUnknownMark, mark, r, c)
			}
			board.cells[r*board.size+c] = mark
		}
	}

	return board, nil
}

// ParseBoard - builds a board from rows of symbols, see ParseMark.
func ParseBoard(rows [][]string) (Board, error) {
	marks := make([][]Mark, len(rows))
	for r, row := range rows {
		marks[r] = make([]Mark, len(row))
		for c, symbol := range row {
			mark, err := ParseMark(symbol)
			if err != nil {
				return Board{}, fmt.Errorf("invalid cell (%d,%d): %w", r, c, err)
			}
			marks[r][c] = mark
		}
	}

	return BoardFromRows(marks)
}

func (b Board) Size() int {
	return b.size
}

// At - returns the mark at the given cell, Empty when the cell is out of range.
func (b Board) At(row, col int) Mark {
	if !b.InBounds(row, col) {
		return Empty
	}
	return b.cells[row*b.size+col]
}

func (b Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

// Rows - returns a copy of the board as a row-major matrix.
func (b Board) Rows() [][]Mark {
	rows := make([][]Mark, b.size)
	for r := range rows {
		rows[r] = make([]Mark, b.size)
		copy(rows[r], b.cells[r*b.size:(r+1)*b.size])
	}
	return rows
}

func (b Board) EmptyCount() int {
	return b.Count(Empty)
}

// Count - returns how many cells hold mark.
func (b Board) Count(mark Mark) int {
	count := 0
	for _, cell := range b.cells {
		if cell == mark {
			count++
		}
	}
	return count
}

func (b Board) Occupied() int {
	return len(b.cells) - b.EmptyCount()
}

func (b Board) IsFull() bool {
	for _, cell := range b.cells {
		if cell == Empty {
			return false
		}
	}
	return true
}

func (b Board) Equal(other Board) bool {
	if b.size != other.size {
		return false
	}
	for i, cell := range b.cells {
		if other.cells[i] != cell {
			return false
		}
	}
	return true
}

// with - returns a copy of the board with the cell of the move set to mark.
func (b Board) with(move Move, mark Mark) Board {
	cells := make([]Mark, len(b.cells))
	copy(cells, b.cells)
	cells[move.Row*b.size+move.Col] = mark

	return Board{size: b.size, cells: cells}
}

func (b Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b.cells[r*b.size+c].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
