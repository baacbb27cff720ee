package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Board size limits shared by every variant.
const (
	MinBoardSize = 8
	MaxBoardSize = 19
)

// Board is a square grid of tri-state cells. Reads outside the grid return
// Empty and writes outside it are dropped, so neighbor scans never need
// edge special-casing.
type Board struct {
	size  int
	cells []Cell
}

// NewBoard returns an empty board. The size must lie within
// [MinBoardSize, MaxBoardSize].
func NewBoard(size int) (*Board, error) {
	if size < MinBoardSize || size > MaxBoardSize {
		return nil, fmt.Errorf("board size %d outside [%d,%d]", size, MinBoardSize, MaxBoardSize)
	}
	return &Board{size: size, cells: make([]Cell, size*size)}, nil
}

// Size returns the side length.
func (b *Board) Size() int { return b.size }

// InBounds reports whether (r,c) lies on the grid.
func (b *Board) InBounds(r, c int) bool {
	return r >= 0 && r < b.size && c >= 0 && c < b.size
}

// At returns the cell at (r,c), or Empty for out-of-bounds coordinates.
func (b *Board) At(r, c int) Cell {
	if !b.InBounds(r, c) {
		return Empty
	}
	return b.cells[r*b.size+c]
}

// Set writes v at (r,c). Out-of-bounds writes are ignored.
func (b *Board) Set(r, c int, v Cell) {
	if !b.InBounds(r, c) {
		return
	}
	b.cells[r*b.size+c] = v
}

// Clone returns an independent deep copy.
func (b *Board) Clone() *Board {
	clone := &Board{size: b.size, cells: make([]Cell, len(b.cells))}
	copy(clone.cells, b.cells)
	return clone
}

// Count returns how many cells hold v.
func (b *Board) Count(v Cell) int {
	n := 0
	for _, cell := range b.cells {
		if cell == v {
			n++
		}
	}
	return n
}

// Full reports whether no empty cell remains.
func (b *Board) Full() bool { return b.Count(Empty) == 0 }

// Equal reports cell-for-cell equality.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.size != other.size {
		return false
	}
	for i, cell := range b.cells {
		if other.cells[i] != cell {
			return false
		}
	}
	return true
}

// Serialize renders the board as its size followed by all cells in
// row-major order, space separated.
func (b *Board) Serialize() string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(b.size))
	for _, cell := range b.cells {
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(int(cell)))
	}
	return sb.String()
}

// ParseBoard reconstructs a board from its Serialize form. Malformed input
// yields an error and no board.
func ParseBoard(s string) (*Board, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("parse board: empty record")
	}
	size, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("parse board size: %w", err)
	}
	board, err := NewBoard(size)
	if err != nil {
		return nil, fmt.Errorf("parse board: %w", err)
	}
	if len(fields)-1 != size*size {
		return nil, fmt.Errorf("parse board: want %d cells, have %d", size*size, len(fields)-1)
	}
	for i, field := range fields[1:] {
		v, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("parse board cell %d: %w", i, err)
		}
		if v < int(Empty) || v > int(White) {
			return nil, fmt.Errorf("parse board cell %d: bad value %d", i, v)
		}
		board.cells[i] = Cell(v)
	}
	return board, nil
}
