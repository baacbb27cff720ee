package game

// axes4 spans the four win axes: horizontal, vertical and both diagonals.
var axes4 = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// GomokuRules implements five-in-a-row on an open board. Any empty cell is
// playable and stones are never removed.
type GomokuRules struct {
	board *Board
}

func (g *GomokuRules) Variant() Variant { return Gomoku }

func (g *GomokuRules) SupportsPass() bool { return false }

func (g *GomokuRules) Setup() {}

func (g *GomokuRules) IsLegal(m Move, player Cell) bool {
	return g.board.InBounds(m.Row, m.Col) && g.board.At(m.Row, m.Col) == Empty
}

func (g *GomokuRules) Apply(m Move, player Cell) {
	if m.IsPass() {
		return
	}
	g.board.Set(m.Row, m.Col, player)
}

// Result scans the four axes through the last placement for a run of five
// or more. A full board with no such run is a draw.
func (g *GomokuRules) Result(last Move) Status {
	if last.IsPass() {
		return InProgress
	}
	placed := g.board.At(last.Row, last.Col)
	if placed == Empty {
		return InProgress
	}
	for _, axis := range axes4 {
		run := 1 + g.runLength(last, axis[0], axis[1], placed) + g.runLength(last, -axis[0], -axis[1], placed)
		if run >= 5 {
			if placed == Black {
				return BlackWin
			}
			return WhiteWin
		}
	}
	if g.board.Full() {
		return Draw
	}
	return InProgress
}

// runLength counts contiguous stones of color strictly beyond start along
// (dr,dc). Out-of-bounds cells read Empty and stop the run.
func (g *GomokuRules) runLength(start Move, dr, dc int, color Cell) int {
	n := 0
	for i := 1; i < 5; i++ {
		if g.board.At(start.Row+i*dr, start.Col+i*dc) != color {
			break
		}
		n++
	}
	return n
}

func (g *GomokuRules) HasLegalMove(player Cell) bool { return hasLegalMove(g, g.board, player) }

func (g *GomokuRules) LegalMoves(player Cell) []Move { return legalMoves(g, g.board, player) }

func (g *GomokuRules) Score() (float64, float64) { return countScore(g.board) }

func (g *GomokuRules) Clone(board *Board) Rules { return &GomokuRules{board: board} }
