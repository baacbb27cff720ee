package game

// dirs8 is the 8-direction neighborhood used by the bracket scan.
var dirs8 = [8][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// ReversiRules implements flip-capture: a placement must bracket at least
// one run of opponent stones, and every bracketed run is recolored.
type ReversiRules struct {
	board *Board
}

func (r *ReversiRules) Variant() Variant { return Reversi }

func (r *ReversiRules) SupportsPass() bool { return true }

// Setup places the opening cross at the board center: White on the main
// diagonal pair, Black on the anti-diagonal pair.
func (r *ReversiRules) Setup() {
	mid := r.board.size / 2
	r.board.Set(mid-1, mid-1, White)
	r.board.Set(mid, mid, White)
	r.board.Set(mid-1, mid, Black)
	r.board.Set(mid, mid-1, Black)
}

func (r *ReversiRules) IsLegal(m Move, player Cell) bool {
	if !r.board.InBounds(m.Row, m.Col) || r.board.At(m.Row, m.Col) != Empty {
		return false
	}
	for _, d := range dirs8 {
		if r.scan(m, d[0], d[1], player, false) {
			return true
		}
	}
	return false
}

func (r *ReversiRules) Apply(m Move, player Cell) {
	if m.IsPass() {
		return
	}
	r.board.Set(m.Row, m.Col, player)
	for _, d := range dirs8 {
		r.scan(m, d[0], d[1], player, true)
	}
}

// scan walks from m along (dr,dc) over contiguous opponent stones and
// reports whether the run is bracketed by one of player's stones. In flip
// mode a bracketed run is recolored; stones beyond the bracket are never
// touched.
func (r *ReversiRules) scan(m Move, dr, dc int, player Cell, flip bool) bool {
	opponent := Opponent(player)
	sawOpponent := false
	for i := 1; ; i++ {
		nr, nc := m.Row+i*dr, m.Col+i*dc
		if !r.board.InBounds(nr, nc) {
			return false
		}
		switch r.board.At(nr, nc) {
		case opponent:
			sawOpponent = true
		case player:
			if !sawOpponent {
				return false
			}
			if flip {
				for k := 1; k < i; k++ {
					r.board.Set(m.Row+k*dr, m.Col+k*dc, player)
				}
			}
			return true
		default:
			return false
		}
	}
}

// Result ends the game once the board is full, one color has no stones
// left, or neither color has a legal placement; the larger stone count
// wins and equal counts draw.
func (r *ReversiRules) Result(last Move) Status {
	if last.IsPass() {
		return InProgress
	}
	black := r.board.Count(Black)
	white := r.board.Count(White)
	full := black+white == r.board.size*r.board.size
	if !full && black > 0 && white > 0 {
		if r.HasLegalMove(Black) || r.HasLegalMove(White) {
			return InProgress
		}
	}
	return CompareScores(float64(black), float64(white))
}

func (r *ReversiRules) HasLegalMove(player Cell) bool { return hasLegalMove(r, r.board, player) }

func (r *ReversiRules) LegalMoves(player Cell) []Move { return legalMoves(r, r.board, player) }

func (r *ReversiRules) Score() (float64, float64) { return countScore(r.board) }

func (r *ReversiRules) Clone(board *Board) Rules { return &ReversiRules{board: board} }
