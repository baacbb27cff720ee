package game

// orth4 is the 4-connected neighborhood shared by group discovery, capture
// removal and territory flood fill.
var orth4 = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

// Komi is the fixed compensation added to White's area score for moving
// second.
const Komi = 3.75

// GoRules implements the territory variant: suicide is forbidden unless the
// placement captures, captured groups leave the board, and area scoring
// with komi settles games ended by consecutive passes.
type GoRules struct {
	board *Board
}

func (g *GoRules) Variant() Variant { return Go }

func (g *GoRules) SupportsPass() bool { return true }

func (g *GoRules) Setup() {}

// IsLegal places the stone speculatively, inspects liberties and reverts
// the cell before returning. Capturing placements are legal even with no
// liberties of their own.
func (g *GoRules) IsLegal(m Move, player Cell) bool {
	if !g.board.InBounds(m.Row, m.Col) || g.board.At(m.Row, m.Col) != Empty {
		return false
	}
	g.board.Set(m.Row, m.Col, player)
	defer g.board.Set(m.Row, m.Col, Empty)

	opponent := Opponent(player)
	for _, d := range orth4 {
		nr, nc := m.Row+d[0], m.Col+d[1]
		if g.board.At(nr, nc) != opponent {
			continue
		}
		if _, libs := g.group(nr, nc, opponent); libs == 0 {
			return true
		}
	}
	_, libs := g.group(m.Row, m.Col, player)
	return libs != 0
}

// Apply places the stone and removes adjacent opponent groups left without
// liberties.
func (g *GoRules) Apply(m Move, player Cell) {
	if m.IsPass() {
		return
	}
	g.board.Set(m.Row, m.Col, player)
	opponent := Opponent(player)
	for _, d := range orth4 {
		nr, nc := m.Row+d[0], m.Col+d[1]
		if g.board.At(nr, nc) != opponent {
			continue
		}
		group, libs := g.group(nr, nc, opponent)
		if libs != 0 {
			continue
		}
		for _, stone := range group {
			g.board.Set(stone.Row, stone.Col, Empty)
		}
	}
}

// Result never ends a territory game by itself; termination comes from two
// consecutive passes handled by the turn driver.
func (g *GoRules) Result(last Move) Status { return InProgress }

// group collects the 4-connected same-colored group seeded at (r,c) and
// tallies its liberties. An empty cell is tallied once per stone touching
// it, so the count is an upper bound on distinct liberties; callers only
// ever compare it against zero.
func (g *GoRules) group(r, c int, color Cell) (stones []Move, liberties int) {
	visited := make([]bool, g.board.size*g.board.size)
	return g.walk(r, c, color, visited, nil)
}

func (g *GoRules) walk(r, c int, color Cell, visited []bool, stones []Move) ([]Move, int) {
	if !g.board.InBounds(r, c) {
		return stones, 0
	}
	cell := g.board.At(r, c)
	if cell == Empty {
		return stones, 1
	}
	idx := r*g.board.size + c
	if cell != color || visited[idx] {
		return stones, 0
	}
	visited[idx] = true
	stones = append(stones, Move{Row: r, Col: c})
	liberties := 0
	for _, d := range orth4 {
		var n int
		stones, n = g.walk(r+d[0], c+d[1], color, visited, stones)
		liberties += n
	}
	return stones, liberties
}

// Score counts area: each stone scores its color, each maximal empty region
// scores the single color enclosing it, and regions touching both colors or
// none are neutral. White receives Komi on top.
func (g *GoRules) Score() (float64, float64) {
	size := g.board.size
	visited := make([]bool, size*size)
	var black, white float64
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if visited[r*size+c] {
				continue
			}
			switch g.board.At(r, c) {
			case Black:
				visited[r*size+c] = true
				black++
			case White:
				visited[r*size+c] = true
				white++
			default:
				region, owner := g.floodRegion(r, c, visited)
				switch owner {
				case Black:
					black += float64(len(region))
				case White:
					white += float64(len(region))
				}
			}
		}
	}
	return black, white + Komi
}

// floodRegion expands the maximal empty region containing (r,c) and reports
// the single color bordering it. Empty marks a neutral region.
func (g *GoRules) floodRegion(r, c int, visited []bool) ([]Move, Cell) {
	size := g.board.size
	region := []Move{{Row: r, Col: c}}
	visited[r*size+c] = true
	touchesBlack, touchesWhite := false, false
	for i := 0; i < len(region); i++ {
		cur := region[i]
		for _, d := range orth4 {
			nr, nc := cur.Row+d[0], cur.Col+d[1]
			if !g.board.InBounds(nr, nc) {
				continue
			}
			switch g.board.At(nr, nc) {
			case Empty:
				if !visited[nr*size+nc] {
					visited[nr*size+nc] = true
					region = append(region, Move{Row: nr, Col: nc})
				}
			case Black:
				touchesBlack = true
			case White:
				touchesWhite = true
			}
		}
	}
	switch {
	case touchesBlack && !touchesWhite:
		return region, Black
	case touchesWhite && !touchesBlack:
		return region, White
	default:
		return region, Empty
	}
}

func (g *GoRules) HasLegalMove(player Cell) bool { return hasLegalMove(g, g.board, player) }

func (g *GoRules) LegalMoves(player Cell) []Move { return legalMoves(g, g.board, player) }

func (g *GoRules) Clone(board *Board) Rules { return &GoRules{board: board} }
