package game

import "fmt"

// Rules is the per-variant rule engine bound to one board. Implementations
// keep no state beyond that board reference, so rebinding a clone of the
// board via Clone is all a caller needs to explore hypothetical futures.
type Rules interface {
	Variant() Variant
	// IsLegal reports whether player may place at m. The board is left
	// unchanged; the territory variant probes speculatively and reverts
	// before returning.
	IsLegal(m Move, player Cell) bool
	// Apply places player's stone at m and performs the variant's side
	// effects (captures, flips). Callers validate first; Apply does not.
	// Applying the pass sentinel is a no-op.
	Apply(m Move, player Cell)
	// Result reports the outcome as of the last applied move. The pass
	// sentinel carries no new information and yields InProgress.
	Result(last Move) Status
	// HasLegalMove reports whether player has at least one placement.
	HasLegalMove(player Cell) bool
	// LegalMoves lists every legal placement for player in row-major order.
	LegalMoves(player Cell) []Move
	// Score returns the final totals for both colors.
	Score() (black, white float64)
	// Setup places any mandatory opening stones on the bound board.
	Setup()
	// SupportsPass reports whether turns without a placement occur in this
	// variant at all.
	SupportsPass() bool
	// Clone returns a rule engine of the same variant bound to board.
	Clone(board *Board) Rules
}

// New returns the rule engine for variant bound to board. Unknown variants
// are a programmer error.
func New(v Variant, board *Board) Rules {
	switch v {
	case Gomoku:
		return &GomokuRules{board: board}
	case Go:
		return &GoRules{board: board}
	case Reversi:
		return &ReversiRules{board: board}
	default:
		panic(fmt.Sprintf("game: unknown variant %d", uint8(v)))
	}
}

func legalMoves(r Rules, board *Board, player Cell) []Move {
	var moves []Move
	for row := 0; row < board.size; row++ {
		for col := 0; col < board.size; col++ {
			if r.IsLegal(Move{Row: row, Col: col}, player) {
				moves = append(moves, Move{Row: row, Col: col})
			}
		}
	}
	return moves
}

func hasLegalMove(r Rules, board *Board, player Cell) bool {
	for row := 0; row < board.size; row++ {
		for col := 0; col < board.size; col++ {
			if r.IsLegal(Move{Row: row, Col: col}, player) {
				return true
			}
		}
	}
	return false
}

func countScore(board *Board) (float64, float64) {
	return float64(board.Count(Black)), float64(board.Count(White))
}
